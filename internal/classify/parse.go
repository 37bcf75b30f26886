// parse.go: lightweight single-filename parser used for per-group display
// defaults. Unlike Classify it works from the flat brand and model lists and
// never produces a confidence score.
package classify

import (
	"path/filepath"
	"strings"
)

// ParsedName is the display-level interpretation of one filename.
type ParsedName struct {
	Brand       string
	Model       string
	Description string
	Filename    string
}

// ParseFilename extracts brand, model and a leftover description from a
// single image filename.
func ParseFilename(filename string) ParsedName {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.FieldsFunc(stem, isSeparator)

	brand := findBrandInParts(parts)
	model := findModelInStem(stem)

	// No model keyword: use the tokens right after the brand.
	if model == "" && brand != "" {
		brandIndex := -1
		for i, p := range parts {
			if strings.Contains(strings.ToLower(p), strings.ToLower(brand)) {
				brandIndex = i
				break
			}
		}
		if brandIndex >= 0 && brandIndex < len(parts)-1 {
			end := brandIndex + 3
			if end > len(parts) {
				end = len(parts)
			}
			model = strings.Join(parts[brandIndex+1:end], " ")
		}
	}

	description := leftoverDescription(parts, brand, model)

	if brand == "" {
		brand = "Unknown Brand"
	}
	if model == "" {
		model = strings.Join(firstN(parts, 2), " ")
		if model == "" {
			model = "Unknown Model"
		}
	}
	if description == "" {
		description = stem
	}

	return ParsedName{
		Brand:       brand,
		Model:       model,
		Description: description,
		Filename:    filename,
	}
}

// findBrandInParts looks for a brand in the first few joined tokens, then
// falls back to matching any single token.
func findBrandInParts(parts []string) string {
	limit := len(parts)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		test := strings.ToLower(strings.Join(parts[:i+1], " "))
		for _, b := range knownBrands {
			bl := strings.ToLower(b)
			if strings.Contains(test, bl) || strings.Contains(bl, test) {
				return b
			}
		}
	}

	for _, part := range parts {
		pl := strings.ToLower(part)
		for _, b := range knownBrands {
			bl := strings.ToLower(b)
			if pl == bl || strings.Contains(pl, bl) {
				return b
			}
		}
	}

	return ""
}

// findModelInStem returns the first known model keyword contained in the
// stem. Both sides are flattened to single-space form so multi-word keywords
// match hyphenated filenames.
func findModelInStem(stem string) string {
	text := flattenSeparators(stem)
	for _, m := range knownModels {
		if strings.Contains(text, flattenSeparators(m)) {
			return m
		}
	}
	return ""
}

// flattenSeparators lowercases and collapses separator runs to single spaces.
func flattenSeparators(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), isSeparator), " ")
}

// leftoverDescription joins the tokens not consumed by the brand or model.
func leftoverDescription(parts []string, brand, model string) string {
	if brand == "" && model == "" {
		return ""
	}

	used := make(map[string]bool)
	for _, w := range strings.Fields(brand) {
		used[strings.ToLower(w)] = true
	}
	for _, w := range strings.Fields(model) {
		used[strings.ToLower(w)] = true
	}

	var remaining []string
	for _, p := range parts {
		if !used[strings.ToLower(p)] {
			remaining = append(remaining, p)
		}
	}
	return strings.Join(remaining, " ")
}
