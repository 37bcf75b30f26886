// Package classify identifies brand, model, color and price estimates for a
// sneaker listing from nothing but its image filenames. All functions are
// pure: the same input always yields the same output.
package classify

import (
	"math"
	"path/filepath"
	"strings"
)

// Confidence contributions and the review threshold.
const (
	brandConfidence    = 50
	modelConfidence    = 30
	fallbackConfidence = 30
	reviewThreshold    = 50
)

// Sell price as a fraction of estimated MSRP, typical for used pairs.
const usedPriceFactor = 0.80

// defaultMSRP is used when no brand-specific price band applies.
const defaultMSRP = 120

// Identification is the classifier's best guess for a candidate group.
type Identification struct {
	Brand       string
	Model       string
	Color       string
	Description string
	MSRP        int
	Price       int
	Size        string
	Gender      string
	Condition   string
	Confidence  int
	NeedsReview bool
}

// Classify maps a set of image filenames to a best-guess identification.
func Classify(filenames []string) Identification {
	text := normalize(filenames)
	tokens := tokenize(filenames)

	brand, model, confidence := matchBrandModel(text, tokens)

	if model == "" {
		model = strings.Join(firstN(tokens, 2), " ")
	}
	// The aggressive fallback only applies to low-confidence guesses; a
	// solid brand hit keeps its token-derived model.
	if confidence < reviewThreshold {
		model = fallbackModel(tokens, model)
	}
	if brand == "" {
		brand = "Unknown Brand"
	}
	if model == "" {
		model = "Unknown Model"
	}

	color := DetectColor(text)
	msrp := EstimateMSRP(brand, model)
	price := int(math.Round(float64(msrp) * usedPriceFactor))

	return Identification{
		Brand:       brand,
		Model:       model,
		Color:       color,
		Description: Describe(brand, model, color),
		MSRP:        msrp,
		Price:       price,
		Size:        "9",
		Gender:      "Mens",
		Condition:   "Excellent",
		Confidence:  confidence,
		NeedsReview: confidence < reviewThreshold,
	}
}

// matchBrandModel scans the brand table in order; the first brand whose
// keyword matches wins, and within it the first matching model keyword.
func matchBrandModel(text string, tokens []string) (brand, model string, confidence int) {
	for i := range brandPatterns {
		bp := &brandPatterns[i]
		for _, keyword := range bp.Keywords {
			if !strings.Contains(text, keyword) {
				continue
			}
			brand = bp.Brand
			confidence += brandConfidence
			for _, mp := range bp.Models {
				for _, modelKeyword := range mp.Keywords {
					if strings.Contains(text, modelKeyword) {
						model = mp.Model
						confidence += modelConfidence
						break
					}
				}
				if model != "" {
					break
				}
			}
			break
		}
		if brand != "" {
			return brand, model, confidence
		}
	}

	// No direct keyword hit: token-level partial match against brand names
	// and keywords. First hit wins, no model is inferred.
	for _, token := range tokens {
		if len(token) < 3 {
			continue
		}
		for i := range brandPatterns {
			bp := &brandPatterns[i]
			if brandTokenMatches(bp, token) {
				return bp.Brand, "", fallbackConfidence
			}
		}
	}

	return "", "", 0
}

func brandTokenMatches(bp *brandPattern, token string) bool {
	if strings.Contains(strings.ToLower(bp.Brand), token) {
		return true
	}
	for _, keyword := range bp.Keywords {
		if strings.Contains(keyword, token) {
			return true
		}
	}
	return false
}

// fallbackModel tries harder when the keyword tables produced nothing
// confident: bare model numbers first, then multi-keyword signatures where
// every keyword must appear in some token.
func fallbackModel(tokens []string, current string) string {
	for _, num := range fallbackModelNumbers {
		for _, token := range tokens {
			if strings.Contains(token, num) {
				return num
			}
		}
	}

	for _, sig := range fallbackModelSignatures {
		all := true
		for _, keyword := range sig.Keywords {
			found := false
			for _, token := range tokens {
				if strings.Contains(token, keyword) {
					found = true
					break
				}
			}
			if !found {
				all = false
				break
			}
		}
		if all {
			return sig.Model
		}
	}

	return current
}

// DetectColor scans the normalized filename text against the color table and
// returns the first matching color in table order, or "" when none match.
// Only the first match is returned even when several colors appear.
func DetectColor(text string) string {
	for _, cp := range colorPatterns {
		for _, keyword := range cp.Keywords {
			if strings.Contains(text, keyword) {
				return cp.Color
			}
		}
	}
	return ""
}

// EstimateMSRP returns the midpoint of the known retail band for the brand
// and model, the brand default band when the model is unknown, or the global
// default when the brand has no bands at all.
func EstimateMSRP(brand, model string) int {
	if brand == "" || brand == "Unknown Brand" {
		return defaultMSRP
	}
	for i := range msrpTable {
		mb := &msrpTable[i]
		if mb.Brand != brand {
			continue
		}
		band, ok := mb.Models[model]
		if !ok {
			band = mb.Default
		}
		if band.Min == 0 && band.Max == 0 {
			band = priceBand{100, 150}
		}
		return int(math.Round(float64(band.Min+band.Max) / 2))
	}
	return defaultMSRP
}

// Describe builds a short display description from the identified parts,
// skipping the unknown sentinels.
func Describe(brand, model, color string) string {
	var parts []string
	if brand != "" && brand != "Unknown Brand" {
		parts = append(parts, brand)
	}
	if model != "" && model != "Unknown Model" {
		parts = append(parts, model)
	}
	if color != "" {
		parts = append(parts, color)
	}
	parts = append(parts, "Size 9 Mens", "New")
	if len(parts) == 2 {
		return "Sneaker - " + strings.Join(parts, " - ")
	}
	return strings.Join(parts, " - ")
}

// normalize joins the filenames into one lowercase text blob for substring
// matching.
func normalize(filenames []string) string {
	return strings.ToLower(strings.Join(filenames, " "))
}

// tokenize splits each filename stem on separators and whitespace.
func tokenize(filenames []string) []string {
	var tokens []string
	for _, filename := range filenames {
		stem := strings.TrimSuffix(filename, filepath.Ext(filename))
		for _, token := range strings.FieldsFunc(strings.ToLower(stem), isSeparator) {
			if token != "" {
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == ' ' || r == '\t'
}

func firstN(tokens []string, n int) []string {
	if len(tokens) < n {
		return tokens
	}
	return tokens[:n]
}
