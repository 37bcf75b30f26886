// Package grouper clusters loose image files into candidate product groups
// by filename pattern. It does no I/O: the caller supplies the directory
// listing.
package grouper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/solerack/solerack/internal/classify"
	"github.com/solerack/solerack/internal/imagefile"
)

// CandidateGroup is a provisional cluster of image files believed to depict
// one physical listing. Transient, rebuilt on every scan.
type CandidateGroup struct {
	Key         string
	Images      []imagefile.SourceImage
	Brand       string
	Model       string
	Description string
}

const groupKeyMaxLen = 40

var (
	separatorRuns = regexp.MustCompile(`[-_\s]+`)
	// Camera-roll style names: "img" with optional separator then digits.
	cameraRollPattern = regexp.MustCompile(`^img[-_]?(\d+)$`)
	// One trailing photographic suffix: a facing direction, a single
	// letter a-e or a digit 1-5.
	photoSuffix = regexp.MustCompile(`[-_](front|back|side|top|bottom|left|right|1|2|3|4|5|a|b|c|d|e)$`)
	// Generic counter suffixes, each stripped at most once, in this order.
	genericSuffixes = []*regexp.Regexp{
		regexp.MustCompile(`[-_]img\d*$`),
		regexp.MustCompile(`[-_]photo\d*$`),
		regexp.MustCompile(`[-_]image\d*$`),
	}
	trailingDigits = regexp.MustCompile(`\d+$`)
)

// BuildGroups clusters a directory listing into candidate groups keyed by
// filename pattern. Files without a recognized image extension are ignored.
// Images within a group keep the listing order in which they were seen.
func BuildGroups(listing []imagefile.SourceImage) map[string]*CandidateGroup {
	groups := make(map[string]*CandidateGroup)

	for _, img := range listing {
		if !imagefile.IsImageFile(img.Filename) {
			continue
		}

		key := GroupKey(img.Filename)
		group, ok := groups[key]
		if !ok {
			parsed := classify.ParseFilename(img.Filename)
			group = &CandidateGroup{
				Key:         key,
				Brand:       parsed.Brand,
				Model:       parsed.Model,
				Description: parsed.Description,
			}
			groups[key] = group
		}
		group.Images = append(group.Images, img)
	}

	return groups
}

// GroupKey derives the grouping key for a filename.
//
// Camera-roll names (IMG_9751 and friends) are bucketed by their number's
// decade, so photos shot moments apart on a phone land in the same group.
// Everything else has common photographic suffixes stripped and is truncated
// to its first 40 characters.
func GroupKey(filename string) string {
	stem := normalizeStem(filename)

	if m := cameraRollPattern.FindStringSubmatch(stem); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return "img-" + strconv.Itoa(n/10*10)
		}
	}

	stem = photoSuffix.ReplaceAllString(stem, "")
	for _, re := range genericSuffixes {
		stem = re.ReplaceAllString(stem, "")
	}
	stem = trailingDigits.ReplaceAllString(stem, "")

	if len(stem) > groupKeyMaxLen {
		stem = stem[:groupKeyMaxLen]
	}
	return stem
}

// SortedKeys returns the group keys in a stable order for deterministic
// batch processing and reporting.
func SortedKeys(groups map[string]*CandidateGroup) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// normalizeStem lowercases the filename stem and collapses separator runs
// to single dashes.
func normalizeStem(filename string) string {
	stem := filename
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		stem = stem[:idx]
	}
	return separatorRuns.ReplaceAllString(strings.ToLower(stem), "-")
}
