// Package match scores candidate listings against existing store records
// using edit-distance string similarity.
package match

import (
	"strings"

	"github.com/solerack/solerack/internal/datastore"
)

// Score weights for the composite listing match.
const (
	brandWeight = 0.3
	modelWeight = 0.4
	countWeight = 0.3
)

// Similarity returns a normalized edit-distance similarity between two
// strings in [0,1]. Comparison is case-insensitive after trimming; identical
// non-empty strings yield 1, an empty operand yields 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))
	if s1 == s2 {
		return 1
	}

	longer := len(s1)
	if len(s2) > longer {
		longer = len(s2)
	}
	if longer == 0 {
		return 1
	}

	return 1 - float64(levenshtein(s1, s2))/float64(longer)
}

// levenshtein computes the classic edit distance with a rolling two-row
// matrix.
func levenshtein(s1, s2 string) int {
	prev := make([]int, len(s1)+1)
	curr := make([]int, len(s1)+1)

	for j := 0; j <= len(s1); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s2); i++ {
		curr[0] = i
		for j := 1; j <= len(s1); j++ {
			if s2[i-1] == s1[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1], curr[j-1], prev[j]) + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(s1)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Score computes the weighted match score between an identified candidate
// and an existing listing summary.
func Score(brand, model string, imageCount int, existing *datastore.ListingSummary) float64 {
	score := 0.0

	if existing.Brand != "" && brand != "" {
		score += Similarity(existing.Brand, brand) * brandWeight
	}
	if existing.Model != "" && model != "" {
		score += Similarity(existing.Model, model) * modelWeight
	}
	score += countSimilarity(existing.ImageCount, imageCount) * countWeight

	return score
}

// countSimilarity compares image counts: max(0, 1 - |a-b| / max(a,b)).
func countSimilarity(a, b int) float64 {
	maxCount := a
	if b > maxCount {
		maxCount = b
	}
	if maxCount == 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	sim := 1 - float64(diff)/float64(maxCount)
	if sim < 0 {
		return 0
	}
	return sim
}

// FindMatch picks the best-scoring existing listing at or above the
// threshold, or nil when none qualifies. Candidates are assumed to be
// pre-filtered to exact brand and model equality by the store query; ties
// keep the first candidate encountered.
func FindMatch(brand, model string, imageCount int, candidates []datastore.ListingSummary, threshold float64) *datastore.ListingSummary {
	var best *datastore.ListingSummary
	bestScore := 0.0

	for i := range candidates {
		score := Score(brand, model, imageCount, &candidates[i])
		if score > bestScore && score >= threshold {
			bestScore = score
			best = &candidates[i]
		}
	}

	return best
}
