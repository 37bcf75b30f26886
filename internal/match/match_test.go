package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solerack/solerack/internal/datastore"
)

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Nike", "Nike", 1},
		{"case insensitive", "Nike", "nike", 1},
		{"trimmed", " Nike ", "Nike", 1},
		{"empty operand", "", "Nike", 0},
		{"both empty", "", "", 0},
		{"one substitution in four", "Nike", "Nika", 0.75},
		{"disjoint short strings", "ab", "xy", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityNearMatchRange(t *testing.T) {
	t.Parallel()

	// One edit across a longer string stays high but below 1.
	got := Similarity("Dunk Low", "Dunk Lows")
	assert.Greater(t, got, 0.7)
	assert.Less(t, got, 1.0)
}

func TestScoreIdenticalListing(t *testing.T) {
	t.Parallel()

	existing := &datastore.ListingSummary{Brand: "Nike", Model: "Dunk Low", ImageCount: 4}
	got := Score("Nike", "Dunk Low", 4, existing)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestScoreCountDivergencePullsScoreDown(t *testing.T) {
	t.Parallel()

	existing := &datastore.ListingSummary{Brand: "Nike", Model: "Dunk Low", ImageCount: 8}
	got := Score("Nike", "Dunk Low", 2, existing)

	// brand 1*0.3 + model 1*0.4 + count 0.25*0.3
	assert.InDelta(t, 0.775, got, 1e-9)
}

func TestFindMatch(t *testing.T) {
	t.Parallel()

	candidates := []datastore.ListingSummary{
		{ID: 1, Brand: "Nike", Model: "Dunk Low", ImageCount: 9},
		{ID: 2, Brand: "Nike", Model: "Dunk Low", ImageCount: 4},
	}

	got := FindMatch("Nike", "Dunk Low", 4, candidates, 0.85)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.ID)
}

func TestFindMatchNoneAboveThreshold(t *testing.T) {
	t.Parallel()

	candidates := []datastore.ListingSummary{
		{ID: 1, Brand: "Nike", Model: "Dunk Low", ImageCount: 20},
	}

	assert.Nil(t, FindMatch("Nike", "Dunk Low", 2, candidates, 0.85))
}

func TestFindMatchEmptyCandidates(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FindMatch("Nike", "Dunk Low", 3, nil, 0.85))
}
