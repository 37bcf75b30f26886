package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solerack/solerack/internal/imagefile"
)

func TestGroupKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"camera roll same decade", "IMG_9751.jpg", "img-9750"},
		{"camera roll same decade upper bound", "IMG_9753.HEIC", "img-9750"},
		{"camera roll next decade", "IMG_9765.jpg", "img-9760"},
		{"camera roll no separator", "IMG9751.jpg", "img-9750"},
		{"photo suffix stripped", "nike-dunk-low-front.jpg", "nike-dunk-low"},
		{"numeric suffix stripped", "nike-dunk-low-2.jpg", "nike-dunk-low"},
		{"generic suffix stripped", "dunk-photo3.jpg", "dunk"},
		{"stacked generic suffixes strip once each", "dunk-img2-img3.jpg", "dunk-img"},
		{"image suffix stripped", "dunk-image12.jpg", "dunk"},
		{"separator runs collapse", "nike__dunk  low-1.png", "nike-dunk-low"},
		{"long stem truncated", "a-very-long-descriptive-sneaker-filename-that-keeps-going.jpg",
			"a-very-long-descriptive-sneaker-filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GroupKey(tt.filename))
			assert.LessOrEqual(t, len(GroupKey(tt.filename)), groupKeyMaxLen)
		})
	}
}

func TestBuildGroupsClustersByKey(t *testing.T) {
	t.Parallel()

	listing := []imagefile.SourceImage{
		{Filename: "IMG_9751.jpg"},
		{Filename: "IMG_9753.jpg"},
		{Filename: "IMG_9765.jpg"},
		{Filename: "nike-dunk-low-1.jpg"},
		{Filename: "nike-dunk-low-2.jpg"},
		{Filename: "notes.txt"},
	}

	groups := BuildGroups(listing)

	require.Len(t, groups, 3)

	burst, ok := groups["img-9750"]
	require.True(t, ok)
	assert.Len(t, burst.Images, 2)

	dunk, ok := groups["nike-dunk-low"]
	require.True(t, ok)
	assert.Len(t, dunk.Images, 2)
	assert.Equal(t, "Nike", dunk.Brand)

	assert.Contains(t, groups, "img-9760")
}

func TestBuildGroupsPreservesListingOrder(t *testing.T) {
	t.Parallel()

	listing := []imagefile.SourceImage{
		{Filename: "vans-old-skool-back.jpg"},
		{Filename: "vans-old-skool-front.jpg"},
	}

	groups := BuildGroups(listing)
	require.Len(t, groups, 1)

	group := groups["vans-old-skool"]
	require.NotNil(t, group)
	assert.Equal(t, "vans-old-skool-back.jpg", group.Images[0].Filename)
	assert.Equal(t, "vans-old-skool-front.jpg", group.Images[1].Filename)
}

func TestSortedKeysIsStable(t *testing.T) {
	t.Parallel()

	groups := map[string]*CandidateGroup{
		"zeta":  {},
		"alpha": {},
		"mid":   {},
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, SortedKeys(groups))
}
