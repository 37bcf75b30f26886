package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solerack/solerack/internal/datastore"
)

// mockStore implements datastore.Interface for sweep tests. Only the
// methods the reconciler touches do anything.
type mockStore struct {
	summaries  []datastore.ListingSummary
	deleted    []uint
	failDelete map[uint]bool
}

func (m *mockStore) Open() error { return nil }

func (m *mockStore) Close() error { return nil }

func (m *mockStore) CreateListing(listing *datastore.Listing) error { return nil }

func (m *mockStore) InsertImage(image *datastore.ListingImage) error { return nil }

func (m *mockStore) CountImages(listingID uint) (int, error) { return 0, nil }

func (m *mockStore) NextDisplayOrder(listingID uint) (int, error) { return 0, nil }

func (m *mockStore) MatchCandidates(brand, model string, imageCount int) ([]datastore.ListingSummary, error) {
	return nil, nil
}

func (m *mockStore) ListingSummaries() ([]datastore.ListingSummary, error) {
	return m.summaries, nil
}

func (m *mockStore) DeleteListing(id uint) error {
	if m.failDelete[id] {
		return fmt.Errorf("delete failed for listing %d", id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func TestRunRemovesWeakerDuplicate(t *testing.T) {
	t.Parallel()

	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 1, Brand: "Vans", Model: "Old Skool", ImageCount: 3},
			{ID: 2, Brand: "Vans", Model: "Old Skool", ImageCount: 4},
		},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, merged)
	assert.Equal(t, []uint{1}, store.deleted)
}

func TestRunTieRemovesHigherID(t *testing.T) {
	t.Parallel()

	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 5, Brand: "Nike", Model: "Dunk Low", ImageCount: 4},
			{ID: 9, Brand: "Nike", Model: "Dunk Low", ImageCount: 4},
		},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, merged)
	assert.Equal(t, []uint{9}, store.deleted)
}

func TestRunIgnoresDistinctListings(t *testing.T) {
	t.Parallel()

	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 1, Brand: "Nike", Model: "Dunk Low", ImageCount: 4},
			{ID: 2, Brand: "Nike", Model: "Dunk High", ImageCount: 4},
			{ID: 3, Brand: "Vans", Model: "Dunk Low", ImageCount: 4},
		},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, merged)
	assert.Empty(t, store.deleted)
}

func TestRunIgnoresLargeCountGap(t *testing.T) {
	t.Parallel()

	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 1, Brand: "Nike", Model: "Dunk Low", ImageCount: 2},
			{ID: 2, Brand: "Nike", Model: "Dunk Low", ImageCount: 5},
		},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, merged)
}

func TestRunSparesUnknownSentinelListings(t *testing.T) {
	t.Parallel()

	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 1, Brand: "Unknown Brand", Model: "Unknown Model", ImageCount: 3},
			{ID: 2, Brand: "Unknown Brand", Model: "Unknown Model", ImageCount: 3},
		},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, merged)
	assert.Empty(t, store.deleted)
}

func TestRunFailedDeleteLeavesBothRecords(t *testing.T) {
	t.Parallel()

	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 1, Brand: "Vans", Model: "Old Skool", ImageCount: 3},
			{ID: 2, Brand: "Vans", Model: "Old Skool", ImageCount: 4},
		},
		failDelete: map[uint]bool{1: true},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, merged)
	assert.Empty(t, store.deleted)
}

func TestRunChainDeduplicatesRemovals(t *testing.T) {
	t.Parallel()

	// Three near-duplicates: the weakest loses to both others but is only
	// deleted once, and the strongest survives.
	store := &mockStore{
		summaries: []datastore.ListingSummary{
			{ID: 1, Brand: "adidas", Model: "Samba", ImageCount: 2},
			{ID: 2, Brand: "adidas", Model: "Samba", ImageCount: 3},
			{ID: 3, Brand: "adidas", Model: "Samba", ImageCount: 4},
		},
	}

	merged, err := New(store).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, merged)
	assert.ElementsMatch(t, []uint{1, 2}, store.deleted)
}
