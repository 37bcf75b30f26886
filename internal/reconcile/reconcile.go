// Package reconcile sweeps the store for near-duplicate listings created by
// split candidate groups and merges them away.
package reconcile

import (
	"log/slog"

	"github.com/solerack/solerack/internal/datastore"
	"github.com/solerack/solerack/internal/logging"
)

// maxCountDiff is the image-count difference within which two listings of
// the same brand and model are considered duplicates.
const maxCountDiff = 2

// Unknown-identification sentinels; listings carrying both are never
// reconciled because they were grouped blind.
const (
	unknownBrand = "Unknown Brand"
	unknownModel = "Unknown Model"
)

// Reconciler removes near-duplicate persisted listings.
type Reconciler struct {
	store  datastore.Interface
	logger *slog.Logger
}

// New creates a Reconciler over the given store.
func New(store datastore.Interface) *Reconciler {
	return &Reconciler{
		store:  store,
		logger: logging.ForService("reconcile"),
	}
}

// Run finds duplicate pairs and deletes the weaker record of each. The
// matching is pairwise and greedy, not a global optimum: in a chain of
// near-duplicates the sweep may remove a record a different pairing would
// have kept. It returns the number of listings removed.
func (r *Reconciler) Run() (int, error) {
	r.logger.Info("Checking for duplicate listings")

	summaries, err := r.store.ListingSummaries()
	if err != nil {
		return 0, err
	}
	if len(summaries) < 2 {
		return 0, nil
	}

	removals := r.pickRemovals(summaries)
	if len(removals) == 0 {
		r.logger.Info("No duplicates found")
		return 0, nil
	}

	merged := 0
	for _, id := range removals {
		// DeleteListing cascades the image rows in one transaction; a
		// failed delete leaves both records for the next sweep.
		if err := r.store.DeleteListing(id); err != nil {
			r.logger.Warn("Failed to delete duplicate listing", "listing_id", id, "error", err)
			continue
		}
		merged++
	}

	if merged > 0 {
		r.logger.Info("Removed duplicate listings", "count", merged)
	}
	return merged, nil
}

// pickRemovals returns the ids to delete, deduplicated, in first-seen order.
func (r *Reconciler) pickRemovals(summaries []datastore.ListingSummary) []uint {
	seen := make(map[uint]bool)
	var removals []uint

	for i := 0; i < len(summaries); i++ {
		for j := i + 1; j < len(summaries); j++ {
			a, b := &summaries[i], &summaries[j]

			if !isDuplicatePair(a, b) {
				continue
			}

			loser := weaker(a, b)
			if !seen[loser.ID] {
				seen[loser.ID] = true
				removals = append(removals, loser.ID)
			}
		}
	}

	return removals
}

func isDuplicatePair(a, b *datastore.ListingSummary) bool {
	if a.Brand != b.Brand || a.Model != b.Model {
		return false
	}
	if a.Brand == unknownBrand && a.Model == unknownModel {
		return false
	}
	diff := a.ImageCount - b.ImageCount
	if diff < 0 {
		diff = -diff
	}
	return diff <= maxCountDiff
}

// weaker picks the record to remove: fewer images loses, ties keep the
// lower id.
func weaker(a, b *datastore.ListingSummary) *datastore.ListingSummary {
	if a.ImageCount > b.ImageCount {
		return b
	}
	if b.ImageCount > a.ImageCount {
		return a
	}
	if a.ID < b.ID {
		return b
	}
	return a
}
