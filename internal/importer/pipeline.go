package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/solerack/solerack/internal/classify"
	"github.com/solerack/solerack/internal/datastore"
	"github.com/solerack/solerack/internal/errors"
	"github.com/solerack/solerack/internal/grouper"
	"github.com/solerack/solerack/internal/imagefile"
	"github.com/solerack/solerack/internal/match"
)

// Run executes one ingestion pass: list the drop directory, rebuild the
// candidate groups, and create or extend listings for groups that contain at
// least one unprocessed file. Returns immediately when a pass is already
// running; a dropped trigger is not an error.
func (imp *Importer) Run(ctx context.Context) error {
	if !imp.settings.Import.Enabled {
		return nil
	}
	if !imp.running.CompareAndSwap(false, true) {
		imp.logger.Debug("Scan already in progress, trigger dropped")
		if imp.metrics != nil {
			imp.metrics.ScanPassesDropped.Inc()
		}
		return nil
	}
	defer imp.running.Store(false)

	if imp.metrics != nil {
		imp.metrics.ScanPassesTotal.Inc()
	}
	imp.candidates.Flush()

	listing, err := imagefile.ListImages(imp.settings.Import.DropDir)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "list-drop-directory").
			Build()
	}

	newCount := 0
	for _, img := range listing {
		if !imp.ledger.IsProcessed(img.Filename) {
			newCount++
		}
	}
	if newCount == 0 {
		return nil
	}

	imp.logger.Info("Found new images", "count", newCount)

	// Rebuild all groups, then keep only those touching a new file.
	groups := grouper.BuildGroups(listing)
	var pending []*grouper.CandidateGroup
	for _, key := range grouper.SortedKeys(groups) {
		group := groups[key]
		if imp.groupHasNewFile(group) {
			pending = append(pending, group)
		}
	}

	if len(pending) == 0 {
		imp.logger.Info("No new candidate groups to process")
		return nil
	}

	imp.logger.Info("Processing candidate groups", "groups", len(pending))

	batchSize := imp.settings.Import.BatchSize
	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		imp.logger.Info("Processing batch",
			"batch", start/batchSize+1,
			"groups", end-start)

		for _, group := range pending[start:end] {
			if err := imp.processGroup(ctx, group); err != nil {
				// Group stays unmarked in the ledger so the next pass retries it.
				imp.logger.Error("Failed to process group, skipping",
					"group", group.Key,
					"error", err)
				if imp.metrics != nil {
					imp.metrics.GroupsFailed.Inc()
				}
			}
		}

		if end < len(pending) {
			imp.sleep(imp.settings.Import.BatchPause)
		}
	}

	imp.logger.Info("Ingestion pass complete")
	return nil
}

func (imp *Importer) groupHasNewFile(group *grouper.CandidateGroup) bool {
	for _, img := range group.Images {
		if !imp.ledger.IsProcessed(img.Filename) {
			return true
		}
	}
	return false
}

// processGroup classifies a candidate group and either appends its images to
// a matching existing listing or creates a new one. The ledger is updated
// only after the persistence step fully succeeded.
func (imp *Importer) processGroup(ctx context.Context, group *grouper.CandidateGroup) error {
	filenames := make([]string, len(group.Images))
	for i, img := range group.Images {
		filenames[i] = img.Filename
	}

	if len(filenames) < imp.settings.Import.MinImages {
		imp.logger.Debug("Skipping group below minimum image count", "group", group.Key, "images", len(filenames))
		if imp.metrics != nil {
			imp.metrics.GroupsSkipped.Inc()
		}
		return nil
	}

	allProcessed := true
	for _, f := range filenames {
		if !imp.ledger.IsProcessed(f) {
			allProcessed = false
			break
		}
	}
	if allProcessed {
		imp.logger.Debug("Skipping group, all images already processed", "group", group.Key)
		if imp.metrics != nil {
			imp.metrics.GroupsSkipped.Inc()
		}
		return nil
	}

	ident := classify.Classify(filenames)

	candidates, err := imp.matchCandidates(ident.Brand, ident.Model, len(filenames))
	if err != nil {
		return err
	}

	matched := match.FindMatch(ident.Brand, ident.Model, len(filenames), candidates, imp.settings.Import.SimilarityThreshold)
	if matched != nil {
		imp.logger.Info("Matched existing listing",
			"brand", matched.Brand,
			"model", matched.Model,
			"listing_id", matched.ID,
			"images", len(filenames))
		if err := imp.appendImages(ctx, matched.ID, filenames); err != nil {
			return err
		}
		if imp.metrics != nil {
			imp.metrics.ImagesAppended.Add(float64(len(filenames)))
		}
		return imp.markProcessed(filenames)
	}

	listingID, err := imp.createListing(ctx, &ident, filenames)
	if err != nil {
		return err
	}
	imp.logger.Info("Created new listing",
		"brand", ident.Brand,
		"model", ident.Model,
		"listing_id", listingID,
		"images", len(filenames),
		"confidence", ident.Confidence,
		"needs_review", ident.NeedsReview)
	if imp.metrics != nil {
		imp.metrics.ListingsCreated.Inc()
	}
	return imp.markProcessed(filenames)
}

// matchCandidates queries the store for pre-filtered match candidates,
// memoized per pass since bulk drops often repeat a brand and model.
func (imp *Importer) matchCandidates(brand, model string, imageCount int) ([]datastore.ListingSummary, error) {
	key := fmt.Sprintf("%s|%s|%d", brand, model, imageCount)
	if cached, ok := imp.candidates.Get(key); ok {
		return cached.([]datastore.ListingSummary), nil
	}

	candidates, err := imp.store.MatchCandidates(brand, model, imageCount)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "match-candidates").
			Build()
	}

	imp.candidates.SetDefault(key, candidates)
	return candidates, nil
}

// createListing persists a new listing and materializes its images into the
// upload store in filename order; the first image becomes primary.
func (imp *Importer) createListing(ctx context.Context, ident *classify.Identification, filenames []string) (uint, error) {
	msrp := ident.MSRP
	if msrp == 0 {
		msrp = imp.settings.Import.DefaultMSRP
	}
	price := ident.Price
	if price == 0 {
		price = imp.settings.Import.DefaultPrice
	}
	description := ident.Description
	if description == "" {
		description = fmt.Sprintf("%s %s", ident.Brand, ident.Model)
	}

	listing := datastore.Listing{
		Brand:       ident.Brand,
		Model:       ident.Model,
		Description: description,
		MSRP:        msrp,
		Price:       price,
		Size:        ident.Size,
		Gender:      ident.Gender,
		Condition:   ident.Condition,
	}
	if err := imp.store.CreateListing(&listing); err != nil {
		return 0, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "create-listing").
			Build()
	}

	for index, filename := range filenames {
		if err := imp.materializeImage(ctx, listing.ID, filename, index, index == 0); err != nil {
			return 0, err
		}
	}

	return listing.ID, nil
}

// appendImages materializes the group's images onto an existing listing,
// continuing display order past the listing's current maximum. Appended
// images are never primary.
func (imp *Importer) appendImages(ctx context.Context, listingID uint, filenames []string) error {
	next, err := imp.store.NextDisplayOrder(listingID)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "next-display-order").
			Build()
	}

	for i, filename := range filenames {
		if err := imp.materializeImage(ctx, listingID, filename, next+i, false); err != nil {
			return err
		}
	}
	return nil
}

// materializeImage converts a source image if needed, copies it into the
// upload store and inserts its row. A failed insert removes only the file
// just copied; rows inserted for earlier images in the group stay.
func (imp *Importer) materializeImage(ctx context.Context, listingID uint, filename string, displayOrder int, primary bool) error {
	dropDir := imp.settings.Import.DropDir
	sourcePath := filepath.Join(dropDir, filename)
	sourceName := filename

	if imp.conv != nil && imp.conv.IsConvertible(filename) {
		converted := imp.conv.Convert(ctx, sourcePath)
		if converted != sourceName {
			// Conversion succeeded: use the JPEG and drop the original.
			if err := imagefile.Remove(sourcePath); err != nil {
				imp.logger.Warn("Could not delete original HEIC", "file", filename, "error", err)
			} else {
				imp.logger.Info("Deleted original HEIC", "file", filename)
			}
			sourceName = converted
			sourcePath = filepath.Join(dropDir, converted)
			if imp.metrics != nil {
				imp.metrics.ConversionsTotal.Inc()
			}
		}
	}

	destName := fmt.Sprintf("shoe-%d-%d-%d%s",
		listingID, imp.now().UnixMilli(), displayOrder, strings.ToLower(filepath.Ext(sourceName)))
	destPath := filepath.Join(imp.settings.Import.UploadDir, destName)

	if err := imagefile.CopyFile(sourcePath, destPath); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "copy-image").
			Context("file", sourceName).
			Build()
	}

	image := datastore.ListingImage{
		ListingID:    listingID,
		ImagePath:    destName,
		IsPrimary:    primary,
		DisplayOrder: displayOrder,
	}
	if err := imp.store.InsertImage(&image); err != nil {
		// Clean up the file we just copied; nothing else.
		_ = imagefile.Remove(destPath)
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "insert-image").
			Context("file", sourceName).
			Build()
	}

	return nil
}

func (imp *Importer) markProcessed(filenames []string) error {
	if err := imp.ledger.MarkProcessed(filenames); err != nil {
		return err
	}
	if imp.metrics != nil {
		imp.metrics.FilesMarkedTotal.Add(float64(len(filenames)))
	}
	return nil
}
