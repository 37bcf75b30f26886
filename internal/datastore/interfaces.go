// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solerack/solerack/internal/conf"
)

// Interface abstracts the underlying database implementation and defines the
// operations the import pipeline and reconciler need.
type Interface interface {
	Open() error
	Close() error
	CreateListing(listing *Listing) error
	InsertImage(image *ListingImage) error
	CountImages(listingID uint) (int, error)
	NextDisplayOrder(listingID uint) (int, error)
	MatchCandidates(brand, model string, imageCount int) ([]ListingSummary, error)
	ListingSummaries() ([]ListingSummary, error)
	DeleteListing(id uint) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// CreateListing inserts a new listing record.
func (ds *DataStore) CreateListing(listing *Listing) error {
	if err := ds.DB.Create(listing).Error; err != nil {
		return fmt.Errorf("creating listing: %w", err)
	}
	return nil
}

// InsertImage inserts a single image row for a listing.
func (ds *DataStore) InsertImage(image *ListingImage) error {
	if err := ds.DB.Create(image).Error; err != nil {
		return fmt.Errorf("inserting image for listing %d: %w", image.ListingID, err)
	}
	return nil
}

// CountImages returns the number of image rows attached to a listing.
func (ds *DataStore) CountImages(listingID uint) (int, error) {
	var count int64
	err := ds.DB.Model(&ListingImage{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting images for listing %d: %w", listingID, err)
	}
	return int(count), nil
}

// NextDisplayOrder returns one past the highest display order already
// assigned to a listing's images, so appended images never collide.
func (ds *DataStore) NextDisplayOrder(listingID uint) (int, error) {
	var result struct {
		MaxOrder *int
	}
	err := ds.DB.Model(&ListingImage{}).
		Select("MAX(display_order) as max_order").
		Where("listing_id = ?", listingID).
		Scan(&result).Error
	if err != nil {
		return 0, fmt.Errorf("getting max display order for listing %d: %w", listingID, err)
	}
	if result.MaxOrder == nil {
		return 0, nil
	}
	return *result.MaxOrder + 1, nil
}

// MatchCandidates returns existing listings with exactly the given brand and
// model whose image count is within 3 of the incoming group, best-stocked
// first. The weighted similarity scoring happens in the match package; this
// query is only the coarse pre-filter.
func (ds *DataStore) MatchCandidates(brand, model string, imageCount int) ([]ListingSummary, error) {
	var results []ListingSummary
	err := ds.DB.Table("listings").
		Select("listings.id, listings.brand, listings.model, COUNT(listing_images.id) as image_count").
		Joins("LEFT JOIN listing_images ON listings.id = listing_images.listing_id").
		Where("listings.brand = ? AND listings.model = ?", brand, model).
		Group("listings.id").
		Having("ABS(COUNT(listing_images.id) - ?) <= 3", imageCount).
		Order("image_count DESC").
		Limit(5).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("querying match candidates for %s %s: %w", brand, model, err)
	}
	return results, nil
}

// ListingSummaries returns every listing that has at least one image,
// ordered by brand, model and id for the reconciler's pairwise sweep.
func (ds *DataStore) ListingSummaries() ([]ListingSummary, error) {
	var results []ListingSummary
	err := ds.DB.Table("listings").
		Select("listings.id, listings.brand, listings.model, COUNT(listing_images.id) as image_count").
		Joins("LEFT JOIN listing_images ON listings.id = listing_images.listing_id").
		Group("listings.id").
		Having("COUNT(listing_images.id) > 0").
		Order("listings.brand, listings.model, listings.id").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("querying listing summaries: %w", err)
	}
	return results, nil
}

// DeleteListing removes a listing and its image rows in one transaction.
// If the image deletion fails the listing survives untouched.
func (ds *DataStore) DeleteListing(id uint) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&ListingImage{}).Error; err != nil {
			return fmt.Errorf("deleting images for listing ID %d: %w", id, err)
		}
		if err := tx.Delete(&Listing{}, id).Error; err != nil {
			return fmt.Errorf("deleting listing with ID %d: %w", id, err)
		}
		return nil
	})
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Listing{}, &ListingImage{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
