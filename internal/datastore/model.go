// model.go this code defines the data model for the application
package datastore

import "time"

// Listing represents a single sneaker product record
type Listing struct {
	ID          uint   `gorm:"primaryKey"`
	Brand       string `gorm:"index:idx_listings_brand_model"`
	Model       string `gorm:"index:idx_listings_brand_model"`
	Description string
	MSRP        int
	Price       int
	Size        string
	Gender      string
	Condition   string
	CreatedAt   time.Time
	Images      []ListingImage `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"` // One-to-many relationship with cascade delete
}

// ListingImage represents a stored image attached to a Listing.
// ImagePath is the filename within the upload store and is unique there.
type ListingImage struct {
	ID           uint   `gorm:"primaryKey"`
	ListingID    uint   `gorm:"index;not null;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;foreignKey:ListingID;references:ID"` // Foreign key to associate with Listing
	ImagePath    string `gorm:"uniqueIndex;not null"`
	IsPrimary    bool
	DisplayOrder int
}

// ListingSummary is a query projection of a listing with its image count,
// used by the matcher and the duplicate reconciler.
type ListingSummary struct {
	ID         uint
	Brand      string
	Model      string
	ImageCount int
}
