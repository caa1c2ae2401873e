// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// CropStatus represents the lifecycle state of a crop listing.
type CropStatus string

const (
	// CropAvailable means the listing is visible to buyers.
	CropAvailable CropStatus = "available"
	// CropSold means the full quantity has been traded away.
	CropSold CropStatus = "sold"
	// CropWithdrawn means the farmer pulled the listing off the marketplace.
	CropWithdrawn CropStatus = "withdrawn"
)

// IsValid checks if the CropStatus is a known value.
func (s CropStatus) IsValid() bool {
	switch s {
	case CropAvailable, CropSold, CropWithdrawn:
		return true
	default:
		return false
	}
}

// CropCategories lists the accepted listing categories.
var CropCategories = []string{
	"Grains & Cereals",
	"Vegetables",
	"Fruits",
	"Pulses & Legumes",
	"Oilseeds",
	"Spices",
	"Cash Crops",
	"Other",
}

// CropUnits lists the accepted quantity units.
var CropUnits = []string{"kg", "quintal", "ton", "pieces", "dozen", "bags"}

// IsValidCropCategory reports whether the given category is accepted.
func IsValidCropCategory(c string) bool {
	return slices.Contains(CropCategories, c)
}

// IsValidCropUnit reports whether the given unit is accepted.
func IsValidCropUnit(u string) bool {
	return slices.Contains(CropUnits, u)
}

// Crop is a produce listing placed on the marketplace by a farmer.
type Crop struct {
	ID           uuid.UUID  // The unique ID for this listing.
	UserID       uuid.UUID  // The farmer who owns the listing.
	Name         string     // Listing name, 2 to 100 characters.
	Category     string     // One of CropCategories.
	Quantity     float64    // Amount offered, positive.
	Unit         string     // One of CropUnits.
	PricePerUnit float64    // Asking price per unit, positive.
	Location     string     // Where the produce is, 2 to 200 characters.
	Description  string     // Optional free text, at most 500 characters.
	Status       CropStatus // Lifecycle state; new listings start as available.
	CreatedAt    time.Time  // Timestamp of when the crop was listed.
	UpdatedAt    time.Time  // Timestamp of the last modification.
}
