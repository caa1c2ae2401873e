// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// VehicleTypes lists the accepted vehicle classes for transporter registration.
var VehicleTypes = []string{"Truck", "Van", "Pickup", "Mini Truck", "Tractor Trolley"}

// CapacityClasses lists the accepted load capacity buckets.
var CapacityClasses = []string{"Up to 500 kg", "500 kg - 1 ton", "1 - 3 tons", "3 - 5 tons", "5+ tons"}

// IsValidVehicleType reports whether the given vehicle type is accepted.
func IsValidVehicleType(vt string) bool {
	return slices.Contains(VehicleTypes, vt)
}

// IsValidCapacityClass reports whether the given capacity bucket is accepted.
func IsValidCapacityClass(c string) bool {
	return slices.Contains(CapacityClasses, c)
}

// Transporter holds the vehicle details a transporter registers during
// onboarding. Its existence is what completes a transporter's setup; the
// onboarding flow keeps asking for it until a row exists.
type Transporter struct {
	ID            uuid.UUID // The unique ID for this transporter record.
	UserID        uuid.UUID // Links the record to the User it belongs to (one-to-one).
	VehicleType   string    // One of VehicleTypes.
	VehicleNumber string    // Registration plate, stored uppercased, at most 20 characters.
	Capacity      string    // One of CapacityClasses.
	ServiceArea   string    // Free-text coverage area, at most 100 characters.
	IsAvailable   bool      // Whether the transporter currently accepts new requests.
	CreatedAt     time.Time // Timestamp of when the vehicle was registered.
	UpdatedAt     time.Time // Timestamp of the last modification.
}
