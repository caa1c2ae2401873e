// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// TransportRequestStatus represents the delivery lifecycle of a request.
type TransportRequestStatus string

const (
	// TransportPending means the request awaits a transporter.
	TransportPending TransportRequestStatus = "pending"
	// TransportAccepted means a transporter committed to the trip.
	TransportAccepted TransportRequestStatus = "accepted"
	// TransportInTransit means the goods are on the road.
	TransportInTransit TransportRequestStatus = "in_transit"
	// TransportDelivered means the trip finished.
	TransportDelivered TransportRequestStatus = "delivered"
)

// IsValid checks if the status is a known value.
func (s TransportRequestStatus) IsValid() bool {
	switch s {
	case TransportPending, TransportAccepted, TransportInTransit, TransportDelivered:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status may advance to next.
// The only legal chain is pending -> accepted -> in_transit -> delivered.
func (s TransportRequestStatus) CanTransitionTo(next TransportRequestStatus) bool {
	switch s {
	case TransportPending:
		return next == TransportAccepted
	case TransportAccepted:
		return next == TransportInTransit
	case TransportInTransit:
		return next == TransportDelivered
	default:
		return false
	}
}

// TransportRequest is a farmer's ask to move goods from one place to another.
type TransportRequest struct {
	ID               uuid.UUID              // The unique ID for this request.
	RequesterID      uuid.UUID              // The farmer who raised the request.
	TransporterID    *uuid.UUID             // The transporter who accepted, nil while pending.
	CropID           *uuid.UUID             // Optional link to the crop being moved.
	PickupLocation   string                 // Free-text pickup address.
	DeliveryLocation string                 // Free-text delivery address.
	PickupPoint      *orb.Point             // Optional pickup coordinates (lon, lat).
	DeliveryPoint    *orb.Point             // Optional delivery coordinates (lon, lat).
	Notes            string                 // Optional instructions for the transporter.
	Status           TransportRequestStatus // Delivery lifecycle state.
	CreatedAt        time.Time              // Timestamp of when the request was raised.
	UpdatedAt        time.Time              // Timestamp of the last modification.
}
