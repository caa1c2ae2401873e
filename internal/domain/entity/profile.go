// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the public-facing details of a user, shared across all roles.
// It is created lazily the first time it is fetched and is never deleted.
type Profile struct {
	UserID       uuid.UUID // Links this profile to the User it belongs to (one-to-one).
	FullName     string    // The user's display name shown to trade counterparties.
	Phone        string    // Contact phone number, optional.
	Location     string    // Free-text location, e.g. "Village, District, State".
	UserType     string    // Free-text mirror of the chosen role, kept best-effort.
	AvatarURL    string    // Public URL of the uploaded avatar, empty when none.
	UPIPaymentID string    // UPI id used to render the payment QR code, optional.
	CreatedAt    time.Time // Timestamp of when this profile was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
