// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
)

// MaxAvatarSize is the largest accepted avatar upload, in bytes.
const MaxAvatarSize = 5 * 1024 * 1024

// --- Input DTOs ---

// UpdateProfileInput defines the editable profile fields. Nil pointers
// leave the current value untouched.
type UpdateProfileInput struct {
	FullName     *string `json:"full_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Location     *string `json:"location,omitempty"`
	UPIPaymentID *string `json:"upi_payment_id,omitempty"`
}

// UploadAvatarInput carries an avatar image upload.
type UploadAvatarInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile fetches the user's profile, creating an empty one on first access.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// UpdateProfile applies the given field changes.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error)

	// UploadAvatar stores the avatar image and records its public URL.
	UploadAvatar(ctx context.Context, userID uuid.UUID, input *UploadAvatarInput) (*entity.Profile, error)

	// PaymentQR renders the user's UPI payment id as a PNG QR code.
	PaymentQR(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
