// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"croptrade/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterDeviceInput carries a push registration from a mobile client.
type RegisterDeviceInput struct {
	FCMToken string
	DeviceID string
	Platform string
}

// --- Output DTOs ---

// CapabilitiesOutput reports what the device bridge returned.
type CapabilitiesOutput struct {
	PhotoPath string            `json:"photo_path"`
	Location  *service.Location `json:"location"`
	PushToken string            `json:"push_token"`
}

// MobileUsecase defines mobile companion features: device capability
// bridging, push registration and broadcast alerts.
type MobileUsecase interface {
	// Capabilities exercises the camera, geolocation and push bridges.
	Capabilities(ctx context.Context) (*CapabilitiesOutput, error)

	// RegisterDevice stores a device push token for the user.
	RegisterDevice(ctx context.Context, userID uuid.UUID, input *RegisterDeviceInput) error

	// SendPriceAlert pushes a crop price alert to the user's devices.
	SendPriceAlert(ctx context.Context, userID uuid.UUID, cropName string, price float64) error

	// SendWeatherWarning pushes a weather warning to the user's devices.
	SendWeatherWarning(ctx context.Context, userID uuid.UUID, warning string) error
}
