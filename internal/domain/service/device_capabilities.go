package service

import "context"

// Location is a device geolocation fix.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// DeviceCapabilities defines the bridge to native device features used by
// the mobile shell. When no native bridge is configured the implementation
// returns deterministic demo values so the app stays usable in a browser.
type DeviceCapabilities interface {
	// TakePhoto opens the camera and returns the captured photo path.
	TakePhoto(ctx context.Context) (string, error)

	// CurrentLocation returns the device's current position.
	CurrentLocation(ctx context.Context) (*Location, error)

	// RegisterForPush requests push permission and returns the device token.
	RegisterForPush(ctx context.Context) (string, error)
}
