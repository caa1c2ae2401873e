// Package device bridges native device features for the mobile shell.
// The server has no real camera or GPS; demo mode answers with fixed
// stand-in values so client flows stay exercisable end to end.
package device

import (
	"context"

	"croptrade/config"
	"croptrade/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Demo values returned when no native bridge is wired up.
const (
	demoPhotoPath = "demo-photo-path.jpg"
	demoPushToken = "demo-push-token"
	demoLatitude  = 12.9716
	demoLongitude = 77.5946
	demoAccuracy  = 10
)

type demoCapabilities struct{}

// Params holds dependencies for DeviceCapabilities, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
}

// NewDeviceCapabilities returns the configured capability bridge.
// Only demo mode exists today; a native bridge would slot in here.
func NewDeviceCapabilities(params Params) (service.DeviceCapabilities, error) {
	if params.Config.Device != nil && !params.Config.Device.DemoMode {
		return nil, errors.New("no native device bridge is available; enable demo mode")
	}

	return &demoCapabilities{}, nil
}

// TakePhoto returns the demo photo path.
func (c *demoCapabilities) TakePhoto(_ context.Context) (string, error) {
	return demoPhotoPath, nil
}

// CurrentLocation returns a fixed Bengaluru fix.
func (c *demoCapabilities) CurrentLocation(_ context.Context) (*service.Location, error) {
	return &service.Location{
		Latitude:  demoLatitude,
		Longitude: demoLongitude,
		Accuracy:  demoAccuracy,
	}, nil
}

// RegisterForPush returns the demo push token.
func (c *demoCapabilities) RegisterForPush(_ context.Context) (string, error) {
	return demoPushToken, nil
}

// Module provides the device FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewDeviceCapabilities),
)
