package device

import (
	"context"
	"testing"

	"croptrade/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCapabilities(t *testing.T) {
	caps, err := NewDeviceCapabilities(Params{
		Config: &config.Config{Device: &config.DeviceConfig{DemoMode: true}},
	})
	require.NoError(t, err)

	ctx := context.Background()

	photo, err := caps.TakePhoto(ctx)
	require.NoError(t, err)
	assert.Equal(t, "demo-photo-path.jpg", photo)

	loc, err := caps.CurrentLocation(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 12.9716, loc.Latitude, 0.0001)
	assert.InDelta(t, 77.5946, loc.Longitude, 0.0001)

	token, err := caps.RegisterForPush(ctx)
	require.NoError(t, err)
	assert.Equal(t, "demo-push-token", token)
}

func TestNewDeviceCapabilities_NoBridge(t *testing.T) {
	_, err := NewDeviceCapabilities(Params{
		Config: &config.Config{Device: &config.DeviceConfig{DemoMode: false}},
	})

	assert.Error(t, err)
}

func TestNewDeviceCapabilities_DefaultsToDemo(t *testing.T) {
	caps, err := NewDeviceCapabilities(Params{Config: &config.Config{}})

	require.NoError(t, err)
	assert.NotNil(t, caps)
}
