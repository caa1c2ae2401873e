package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from TransportRequestStatus
		to   TransportRequestStatus
		ok   bool
	}{
		{TransportPending, TransportAccepted, true},
		{TransportAccepted, TransportInTransit, true},
		{TransportInTransit, TransportDelivered, true},
		{TransportPending, TransportInTransit, false},
		{TransportPending, TransportDelivered, false},
		{TransportAccepted, TransportDelivered, false},
		{TransportAccepted, TransportPending, false},
		{TransportInTransit, TransportAccepted, false},
		{TransportDelivered, TransportInTransit, false},
		{TransportDelivered, TransportDelivered, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleFarmer.IsValid())
	assert.True(t, RoleBuyer.IsValid())
	assert.True(t, RoleTransporter.IsValid())
	assert.False(t, RoleNone.IsValid())
	assert.False(t, Role("admin").IsValid())
}

func TestTransporterFormEnums(t *testing.T) {
	assert.True(t, IsValidVehicleType("Tractor Trolley"))
	assert.False(t, IsValidVehicleType("Bicycle"))
	assert.True(t, IsValidCapacityClass("1 - 3 tons"))
	assert.False(t, IsValidCapacityClass("10 tons"))
}

func TestCropEnums(t *testing.T) {
	assert.True(t, IsValidCropCategory("Grains & Cereals"))
	assert.False(t, IsValidCropCategory("Machinery"))
	assert.True(t, IsValidCropUnit("quintal"))
	assert.False(t, IsValidCropUnit("litres"))
	assert.True(t, CropAvailable.IsValid())
	assert.False(t, CropStatus("archived").IsValid())
}
