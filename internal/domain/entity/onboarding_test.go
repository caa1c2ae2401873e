package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOnboardingState_TransitionTable(t *testing.T) {
	tests := []struct {
		name string
		snap OnboardingSnapshot
		want OnboardingState
	}{
		{
			name: "session loading wins over everything",
			snap: OnboardingSnapshot{SessionLoading: true, Role: RoleFarmer},
			want: OnboardingLoading,
		},
		{
			name: "role loading wins over everything",
			snap: OnboardingSnapshot{RoleLoading: true, Role: RoleTransporter, HasTransporterDetails: true},
			want: OnboardingLoading,
		},
		{
			name: "profile loading wins over everything",
			snap: OnboardingSnapshot{ProfileLoading: true},
			want: OnboardingLoading,
		},
		{
			name: "no role resolved",
			snap: OnboardingSnapshot{Role: RoleNone},
			want: OnboardingNeedsRole,
		},
		{
			name: "farmer goes straight to ready",
			snap: OnboardingSnapshot{Role: RoleFarmer},
			want: OnboardingReady,
		},
		{
			name: "buyer goes straight to ready",
			snap: OnboardingSnapshot{Role: RoleBuyer},
			want: OnboardingReady,
		},
		{
			name: "transporter without vehicle needs setup",
			snap: OnboardingSnapshot{Role: RoleTransporter},
			want: OnboardingNeedsTransporterSetup,
		},
		{
			name: "transporter with vehicle is ready",
			snap: OnboardingSnapshot{Role: RoleTransporter, HasTransporterDetails: true},
			want: OnboardingReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOnboardingState(tt.snap))
			// Pure and idempotent: same snapshot, same answer.
			assert.Equal(t, tt.want, NextOnboardingState(tt.snap))
		})
	}
}

func TestNextOnboardingState_NeedsRolePrecedesTransporterSetup(t *testing.T) {
	// A missing role is asked for before vehicle details, even though the
	// eventual transporter would also lack a vehicle record.
	state := NextOnboardingState(OnboardingSnapshot{Role: RoleNone, HasTransporterDetails: false})
	assert.Equal(t, OnboardingNeedsRole, state)
}

func TestOnboardingMachine_StartsLoading(t *testing.T) {
	m := NewOnboardingMachine(uuid.New())

	state, _ := m.State()
	assert.Equal(t, OnboardingLoading, state)
}

func TestOnboardingMachine_StaleResolutionDiscarded(t *testing.T) {
	m := NewOnboardingMachine(uuid.New())

	first := m.BeginResolve()
	second := m.BeginResolve()

	// The newer round finishes first.
	require.True(t, m.ApplyResolution(second, RoleFarmer, false))
	state, role := m.State()
	require.Equal(t, OnboardingReady, state)
	require.Equal(t, RoleFarmer, role)

	// The older round straggles in afterwards and must be ignored.
	assert.False(t, m.ApplyResolution(first, RoleNone, false))
	state, role = m.State()
	assert.Equal(t, OnboardingReady, state)
	assert.Equal(t, RoleFarmer, role)
}

func TestOnboardingMachine_ReadyLatches(t *testing.T) {
	m := NewOnboardingMachine(uuid.New())

	gen := m.BeginResolve()
	require.True(t, m.ApplyResolution(gen, RoleBuyer, false))

	state, _ := m.State()
	require.Equal(t, OnboardingReady, state)

	// A background refresh never bounces a ready user back to a modal.
	refresh := m.BeginResolve()
	state, _ = m.State()
	assert.Equal(t, OnboardingReady, state)

	require.True(t, m.ApplyResolution(refresh, RoleBuyer, false))
	state, _ = m.State()
	assert.Equal(t, OnboardingReady, state)
}

func TestOnboardingMachine_RoleSelectionIsOptimistic(t *testing.T) {
	m := NewOnboardingMachine(uuid.New())

	gen := m.BeginResolve()
	require.True(t, m.ApplyResolution(gen, RoleNone, false))
	state, _ := m.State()
	require.Equal(t, OnboardingNeedsRole, state)

	m.ApplyRoleSelected(RoleTransporter)
	state, role := m.State()
	assert.Equal(t, OnboardingNeedsTransporterSetup, state)
	assert.Equal(t, RoleTransporter, role)

	m.ApplyVehicleRegistered()
	state, _ = m.State()
	assert.Equal(t, OnboardingReady, state)
}

func TestOnboardingMachine_FailedResolveKeepsPriorState(t *testing.T) {
	m := NewOnboardingMachine(uuid.New())

	gen := m.BeginResolve()
	require.True(t, m.ApplyResolution(gen, RoleNone, false))
	state, _ := m.State()
	require.Equal(t, OnboardingNeedsRole, state)

	retry := m.BeginResolve()
	m.ResolveFailed(retry)

	state, _ = m.State()
	assert.Equal(t, OnboardingNeedsRole, state)
}

func TestOnboardingMachine_FreshMachinePerIdentity(t *testing.T) {
	first := NewOnboardingMachine(uuid.New())
	gen := first.BeginResolve()
	require.True(t, first.ApplyResolution(gen, RoleFarmer, false))
	state, _ := first.State()
	require.Equal(t, OnboardingReady, state)

	// A new identity starts over from loading; the old latch does not carry.
	second := NewOnboardingMachine(uuid.New())
	state, _ = second.State()
	assert.Equal(t, OnboardingLoading, state)
}
