// Package entity contains the core business objects of the project.
package entity

import (
	"sync"

	"github.com/google/uuid"
)

// OnboardingState is the single gating state of a user's onboarding journey.
// Exactly one state holds at a time; the dashboards are only reachable from
// OnboardingReady.
type OnboardingState string

const (
	// OnboardingLoading means role resolution is still in flight.
	OnboardingLoading OnboardingState = "loading"
	// OnboardingNeedsRole means the user has not chosen a marketplace role yet.
	OnboardingNeedsRole OnboardingState = "needs_role"
	// OnboardingNeedsTransporterSetup means a transporter still has to register a vehicle.
	OnboardingNeedsTransporterSetup OnboardingState = "needs_transporter_setup"
	// OnboardingReady means the user may enter their role dashboard.
	OnboardingReady OnboardingState = "ready"
)

// OnboardingSnapshot is everything the transition function looks at.
type OnboardingSnapshot struct {
	SessionLoading        bool
	RoleLoading           bool
	ProfileLoading        bool
	Role                  Role
	HasTransporterDetails bool
}

// NextOnboardingState derives the onboarding state from a snapshot.
// It is pure: equal snapshots always produce equal states, and loading
// always wins over everything else.
func NextOnboardingState(s OnboardingSnapshot) OnboardingState {
	switch {
	case s.SessionLoading || s.RoleLoading || s.ProfileLoading:
		return OnboardingLoading
	case s.Role == RoleNone:
		return OnboardingNeedsRole
	case s.Role == RoleTransporter && !s.HasTransporterDetails:
		return OnboardingNeedsTransporterSetup
	default:
		return OnboardingReady
	}
}

// OnboardingMachine tracks one identity's onboarding progress across
// concurrent resolutions. Each resolution round is tagged with a generation;
// results carrying a superseded generation are discarded, so the newest
// requested resolution always wins regardless of completion order.
//
// Once the machine reaches OnboardingReady it latches there: background
// refreshes can never bounce the user out of their dashboard. A different
// identity gets a fresh machine instead.
type OnboardingMachine struct {
	mu sync.Mutex

	userID                uuid.UUID
	generation            uint64
	resolving             bool
	role                  Role
	hasTransporterDetails bool
	ready                 bool
}

// NewOnboardingMachine creates a machine for the given identity, starting
// in the loading state.
func NewOnboardingMachine(userID uuid.UUID) *OnboardingMachine {
	return &OnboardingMachine{
		userID:    userID,
		resolving: true,
	}
}

// UserID returns the identity this machine belongs to.
func (m *OnboardingMachine) UserID() uuid.UUID {
	return m.userID
}

// BeginResolve marks a new resolution round and returns its generation.
// The caller must pass the same generation back to ApplyResolution.
func (m *OnboardingMachine) BeginResolve() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.resolving = true

	return m.generation
}

// ApplyResolution feeds a finished resolution into the machine. Results
// from a superseded generation are dropped and the method reports false.
func (m *OnboardingMachine) ApplyResolution(generation uint64, role Role, hasTransporterDetails bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		return false
	}

	m.resolving = false
	m.role = role
	m.hasTransporterDetails = hasTransporterDetails
	m.latch()

	return true
}

// ResolveFailed ends the current resolution round without new data.
// Prior confirmed state stays intact.
func (m *OnboardingMachine) ResolveFailed(generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		return
	}
	m.resolving = false
}

// ApplyRoleSelected records a confirmed role assignment without re-fetching.
func (m *OnboardingMachine) ApplyRoleSelected(role Role) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.role = role
	m.resolving = false
	m.latch()
}

// ApplyVehicleRegistered records a confirmed vehicle registration without re-fetching.
func (m *OnboardingMachine) ApplyVehicleRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hasTransporterDetails = true
	m.resolving = false
	m.latch()
}

// State returns the current onboarding state and, once determined, the role.
func (m *OnboardingMachine) State() (OnboardingState, Role) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.deriveLocked(), m.role
}

// latch must be called with m.mu held.
func (m *OnboardingMachine) latch() {
	if m.deriveLocked() == OnboardingReady {
		m.ready = true
	}
}

// deriveLocked must be called with m.mu held.
func (m *OnboardingMachine) deriveLocked() OnboardingState {
	if m.ready {
		return OnboardingReady
	}

	return NextOnboardingState(OnboardingSnapshot{
		RoleLoading:           m.resolving,
		Role:                  m.role,
		HasTransporterDetails: m.hasTransporterDetails,
	})
}
