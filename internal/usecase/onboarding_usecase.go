// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SelectRoleInput carries the role the user picked during onboarding.
type SelectRoleInput struct {
	Role string
}

// RegisterVehicleInput carries the transporter onboarding form.
type RegisterVehicleInput struct {
	VehicleType   string
	VehicleNumber string
	Capacity      string
	ServiceArea   string
}

// --- Output DTOs ---

// OnboardingStatusOutput reports where the user stands in onboarding.
// Role is only meaningful once State is ready.
type OnboardingStatusOutput struct {
	State entity.OnboardingState
	Role  entity.Role
}

// OnboardingUsecase gates access to the role dashboards. It owns one state
// machine per signed-in identity and guarantees a single blocking state at
// a time: loading, role selection, transporter setup, or ready.
type OnboardingUsecase interface {
	// Status resolves the user's role and setup progress and reports the
	// resulting onboarding state.
	Status(ctx context.Context, userID uuid.UUID) (*OnboardingStatusOutput, error)

	// SelectRole assigns the chosen role. The first successful assignment
	// wins; later attempts fail with a conflict.
	SelectRole(ctx context.Context, userID uuid.UUID, input *SelectRoleInput) (*OnboardingStatusOutput, error)

	// RegisterVehicle completes transporter setup with the vehicle form.
	RegisterVehicle(ctx context.Context, userID uuid.UUID, input *RegisterVehicleInput) (*OnboardingStatusOutput, error)

	// Release drops the user's onboarding machine, typically on sign-out.
	Release(userID uuid.UUID)
}
