// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
)

// RequestWithDistance is a pending request annotated with the road-free
// distance between pickup and delivery, when both carry coordinates.
type RequestWithDistance struct {
	*entity.TransportRequest

	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// TransporterStats summarizes a transporter's trips.
type TransporterStats struct {
	ActiveTrips    int `json:"active_trips"`
	CompletedTrips int `json:"completed_trips"`
}

// TransporterOverviewOutput is the transporter dashboard payload.
type TransporterOverviewOutput struct {
	Transporter     *entity.Transporter        `json:"transporter"`
	MyRequests      []*entity.TransportRequest `json:"my_requests"`
	PendingRequests []*RequestWithDistance     `json:"pending_requests"`
	Stats           TransporterStats           `json:"stats"`
}

// TransporterUsecase defines the transporter dashboard operations.
type TransporterUsecase interface {
	// Overview returns the transporter's record, assigned trips and the
	// open pool of pending requests.
	Overview(ctx context.Context, userID uuid.UUID) (*TransporterOverviewOutput, error)

	// AcceptRequest claims a pending request for this transporter.
	AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) error

	// AdvanceRequest moves an assigned request along the delivery chain.
	AdvanceRequest(ctx context.Context, userID, requestID uuid.UUID, status entity.TransportRequestStatus) error

	// ToggleAvailability flips whether the transporter accepts new work.
	ToggleAvailability(ctx context.Context, userID uuid.UUID) (*entity.Transporter, error)
}
