// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for transport request persistence.
var (
	// ErrTransportRequestNotFound is returned when a request does not exist.
	ErrTransportRequestNotFound = errors.New("transport request not found")
	// ErrRequestAlreadyTaken is returned when accepting a request another
	// transporter already claimed.
	ErrRequestAlreadyTaken = errors.New("transport request already taken")
)

// TransportRequestRepository defines the operations for transport requests.
type TransportRequestRepository interface {
	// Create persists a new pending request.
	Create(ctx context.Context, request *entity.TransportRequest) error

	// FindByID retrieves a single request by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransportRequest, error)

	// FindPending retrieves all unclaimed requests, newest first.
	FindPending(ctx context.Context) ([]*entity.TransportRequest, error)

	// FindByTransporterID retrieves requests assigned to a transporter, newest first.
	FindByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*entity.TransportRequest, error)

	// Accept atomically claims a pending request for the transporter.
	// Returns ErrRequestAlreadyTaken when the request is no longer pending.
	Accept(ctx context.Context, requestID, transporterID uuid.UUID) error

	// UpdateStatus changes the delivery status of a request.
	UpdateStatus(ctx context.Context, requestID uuid.UUID, status entity.TransportRequestStatus) error
}
