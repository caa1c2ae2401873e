// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"croptrade/internal/domain/entity"
	"croptrade/internal/domain/repository"
	"croptrade/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// transportRequestRepository implements the repository.TransportRequestRepository interface.
type transportRequestRepository struct {
	db *gorm.DB
}

// NewTransportRequestRepository is the constructor for transportRequestRepository.
func NewTransportRequestRepository(db *gorm.DB) repository.TransportRequestRepository {
	return &transportRequestRepository{
		db: db,
	}
}

// Create persists a new pending request.
func (repo *transportRequestRepository) Create(ctx context.Context, request *entity.TransportRequest) error {
	requestM := fromTransportRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		return errors.Wrap(err, "failed to create transport request")
	}

	// Update the entity with generated values
	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a single request by its ID.
func (repo *transportRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransportRequest, error) {
	var requestM model.TransportRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransportRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find transport request by ID")
	}

	return toTransportRequestDomain(&requestM), nil
}

// FindPending retrieves all unclaimed requests, newest first.
func (repo *transportRequestRepository) FindPending(ctx context.Context) ([]*entity.TransportRequest, error) {
	var requestModels []*model.TransportRequestModel

	if err := repo.db.WithContext(ctx).
		Where("status = ?", string(entity.TransportPending)).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pending transport requests")
	}

	return toTransportRequestDomainSlice(requestModels), nil
}

// FindByTransporterID retrieves requests assigned to a transporter, newest first.
func (repo *transportRequestRepository) FindByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*entity.TransportRequest, error) {
	var requestModels []*model.TransportRequestModel

	if err := repo.db.WithContext(ctx).
		Where("transporter_id = ?", transporterID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find transport requests by transporter")
	}

	return toTransportRequestDomainSlice(requestModels), nil
}

// Accept atomically claims a pending request for the transporter.
// A single conditional UPDATE arbitrates concurrent claims; whoever matches
// the pending row first wins and everyone else sees zero rows affected.
func (repo *transportRequestRepository) Accept(ctx context.Context, requestID, transporterID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TransportRequestModel{}).
		Where("id = ? AND status = ? AND transporter_id IS NULL", requestID, string(entity.TransportPending)).
		Updates(map[string]any{
			"transporter_id": transporterID,
			"status":         string(entity.TransportAccepted),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to accept transport request")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing request from one another transporter claimed.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.TransportRequestModel{}).
			Where("id = ?", requestID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check transport request existence")
		}
		if count == 0 {
			return repository.ErrTransportRequestNotFound
		}

		return repository.ErrRequestAlreadyTaken
	}

	return nil
}

// UpdateStatus changes the delivery status of a request.
func (repo *transportRequestRepository) UpdateStatus(ctx context.Context, requestID uuid.UUID, status entity.TransportRequestStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TransportRequestModel{}).
		Where("id = ?", requestID).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update transport request status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTransportRequestNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toTransportRequestDomain converts a GORM TransportRequestModel to a domain TransportRequest entity.
func toTransportRequestDomain(data *model.TransportRequestModel) *entity.TransportRequest {
	if data == nil {
		return nil
	}

	return &entity.TransportRequest{
		ID:               data.ID,
		RequesterID:      data.RequesterID,
		TransporterID:    data.TransporterID,
		CropID:           data.CropID,
		PickupLocation:   data.PickupLocation,
		DeliveryLocation: data.DeliveryLocation,
		PickupPoint:      pointFromColumns(data.PickupLon, data.PickupLat),
		DeliveryPoint:    pointFromColumns(data.DeliveryLon, data.DeliveryLat),
		Notes:            data.Notes,
		Status:           entity.TransportRequestStatus(data.Status),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func toTransportRequestDomainSlice(models []*model.TransportRequestModel) []*entity.TransportRequest {
	requests := make([]*entity.TransportRequest, 0, len(models))
	for _, requestM := range models {
		requests = append(requests, toTransportRequestDomain(requestM))
	}

	return requests
}

// fromTransportRequestDomain converts a domain TransportRequest entity to a GORM TransportRequestModel.
func fromTransportRequestDomain(data *entity.TransportRequest) *model.TransportRequestModel {
	if data == nil {
		return nil
	}

	requestM := &model.TransportRequestModel{
		ID:               data.ID,
		RequesterID:      data.RequesterID,
		TransporterID:    data.TransporterID,
		CropID:           data.CropID,
		PickupLocation:   data.PickupLocation,
		DeliveryLocation: data.DeliveryLocation,
		Notes:            data.Notes,
		Status:           string(data.Status),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
	requestM.PickupLon, requestM.PickupLat = columnsFromPoint(data.PickupPoint)
	requestM.DeliveryLon, requestM.DeliveryLat = columnsFromPoint(data.DeliveryPoint)

	return requestM
}

// pointFromColumns folds a lon/lat column pair into a geometry point.
// A half-filled pair is treated as no coordinates.
func pointFromColumns(lon, lat *float64) *orb.Point {
	if lon == nil || lat == nil {
		return nil
	}

	p := orb.Point{*lon, *lat}

	return &p
}

func columnsFromPoint(p *orb.Point) (lon, lat *float64) {
	if p == nil {
		return nil, nil
	}

	lonV, latV := p.Lon(), p.Lat()

	return &lonV, &latV
}
