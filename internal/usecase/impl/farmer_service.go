package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "croptrade/internal/delivery/context"
	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/domain/service"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	minCropNameLength     = 2
	maxCropNameLength     = 100
	minCropLocationLength = 2
	maxCropLocationLength = 200
	maxCropDescription    = 500
)

// farmerService implements the FarmerUsecase interface.
type farmerService struct {
	txManager   repository.TransactionManager
	cropRepo    repository.CropRepository
	tradeRepo   repository.TradeRepository
	requestRepo repository.TransportRequestRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// FarmerServiceParams holds dependencies for FarmerService, injected by Fx.
type FarmerServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CropRepo    repository.CropRepository
	TradeRepo   repository.TradeRepository
	RequestRepo repository.TransportRequestRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewFarmerService is the constructor for farmerService.
func NewFarmerService(params FarmerServiceParams) usecase.FarmerUsecase {
	return &farmerService{
		txManager:   params.TxManager,
		cropRepo:    params.CropRepo,
		tradeRepo:   params.TradeRepo,
		requestRepo: params.RequestRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *farmerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Overview returns the farmer's crops, sales and derived stats.
func (srv *farmerService) Overview(ctx context.Context, userID uuid.UUID) (*usecase.FarmerOverviewOutput, error) {
	crops, err := srv.cropRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load farmer crops")
	}

	trades, err := srv.tradeRepo.FindBySellerID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load farmer trades")
	}

	return &usecase.FarmerOverviewOutput{
		Crops:  crops,
		Trades: trades,
		Stats:  deriveFarmerStats(crops, trades),
	}, nil
}

func deriveFarmerStats(crops []*entity.Crop, trades []*entity.Trade) usecase.FarmerStats {
	stats := usecase.FarmerStats{TotalCrops: len(crops)}

	for _, crop := range crops {
		if crop.Status == entity.CropAvailable {
			stats.ActiveCrops++
		}
	}

	for _, trade := range trades {
		if trade.Status == entity.TradeCompleted {
			stats.CompletedTrades++
			stats.TotalRevenue += trade.TotalAmount
		}
	}

	if len(trades) > 0 {
		stats.SuccessRate = stats.CompletedTrades * 100 / len(trades)
	}

	return stats
}

// ListCrop places a new listing on the marketplace.
func (srv *farmerService) ListCrop(ctx context.Context, userID uuid.UUID, input *usecase.ListCropInput) (*entity.Crop, error) {
	crop, err := buildCrop(userID, input)
	if err != nil {
		srv.log(ctx).Warn("Rejected crop listing", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	if err := srv.cropRepo.Create(ctx, crop); err != nil {
		srv.log(ctx).Error("Failed to create crop listing", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create crop listing")
	}

	srv.log(ctx).Info("Crop listed", slog.Any("userID", userID), slog.Any("cropID", crop.ID), slog.String("name", crop.Name))

	srv.publish(ctx, &service.MarketplaceEvent{
		Type:     service.EventCropListed,
		UserID:   userID.String(),
		EntityID: crop.ID.String(),
		Payload: map[string]string{
			"name":     crop.Name,
			"category": crop.Category,
		},
	})

	return crop, nil
}

func buildCrop(userID uuid.UUID, input *usecase.ListCropInput) (*entity.Crop, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < minCropNameLength || len(name) > maxCropNameLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "crop name must be 2 to 100 characters")
	}
	if !entity.IsValidCropCategory(input.Category) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown crop category")
	}
	if input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be positive")
	}
	if !entity.IsValidCropUnit(input.Unit) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown quantity unit")
	}
	if input.PricePerUnit <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price per unit must be positive")
	}

	location := strings.TrimSpace(input.Location)
	if len(location) < minCropLocationLength || len(location) > maxCropLocationLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "location must be 2 to 200 characters")
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > maxCropDescription {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "description exceeds 500 characters")
	}

	return &entity.Crop{
		UserID:       userID,
		Name:         name,
		Category:     input.Category,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		PricePerUnit: input.PricePerUnit,
		Location:     location,
		Description:  description,
		Status:       entity.CropAvailable,
	}, nil
}

// UpdateCropStatus changes the status of one of the farmer's own listings.
// Read and write share one transaction so the ownership check cannot race
// with another update.
func (srv *farmerService) UpdateCropStatus(ctx context.Context, userID, cropID uuid.UUID, status entity.CropStatus) error {
	if !status.IsValid() {
		return errors.Wrap(domainerrors.ErrInvalidCropStatus, "unknown crop status")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cropRepo := repoFactory.CropRepo()

		crop, findErr := cropRepo.FindByID(ctx, cropID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCropNotFound) {
				return errors.Wrap(domainerrors.ErrCropNotFound, "crop not found")
			}

			return errors.Wrap(findErr, "failed to find crop")
		}
		if crop.UserID != userID {
			return errors.Wrap(domainerrors.ErrCropOwnershipViolation, "crop belongs to another farmer")
		}

		if updateErr := cropRepo.UpdateStatus(ctx, cropID, status); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update crop status")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute crop status transaction", slog.Any("userID", userID), slog.Any("cropID", cropID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute crop status transaction")
	}

	srv.log(ctx).Info("Crop status updated", slog.Any("cropID", cropID), slog.Any("status", status))

	return nil
}

// RequestTransport raises a pending transport request.
func (srv *farmerService) RequestTransport(ctx context.Context, userID uuid.UUID, input *usecase.RequestTransportInput) (*entity.TransportRequest, error) {
	request, err := buildTransportRequest(userID, input)
	if err != nil {
		srv.log(ctx).Warn("Rejected transport request", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	if err := srv.requestRepo.Create(ctx, request); err != nil {
		srv.log(ctx).Error("Failed to create transport request", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create transport request")
	}

	srv.log(ctx).Info("Transport requested", slog.Any("userID", userID), slog.Any("requestID", request.ID))

	srv.publish(ctx, &service.MarketplaceEvent{
		Type:     service.EventTransportRequestCreated,
		UserID:   userID.String(),
		EntityID: request.ID.String(),
		Payload: map[string]string{
			"pickup":   request.PickupLocation,
			"delivery": request.DeliveryLocation,
		},
	})

	return request, nil
}

func buildTransportRequest(userID uuid.UUID, input *usecase.RequestTransportInput) (*entity.TransportRequest, error) {
	pickup := strings.TrimSpace(input.PickupLocation)
	delivery := strings.TrimSpace(input.DeliveryLocation)
	if pickup == "" || delivery == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "pickup and delivery locations are required")
	}

	return &entity.TransportRequest{
		RequesterID:      userID,
		CropID:           input.CropID,
		PickupLocation:   pickup,
		DeliveryLocation: delivery,
		PickupPoint:      pointFromCoords(input.PickupLon, input.PickupLat),
		DeliveryPoint:    pointFromCoords(input.DeliveryLon, input.DeliveryLat),
		Notes:            strings.TrimSpace(input.Notes),
		Status:           entity.TransportPending,
	}, nil
}

// pointFromCoords builds an (lon, lat) point, or nil when either half is missing.
func pointFromCoords(lon, lat *float64) *orb.Point {
	if lon == nil || lat == nil {
		return nil
	}
	p := orb.Point{*lon, *lat}

	return &p
}

// publish fans out a marketplace event, best effort. A broker outage must
// not fail the write that already committed.
func (srv *farmerService) publish(ctx context.Context, event *service.MarketplaceEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if err := srv.publisher.PublishMarketplaceEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish marketplace event", slog.String("type", event.Type), slog.Any("error", err))
	}
}
