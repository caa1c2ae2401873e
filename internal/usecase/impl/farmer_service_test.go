package impl

import (
	"context"
	"testing"

	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/service"
	"croptrade/internal/mocks"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type farmerFixture struct {
	svc       usecase.FarmerUsecase
	txManager *mocks.TransactionManager
	publisher *mocks.EventPublisher
}

func newFarmerFixture() *farmerFixture {
	txManager := mocks.NewTransactionManager()
	publisher := new(mocks.EventPublisher)

	svc := NewFarmerService(FarmerServiceParams{
		TxManager:   txManager,
		CropRepo:    txManager.Factory.CropRepository,
		TradeRepo:   new(mocks.TradeRepository),
		RequestRepo: txManager.Factory.TransportRequestRepository,
		Publisher:   publisher,
		Logger:      newTestLogger(),
	})

	return &farmerFixture{svc: svc, txManager: txManager, publisher: publisher}
}

func newFarmerFixtureWithTrades(tradeRepo *mocks.TradeRepository) *farmerFixture {
	txManager := mocks.NewTransactionManager()
	publisher := new(mocks.EventPublisher)

	svc := NewFarmerService(FarmerServiceParams{
		TxManager:   txManager,
		CropRepo:    txManager.Factory.CropRepository,
		TradeRepo:   tradeRepo,
		RequestRepo: txManager.Factory.TransportRequestRepository,
		Publisher:   publisher,
		Logger:      newTestLogger(),
	})

	return &farmerFixture{svc: svc, txManager: txManager, publisher: publisher}
}

func TestFarmerService_Overview_Stats(t *testing.T) {
	tradeRepo := new(mocks.TradeRepository)
	f := newFarmerFixtureWithTrades(tradeRepo)
	ctx := context.Background()
	userID := uuid.New()

	crops := []*entity.Crop{
		{ID: uuid.New(), UserID: userID, Status: entity.CropAvailable},
		{ID: uuid.New(), UserID: userID, Status: entity.CropAvailable},
		{ID: uuid.New(), UserID: userID, Status: entity.CropSold},
	}
	trades := []*entity.Trade{
		{SellerID: userID, TotalAmount: 12000, Status: entity.TradeCompleted},
		{SellerID: userID, TotalAmount: 8000, Status: entity.TradeCompleted},
		{SellerID: userID, TotalAmount: 5000, Status: entity.TradeCancelled},
		{SellerID: userID, TotalAmount: 3000, Status: entity.TradePending},
	}

	f.txManager.Factory.CropRepository.On("FindByUserID", ctx, userID).Return(crops, nil)
	tradeRepo.On("FindBySellerID", ctx, userID).Return(trades, nil)

	out, err := f.svc.Overview(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 3, out.Stats.TotalCrops)
	assert.Equal(t, 2, out.Stats.ActiveCrops)
	assert.Equal(t, 2, out.Stats.CompletedTrades)
	assert.InDelta(t, 20000, out.Stats.TotalRevenue, 0.001)
	assert.Equal(t, 50, out.Stats.SuccessRate)
}

func TestFarmerService_Overview_NoTrades(t *testing.T) {
	tradeRepo := new(mocks.TradeRepository)
	f := newFarmerFixtureWithTrades(tradeRepo)
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.CropRepository.On("FindByUserID", ctx, userID).Return([]*entity.Crop{}, nil)
	tradeRepo.On("FindBySellerID", ctx, userID).Return([]*entity.Trade{}, nil)

	out, err := f.svc.Overview(ctx, userID)

	require.NoError(t, err)
	assert.Zero(t, out.Stats.SuccessRate)
	assert.Zero(t, out.Stats.TotalRevenue)
}

func TestFarmerService_ListCrop_Success(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.CropRepository.
		On("Create", ctx, mock.MatchedBy(func(c *entity.Crop) bool {
			return c.UserID == userID &&
				c.Name == "Basmati Rice" &&
				c.Status == entity.CropAvailable
		})).Return(nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.MatchedBy(func(e *service.MarketplaceEvent) bool {
			return e.Type == service.EventCropListed && e.UserID == userID.String()
		})).Return(nil)

	crop, err := f.svc.ListCrop(ctx, userID, &usecase.ListCropInput{
		Name:         "  Basmati Rice ",
		Category:     "Grains & Cereals",
		Quantity:     25,
		Unit:         "quintal",
		PricePerUnit: 3200,
		Location:     "Hassan, Karnataka",
		Description:  "Freshly harvested",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.CropAvailable, crop.Status)
	f.publisher.AssertExpectations(t)
}

func TestFarmerService_ListCrop_PublishFailureDoesNotFailListing(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.CropRepository.
		On("Create", ctx, mock.AnythingOfType("*entity.Crop")).Return(nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.AnythingOfType("*service.MarketplaceEvent")).
		Return(assert.AnError)

	crop, err := f.svc.ListCrop(ctx, userID, &usecase.ListCropInput{
		Name:         "Tomatoes",
		Category:     "Vegetables",
		Quantity:     100,
		Unit:         "kg",
		PricePerUnit: 18,
		Location:     "Kolar",
	})

	require.NoError(t, err)
	assert.NotNil(t, crop)
}

func TestFarmerService_ListCrop_Validation(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	userID := uuid.New()

	valid := usecase.ListCropInput{
		Name:         "Tomatoes",
		Category:     "Vegetables",
		Quantity:     100,
		Unit:         "kg",
		PricePerUnit: 18,
		Location:     "Kolar",
	}

	cases := []struct {
		name   string
		mutate func(*usecase.ListCropInput)
	}{
		{"name too short", func(in *usecase.ListCropInput) { in.Name = "T" }},
		{"unknown category", func(in *usecase.ListCropInput) { in.Category = "Electronics" }},
		{"zero quantity", func(in *usecase.ListCropInput) { in.Quantity = 0 }},
		{"unknown unit", func(in *usecase.ListCropInput) { in.Unit = "litres" }},
		{"negative price", func(in *usecase.ListCropInput) { in.PricePerUnit = -5 }},
		{"location too short", func(in *usecase.ListCropInput) { in.Location = "K" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			_, err := f.svc.ListCrop(ctx, userID, &input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	f.txManager.Factory.CropRepository.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestFarmerService_UpdateCropStatus_Success(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	userID := uuid.New()
	cropID := uuid.New()

	f.txManager.Factory.CropRepository.
		On("FindByID", ctx, cropID).
		Return(&entity.Crop{ID: cropID, UserID: userID, Status: entity.CropAvailable}, nil)
	f.txManager.Factory.CropRepository.
		On("UpdateStatus", ctx, cropID, entity.CropSold).Return(nil)

	err := f.svc.UpdateCropStatus(ctx, userID, cropID, entity.CropSold)

	require.NoError(t, err)
}

func TestFarmerService_UpdateCropStatus_OwnershipViolation(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()
	cropID := uuid.New()

	f.txManager.Factory.CropRepository.
		On("FindByID", ctx, cropID).
		Return(&entity.Crop{ID: cropID, UserID: owner}, nil)

	err := f.svc.UpdateCropStatus(ctx, intruder, cropID, entity.CropWithdrawn)

	assert.ErrorIs(t, err, domainerrors.ErrCropOwnershipViolation)
	f.txManager.Factory.CropRepository.AssertNotCalled(t, "UpdateStatus", ctx, cropID, mock.Anything)
}

func TestFarmerService_UpdateCropStatus_UnknownStatus(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()

	err := f.svc.UpdateCropStatus(ctx, uuid.New(), uuid.New(), entity.CropStatus("expired"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCropStatus)
}

func TestFarmerService_RequestTransport_WithCoordinates(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	userID := uuid.New()
	cropID := uuid.New()

	pickupLat, pickupLon := 13.00, 77.60
	deliveryLat, deliveryLon := 12.97, 77.59

	f.txManager.Factory.TransportRequestRepository.
		On("Create", ctx, mock.MatchedBy(func(r *entity.TransportRequest) bool {
			return r.RequesterID == userID &&
				r.Status == entity.TransportPending &&
				r.PickupPoint != nil && r.DeliveryPoint != nil &&
				r.PickupPoint.Lon() == pickupLon && r.PickupPoint.Lat() == pickupLat
		})).Return(nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.MatchedBy(func(e *service.MarketplaceEvent) bool {
			return e.Type == service.EventTransportRequestCreated
		})).Return(nil)

	request, err := f.svc.RequestTransport(ctx, userID, &usecase.RequestTransportInput{
		CropID:           &cropID,
		PickupLocation:   "Farm gate, Hoskote",
		DeliveryLocation: "APMC yard, Bengaluru",
		PickupLat:        &pickupLat,
		PickupLon:        &pickupLon,
		DeliveryLat:      &deliveryLat,
		DeliveryLon:      &deliveryLon,
		Notes:            "Call on arrival",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TransportPending, request.Status)
	assert.Equal(t, cropID, *request.CropID)
}

func TestFarmerService_RequestTransport_MissingLocations(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()

	_, err := f.svc.RequestTransport(ctx, uuid.New(), &usecase.RequestTransportInput{
		PickupLocation:   " ",
		DeliveryLocation: "APMC yard",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestFarmerService_RequestTransport_CoordinatesOptional(t *testing.T) {
	f := newFarmerFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.TransportRequestRepository.
		On("Create", ctx, mock.MatchedBy(func(r *entity.TransportRequest) bool {
			return r.PickupPoint == nil && r.DeliveryPoint == nil
		})).Return(nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.AnythingOfType("*service.MarketplaceEvent")).Return(nil)

	lat := 13.0
	request, err := f.svc.RequestTransport(ctx, userID, &usecase.RequestTransportInput{
		PickupLocation:   "Farm gate",
		DeliveryLocation: "Mandi",
		// Half a coordinate pair is treated as no coordinates.
		PickupLat: &lat,
	})

	require.NoError(t, err)
	assert.Nil(t, request.PickupPoint)
}
