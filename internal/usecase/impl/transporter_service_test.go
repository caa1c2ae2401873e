package impl

import (
	"context"
	"testing"

	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/mocks"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transporterFixture struct {
	svc        usecase.TransporterUsecase
	txManager  *mocks.TransactionManager
	deviceRepo *mocks.DeviceRepository
	publisher  *mocks.EventPublisher
	notifier   *mocks.NotificationService
}

func newTransporterFixture() *transporterFixture {
	txManager := mocks.NewTransactionManager()
	deviceRepo := new(mocks.DeviceRepository)
	publisher := new(mocks.EventPublisher)

	svc := NewTransporterService(TransporterServiceParams{
		TxManager:       txManager,
		TransporterRepo: txManager.Factory.TransporterRepository,
		RequestRepo:     txManager.Factory.TransportRequestRepository,
		DeviceRepo:      deviceRepo,
		Publisher:       publisher,
		Logger:          newTestLogger(),
	})

	return &transporterFixture{svc: svc, txManager: txManager, deviceRepo: deviceRepo, publisher: publisher}
}

// newNotifyingTransporterFixture wires a notification backend in, so the
// requester push path runs.
func newNotifyingTransporterFixture() *transporterFixture {
	txManager := mocks.NewTransactionManager()
	deviceRepo := new(mocks.DeviceRepository)
	publisher := new(mocks.EventPublisher)
	notifier := new(mocks.NotificationService)

	svc := NewTransporterService(TransporterServiceParams{
		TxManager:       txManager,
		TransporterRepo: txManager.Factory.TransporterRepository,
		RequestRepo:     txManager.Factory.TransportRequestRepository,
		DeviceRepo:      deviceRepo,
		Publisher:       publisher,
		Notifier:        notifier,
		Logger:          newTestLogger(),
	})

	return &transporterFixture{svc: svc, txManager: txManager, deviceRepo: deviceRepo, publisher: publisher, notifier: notifier}
}

func TestTransporterService_Overview(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()

	transporter := &entity.Transporter{UserID: userID, VehicleType: "Truck", IsAvailable: true}
	myRequests := []*entity.TransportRequest{
		{ID: uuid.New(), TransporterID: &userID, Status: entity.TransportInTransit},
		{ID: uuid.New(), TransporterID: &userID, Status: entity.TransportDelivered},
		{ID: uuid.New(), TransporterID: &userID, Status: entity.TransportDelivered},
	}

	pickup := orb.Point{77.60, 13.00}
	delivery := orb.Point{77.59, 12.97}
	pending := []*entity.TransportRequest{
		{ID: uuid.New(), Status: entity.TransportPending, PickupPoint: &pickup, DeliveryPoint: &delivery},
		{ID: uuid.New(), Status: entity.TransportPending},
	}

	f.txManager.Factory.TransporterRepository.On("FindByUserID", ctx, userID).Return(transporter, nil)
	f.txManager.Factory.TransportRequestRepository.On("FindByTransporterID", ctx, userID).Return(myRequests, nil)
	f.txManager.Factory.TransportRequestRepository.On("FindPending", ctx).Return(pending, nil)

	out, err := f.svc.Overview(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Stats.ActiveTrips)
	assert.Equal(t, 2, out.Stats.CompletedTrips)
	require.Len(t, out.PendingRequests, 2)

	// Both points known: roughly 3.5 km between the two fixes.
	require.NotNil(t, out.PendingRequests[0].DistanceKm)
	assert.InDelta(t, 3.5, *out.PendingRequests[0].DistanceKm, 1.0)
	// Points missing: no distance annotation.
	assert.Nil(t, out.PendingRequests[1].DistanceKm)
}

func TestTransporterService_Overview_NoVehicle(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.TransporterRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrTransporterNotFound)

	out, err := f.svc.Overview(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrTransporterNotFound)
	assert.Nil(t, out)
}

func TestTransporterService_AcceptRequest_Success(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransporterRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Transporter{UserID: userID}, nil)
	f.txManager.Factory.TransportRequestRepository.
		On("Accept", ctx, requestID, userID).Return(nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.AnythingOfType("*service.MarketplaceEvent")).
		Return(nil)

	err := f.svc.AcceptRequest(ctx, userID, requestID)

	require.NoError(t, err)
	f.publisher.AssertExpectations(t)
}

func TestTransporterService_AcceptRequest_NotifiesRequester(t *testing.T) {
	f := newNotifyingTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	requesterID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransporterRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Transporter{UserID: userID}, nil)
	f.txManager.Factory.TransportRequestRepository.
		On("Accept", ctx, requestID, userID).Return(nil)
	f.txManager.Factory.TransportRequestRepository.
		On("FindByID", ctx, requestID).
		Return(&entity.TransportRequest{ID: requestID, RequesterID: requesterID, Status: entity.TransportAccepted}, nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.AnythingOfType("*service.MarketplaceEvent")).
		Return(nil)
	f.deviceRepo.
		On("FindActiveDevicesByUser", ctx, requesterID).
		Return([]*entity.UserDevice{{ID: uuid.New(), UserID: requesterID, FCMToken: "token-1"}}, nil)
	f.notifier.
		On("SendBatchNotification", ctx, []string{"token-1"}, "Transport Update", "A transporter accepted your request", mock.Anything).
		Return(1, 0, nil, nil)

	err := f.svc.AcceptRequest(ctx, userID, requestID)

	require.NoError(t, err)
	f.notifier.AssertExpectations(t)
}

func TestTransporterService_AcceptRequest_AlreadyTaken(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransporterRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Transporter{UserID: userID}, nil)
	f.txManager.Factory.TransportRequestRepository.
		On("Accept", ctx, requestID, userID).
		Return(repository.ErrRequestAlreadyTaken)

	err := f.svc.AcceptRequest(ctx, userID, requestID)

	assert.ErrorIs(t, err, domainerrors.ErrRequestAlreadyTaken)
	f.publisher.AssertNotCalled(t, "PublishMarketplaceEvent", ctx, mock.Anything)
}

func TestTransporterService_AcceptRequest_NoVehicle(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.TransporterRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrTransporterNotFound)

	err := f.svc.AcceptRequest(ctx, userID, uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrNotTransporter)
}

func TestTransporterService_AdvanceRequest_Success(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransportRequestRepository.
		On("FindByID", ctx, requestID).
		Return(&entity.TransportRequest{ID: requestID, TransporterID: &userID, Status: entity.TransportAccepted}, nil)
	f.txManager.Factory.TransportRequestRepository.
		On("UpdateStatus", ctx, requestID, entity.TransportInTransit).Return(nil)
	f.publisher.
		On("PublishMarketplaceEvent", ctx, mock.AnythingOfType("*service.MarketplaceEvent")).
		Return(nil)

	err := f.svc.AdvanceRequest(ctx, userID, requestID, entity.TransportInTransit)

	require.NoError(t, err)
}

func TestTransporterService_AdvanceRequest_IllegalTransition(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransportRequestRepository.
		On("FindByID", ctx, requestID).
		Return(&entity.TransportRequest{ID: requestID, TransporterID: &userID, Status: entity.TransportAccepted}, nil)

	// Skipping in_transit is not allowed.
	err := f.svc.AdvanceRequest(ctx, userID, requestID, entity.TransportDelivered)

	assert.ErrorIs(t, err, domainerrors.ErrIllegalStatusTransition)
	f.txManager.Factory.TransportRequestRepository.
		AssertNotCalled(t, "UpdateStatus", ctx, requestID, mock.Anything)
}

func TestTransporterService_AdvanceRequest_NotAssigned(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransportRequestRepository.
		On("FindByID", ctx, requestID).
		Return(&entity.TransportRequest{ID: requestID, TransporterID: &otherID, Status: entity.TransportAccepted}, nil)

	err := f.svc.AdvanceRequest(ctx, userID, requestID, entity.TransportInTransit)

	assert.ErrorIs(t, err, domainerrors.ErrRequestNotAssigned)
}

func TestTransporterService_AdvanceRequest_PendingRequest(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	f.txManager.Factory.TransportRequestRepository.
		On("FindByID", ctx, requestID).
		Return(&entity.TransportRequest{ID: requestID, Status: entity.TransportPending}, nil)

	// A pending request has no assignee yet; it must go through Accept.
	err := f.svc.AdvanceRequest(ctx, userID, requestID, entity.TransportInTransit)

	assert.ErrorIs(t, err, domainerrors.ErrRequestNotAssigned)
}

func TestTransporterService_ToggleAvailability(t *testing.T) {
	f := newTransporterFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.TransporterRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Transporter{UserID: userID, IsAvailable: true}, nil)
	f.txManager.Factory.TransporterRepository.
		On("UpdateAvailability", ctx, userID, false).Return(nil)

	updated, err := f.svc.ToggleAvailability(ctx, userID)

	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
}
