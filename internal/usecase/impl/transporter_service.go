package impl

import (
	"context"
	"log/slog"

	deliverycontext "croptrade/internal/delivery/context"
	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/domain/service"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// transporterService implements the TransporterUsecase interface.
type transporterService struct {
	txManager       repository.TransactionManager
	transporterRepo repository.TransporterRepository
	requestRepo     repository.TransportRequestRepository
	deviceRepo      repository.DeviceRepository
	publisher       service.EventPublisher
	notifier        service.NotificationService
	logger          *slog.Logger
}

// TransporterServiceParams holds dependencies for TransporterService, injected by Fx.
type TransporterServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	TransporterRepo repository.TransporterRepository
	RequestRepo     repository.TransportRequestRepository
	DeviceRepo      repository.DeviceRepository
	Publisher       service.EventPublisher
	Notifier        service.NotificationService
	Logger          *slog.Logger
}

// NewTransporterService is the constructor for transporterService.
func NewTransporterService(params TransporterServiceParams) usecase.TransporterUsecase {
	return &transporterService{
		txManager:       params.TxManager,
		transporterRepo: params.TransporterRepo,
		requestRepo:     params.RequestRepo,
		deviceRepo:      params.DeviceRepo,
		publisher:       params.Publisher,
		notifier:        params.Notifier,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *transporterService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Overview returns the transporter's record, assigned trips and the open
// pool of pending requests.
func (srv *transporterService) Overview(ctx context.Context, userID uuid.UUID) (*usecase.TransporterOverviewOutput, error) {
	transporter, err := srv.transporterRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTransporterNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTransporterNotFound, "no vehicle registered")
		}

		return nil, errors.Wrap(err, "failed to load transporter")
	}

	myRequests, err := srv.requestRepo.FindByTransporterID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assigned requests")
	}

	pending, err := srv.requestRepo.FindPending(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pending requests")
	}

	annotated := make([]*usecase.RequestWithDistance, 0, len(pending))
	for _, request := range pending {
		annotated = append(annotated, &usecase.RequestWithDistance{
			TransportRequest: request,
			DistanceKm:       tripDistanceKm(request),
		})
	}

	return &usecase.TransporterOverviewOutput{
		Transporter:     transporter,
		MyRequests:      myRequests,
		PendingRequests: annotated,
		Stats:           deriveTransporterStats(myRequests),
	}, nil
}

// tripDistanceKm computes the great-circle distance between pickup and
// delivery, or nil when either point is missing.
func tripDistanceKm(request *entity.TransportRequest) *float64 {
	if request.PickupPoint == nil || request.DeliveryPoint == nil {
		return nil
	}

	km := geo.Distance(*request.PickupPoint, *request.DeliveryPoint) / 1000

	return &km
}

func deriveTransporterStats(requests []*entity.TransportRequest) usecase.TransporterStats {
	stats := usecase.TransporterStats{}
	for _, request := range requests {
		switch request.Status {
		case entity.TransportAccepted, entity.TransportInTransit:
			stats.ActiveTrips++
		case entity.TransportDelivered:
			stats.CompletedTrips++
		}
	}

	return stats
}

// AcceptRequest claims a pending request for this transporter. The claim is
// atomic at the database level, so when two transporters race only the first
// one wins and the loser sees a conflict.
func (srv *transporterService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		transporterRepo := repoFactory.TransporterRepo()
		requestRepo := repoFactory.TransportRequestRepo()

		if _, findErr := transporterRepo.FindByUserID(ctx, userID); findErr != nil {
			if errors.Is(findErr, repository.ErrTransporterNotFound) {
				return errors.Wrap(domainerrors.ErrNotTransporter, "register a vehicle before accepting requests")
			}

			return errors.Wrap(findErr, "failed to load transporter")
		}

		if acceptErr := requestRepo.Accept(ctx, requestID, userID); acceptErr != nil {
			if errors.Is(acceptErr, repository.ErrRequestAlreadyTaken) {
				return errors.Wrap(domainerrors.ErrRequestAlreadyTaken, "request already claimed")
			}
			if errors.Is(acceptErr, repository.ErrTransportRequestNotFound) {
				return errors.Wrap(domainerrors.ErrTransportRequestNotFound, "request not found")
			}

			return errors.Wrap(acceptErr, "failed to accept request")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute accept request transaction", slog.Any("userID", userID), slog.Any("requestID", requestID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute accept request transaction")
	}

	srv.log(ctx).Info("Transport request accepted", slog.Any("userID", userID), slog.Any("requestID", requestID))

	srv.publishUpdate(ctx, userID, requestID, entity.TransportAccepted)
	srv.notifyRequester(ctx, requestID, entity.TransportAccepted)

	return nil
}

// AdvanceRequest moves an assigned request along the delivery chain. Only
// the assigned transporter may advance it, one step at a time.
func (srv *transporterService) AdvanceRequest(ctx context.Context, userID, requestID uuid.UUID, status entity.TransportRequestStatus) error {
	if !status.IsValid() {
		return errors.Wrap(domainerrors.ErrIllegalStatusTransition, "unknown request status")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requestRepo := repoFactory.TransportRequestRepo()

		request, findErr := requestRepo.FindByID(ctx, requestID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrTransportRequestNotFound) {
				return errors.Wrap(domainerrors.ErrTransportRequestNotFound, "request not found")
			}

			return errors.Wrap(findErr, "failed to find request")
		}

		if request.TransporterID == nil || *request.TransporterID != userID {
			return errors.Wrap(domainerrors.ErrRequestNotAssigned, "request is assigned to another transporter")
		}
		if !request.Status.CanTransitionTo(status) {
			return errors.Wrapf(domainerrors.ErrIllegalStatusTransition, "cannot move from %s to %s", request.Status, status)
		}

		if updateErr := requestRepo.UpdateStatus(ctx, requestID, status); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update request status")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute advance request transaction", slog.Any("requestID", requestID), slog.Any("status", status), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute advance request transaction")
	}

	srv.log(ctx).Info("Transport request advanced", slog.Any("requestID", requestID), slog.Any("status", status))

	srv.publishUpdate(ctx, userID, requestID, status)
	srv.notifyRequester(ctx, requestID, status)

	return nil
}

// ToggleAvailability flips whether the transporter accepts new work.
func (srv *transporterService) ToggleAvailability(ctx context.Context, userID uuid.UUID) (*entity.Transporter, error) {
	var updated *entity.Transporter

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		transporterRepo := repoFactory.TransporterRepo()

		transporter, findErr := transporterRepo.FindByUserID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrTransporterNotFound) {
				return errors.Wrap(domainerrors.ErrTransporterNotFound, "no vehicle registered")
			}

			return errors.Wrap(findErr, "failed to load transporter")
		}

		transporter.IsAvailable = !transporter.IsAvailable
		if updateErr := transporterRepo.UpdateAvailability(ctx, userID, transporter.IsAvailable); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update availability")
		}

		updated = transporter

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute availability transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute availability transaction")
	}

	srv.log(ctx).Info("Availability toggled", slog.Any("userID", userID), slog.Bool("isAvailable", updated.IsAvailable))

	return updated, nil
}

func (srv *transporterService) publishUpdate(ctx context.Context, userID, requestID uuid.UUID, status entity.TransportRequestStatus) {
	event := &service.MarketplaceEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventTransportRequestUpdated,
		UserID:    userID.String(),
		EntityID:  requestID.String(),
		Payload:   map[string]string{"status": string(status)},
	}
	if err := srv.publisher.PublishMarketplaceEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish marketplace event", slog.String("type", event.Type), slog.Any("error", err))
	}
}

// notifyRequester pushes a delivery update to the farmer who raised the
// request. Push is best-effort and skipped entirely when no notification
// backend is configured.
func (srv *transporterService) notifyRequester(ctx context.Context, requestID uuid.UUID, status entity.TransportRequestStatus) {
	if srv.notifier == nil {
		return
	}

	request, err := srv.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load request for notification", slog.Any("requestID", requestID), slog.Any("error", err))

		return
	}

	devices, err := srv.deviceRepo.FindActiveDevicesByUser(ctx, request.RequesterID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load requester devices", slog.Any("requesterID", request.RequesterID), slog.Any("error", err))

		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	data := map[string]string{
		"type":       "transport_request",
		"request_id": requestID.String(),
		"status":     string(status),
	}
	if _, _, _, sendErr := srv.notifier.SendBatchNotification(ctx, tokens, "Transport Update", requesterUpdateBody(status), data); sendErr != nil {
		srv.log(ctx).Warn("Failed to push transport update", slog.Any("requesterID", request.RequesterID), slog.Any("error", sendErr))
	}
}

func requesterUpdateBody(status entity.TransportRequestStatus) string {
	switch status {
	case entity.TransportAccepted:
		return "A transporter accepted your request"
	case entity.TransportInTransit:
		return "Your goods are on the way"
	case entity.TransportDelivered:
		return "Your goods were delivered"
	default:
		return "Your transport request was updated"
	}
}
