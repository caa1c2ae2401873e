package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "croptrade/internal/delivery/context"
	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/domain/service"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// mobileService implements the MobileUsecase interface.
type mobileService struct {
	deviceRepo   repository.DeviceRepository
	capabilities service.DeviceCapabilities
	notifier     service.NotificationService
	logger       *slog.Logger
}

// MobileServiceParams holds dependencies for MobileService, injected by Fx.
type MobileServiceParams struct {
	fx.In

	DeviceRepo   repository.DeviceRepository
	Capabilities service.DeviceCapabilities
	Notifier     service.NotificationService
	Logger       *slog.Logger
}

// NewMobileService is the constructor for mobileService.
func NewMobileService(params MobileServiceParams) usecase.MobileUsecase {
	return &mobileService{
		deviceRepo:   params.DeviceRepo,
		capabilities: params.Capabilities,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *mobileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Capabilities exercises the camera, geolocation and push bridges and
// returns whatever each produced. A failing bridge is reported as empty
// rather than failing the whole call.
func (srv *mobileService) Capabilities(ctx context.Context) (*usecase.CapabilitiesOutput, error) {
	out := &usecase.CapabilitiesOutput{}

	photoPath, err := srv.capabilities.TakePhoto(ctx)
	if err != nil {
		srv.log(ctx).Warn("Camera bridge failed", slog.Any("error", err))
	} else {
		out.PhotoPath = photoPath
	}

	location, err := srv.capabilities.CurrentLocation(ctx)
	if err != nil {
		srv.log(ctx).Warn("Geolocation bridge failed", slog.Any("error", err))
	} else {
		out.Location = location
	}

	pushToken, err := srv.capabilities.RegisterForPush(ctx)
	if err != nil {
		srv.log(ctx).Warn("Push bridge failed", slog.Any("error", err))
	} else {
		out.PushToken = pushToken
	}

	return out, nil
}

// RegisterDevice stores a device push token for the user. Re-registering a
// known device refreshes its token instead of creating a duplicate.
func (srv *mobileService) RegisterDevice(ctx context.Context, userID uuid.UUID, input *usecase.RegisterDeviceInput) error {
	fcmToken := strings.TrimSpace(input.FCMToken)
	deviceID := strings.TrimSpace(input.DeviceID)
	if fcmToken == "" || deviceID == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "fcm token and device id are required")
	}

	devices, err := srv.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load user devices")
	}

	for _, device := range devices {
		if device.DeviceID != deviceID {
			continue
		}

		if updateErr := srv.deviceRepo.UpdateFCMToken(ctx, device.ID, fcmToken); updateErr != nil {
			return errors.Wrap(updateErr, "failed to refresh fcm token")
		}
		srv.log(ctx).Info("Device token refreshed", slog.Any("userID", userID), slog.String("deviceID", deviceID))

		return nil
	}

	newDevice := &entity.UserDevice{
		UserID:   userID,
		FCMToken: fcmToken,
		DeviceID: deviceID,
		Platform: input.Platform,
		IsActive: true,
	}
	if createErr := srv.deviceRepo.CreateDevice(ctx, newDevice); createErr != nil {
		return errors.Wrap(createErr, "failed to register device")
	}

	srv.log(ctx).Info("Device registered", slog.Any("userID", userID), slog.String("platform", input.Platform))

	return nil
}

// SendPriceAlert pushes a crop price alert to the user's active devices.
func (srv *mobileService) SendPriceAlert(ctx context.Context, userID uuid.UUID, cropName string, price float64) error {
	title := "Price Alert"
	body := fmt.Sprintf("%s is now at ₹%.2f", cropName, price)
	data := map[string]string{"type": "price_alert", "crop": cropName}

	return srv.broadcast(ctx, userID, title, body, data)
}

// SendWeatherWarning pushes a weather warning to the user's active devices.
func (srv *mobileService) SendWeatherWarning(ctx context.Context, userID uuid.UUID, warning string) error {
	title := "Weather Warning"
	data := map[string]string{"type": "weather_warning"}

	return srv.broadcast(ctx, userID, title, warning, data)
}

// broadcast fans a notification out to every active device of the user and
// deactivates tokens the provider reports as invalid.
func (srv *mobileService) broadcast(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error {
	devices, err := srv.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load active devices")
	}
	if len(devices) == 0 {
		srv.log(ctx).Debug("No active devices to notify", slog.Any("userID", userID))

		return nil
	}

	tokens := make([]string, 0, len(devices))
	byToken := make(map[string]*entity.UserDevice, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
		byToken[device.FCMToken] = device
	}

	successCount, failureCount, invalidTokens, err := srv.notifier.SendBatchNotification(ctx, tokens, title, body, data)
	if err != nil {
		srv.log(ctx).Error("Failed to send notification batch", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to send notification batch")
	}

	srv.log(ctx).Info("Notification batch sent",
		slog.Any("userID", userID),
		slog.Int("success", successCount),
		slog.Int("failure", failureCount),
		slog.Int("invalid", len(invalidTokens)),
	)

	// Invalid tokens are dead registrations; drop them so future batches
	// do not keep hitting them.
	for _, token := range invalidTokens {
		device, ok := byToken[token]
		if !ok {
			continue
		}
		if deleteErr := srv.deviceRepo.DeleteDevice(ctx, device.ID); deleteErr != nil {
			srv.log(ctx).Warn("Failed to deactivate invalid device", slog.Any("deviceID", device.ID), slog.Any("error", deleteErr))
		}
	}

	return nil
}
