package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"croptrade/config"
	"croptrade/internal/delivery"
	"croptrade/internal/delivery/http"
	"croptrade/internal/delivery/http/middleware"
	"croptrade/internal/delivery/http/router/handler"
	"croptrade/internal/domain/service"
	"croptrade/internal/infra/auth"
	"croptrade/internal/infra/device"
	logs "croptrade/internal/infra/log"
	"croptrade/internal/infra/notification"
	"croptrade/internal/infra/persistence/postgres"
	"croptrade/internal/infra/pubsub"
	"croptrade/internal/infra/qrcode"
	"croptrade/internal/infra/storage"
	"croptrade/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		storage.Module,
		pubsub.Module,
		device.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewRoleRepository,
			postgres.NewProfileRepository,
			postgres.NewTransporterRepository,
			postgres.NewCropRepository,
			postgres.NewTradeRepository,
			postgres.NewTransportRequestRepository,
			postgres.NewDeviceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newFirebaseService,
			newQRCodeService,
		),
	)
}

// newFirebaseService creates a Firebase service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewOnboardingService,
			impl.NewProfileService,
			impl.NewFarmerService,
			impl.NewBuyerService,
			impl.NewTransporterService,
			impl.NewMobileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewOnboardingHandler,
			handler.NewProfileHandler,
			handler.NewFarmerHandler,
			handler.NewBuyerHandler,
			handler.NewTransporterHandler,
			handler.NewMobileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
