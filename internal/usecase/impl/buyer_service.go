package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "croptrade/internal/delivery/context"
	"croptrade/internal/domain/entity"
	"croptrade/internal/domain/repository"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// unknownFarmerName is shown for listings whose seller has no profile yet.
const unknownFarmerName = "Unknown Farmer"

// buyerService implements the BuyerUsecase interface.
type buyerService struct {
	cropRepo    repository.CropRepository
	tradeRepo   repository.TradeRepository
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// BuyerServiceParams holds dependencies for BuyerService, injected by Fx.
type BuyerServiceParams struct {
	fx.In

	CropRepo    repository.CropRepository
	TradeRepo   repository.TradeRepository
	ProfileRepo repository.ProfileRepository
	Logger      *slog.Logger
}

// NewBuyerService is the constructor for buyerService.
func NewBuyerService(params BuyerServiceParams) usecase.BuyerUsecase {
	return &buyerService{
		cropRepo:    params.CropRepo,
		tradeRepo:   params.TradeRepo,
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *buyerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Marketplace lists available crops enriched with seller details. Seller
// profiles are fetched in one batch; a listing whose seller has no profile
// still shows with a placeholder name.
func (srv *buyerService) Marketplace(ctx context.Context, userID uuid.UUID, search string) (*usecase.MarketplaceOutput, error) {
	crops, err := srv.cropRepo.FindAvailable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load available crops")
	}

	profiles, err := srv.loadSellerProfiles(ctx, crops)
	if err != nil {
		return nil, err
	}

	enriched := make([]*usecase.CropWithFarmer, 0, len(crops))
	for _, crop := range crops {
		item := &usecase.CropWithFarmer{Crop: crop, FarmerName: unknownFarmerName}
		if profile, ok := profiles[crop.UserID]; ok {
			if profile.FullName != "" {
				item.FarmerName = profile.FullName
			}
			item.FarmerPhone = profile.Phone
			item.FarmerLocation = profile.Location
		}
		if matchesSearch(item, search) {
			enriched = append(enriched, item)
		}
	}

	trades, err := srv.tradeRepo.FindByBuyerID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load buyer trades")
	}

	return &usecase.MarketplaceOutput{
		Crops: enriched,
		Stats: deriveBuyerStats(len(crops), trades),
	}, nil
}

func (srv *buyerService) loadSellerProfiles(ctx context.Context, crops []*entity.Crop) (map[uuid.UUID]*entity.Profile, error) {
	seen := make(map[uuid.UUID]struct{}, len(crops))
	sellerIDs := make([]uuid.UUID, 0, len(crops))
	for _, crop := range crops {
		if _, ok := seen[crop.UserID]; ok {
			continue
		}
		seen[crop.UserID] = struct{}{}
		sellerIDs = append(sellerIDs, crop.UserID)
	}

	if len(sellerIDs) == 0 {
		return map[uuid.UUID]*entity.Profile{}, nil
	}

	profiles, err := srv.profileRepo.FindByUserIDs(ctx, sellerIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load seller profiles")
	}

	return profiles, nil
}

// matchesSearch filters case-insensitively over crop name, category,
// location and the seller's name. An empty query matches everything.
func matchesSearch(item *usecase.CropWithFarmer, search string) bool {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return true
	}

	for _, field := range []string{item.Name, item.Category, item.Location, item.FarmerName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

func deriveBuyerStats(availableCrops int, trades []*entity.Trade) usecase.BuyerStats {
	stats := usecase.BuyerStats{AvailableCrops: availableCrops}

	for _, trade := range trades {
		if trade.Status == entity.TradeCompleted {
			stats.CompletedPurchases++
			stats.TotalSpent += trade.TotalAmount
		}
	}

	return stats
}

// MyTrades lists the buyer's purchase history, newest first.
func (srv *buyerService) MyTrades(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error) {
	trades, err := srv.tradeRepo.FindByBuyerID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to load buyer trades", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load buyer trades")
	}

	return trades, nil
}
