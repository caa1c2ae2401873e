// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"croptrade/internal/domain/entity"
	"croptrade/internal/domain/repository"
	"croptrade/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tradeRepository implements the repository.TradeRepository interface.
type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository is the constructor for tradeRepository.
func NewTradeRepository(db *gorm.DB) repository.TradeRepository {
	return &tradeRepository{
		db: db,
	}
}

// FindBySellerID retrieves trades where the user sold, newest first.
func (repo *tradeRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*entity.Trade, error) {
	var tradeModels []*model.TradeModel

	if err := repo.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&tradeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find trades by seller")
	}

	return toTradeDomainSlice(tradeModels), nil
}

// FindByBuyerID retrieves trades where the user bought, newest first.
func (repo *tradeRepository) FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Trade, error) {
	var tradeModels []*model.TradeModel

	if err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&tradeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find trades by buyer")
	}

	return toTradeDomainSlice(tradeModels), nil
}

// --- Mapper Functions ---

// toTradeDomain converts a GORM TradeModel to a domain Trade entity.
func toTradeDomain(data *model.TradeModel) *entity.Trade {
	if data == nil {
		return nil
	}

	return &entity.Trade{
		ID:          data.ID,
		CropID:      data.CropID,
		SellerID:    data.SellerID,
		BuyerID:     data.BuyerID,
		Quantity:    data.Quantity,
		TotalAmount: data.TotalAmount,
		Status:      entity.TradeStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toTradeDomainSlice(models []*model.TradeModel) []*entity.Trade {
	trades := make([]*entity.Trade, 0, len(models))
	for _, tradeM := range models {
		trades = append(trades, toTradeDomain(tradeM))
	}

	return trades
}
