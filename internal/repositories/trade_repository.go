package repositories

import (
	"errors"

	"buildlink/internal/models"

	"gorm.io/gorm"
)

type TradeRepository interface {
	FindByID(id string) (*models.Trade, error)
	// GetOrCreateByName resolves a trade by exact (case-sensitive) name,
	// creating it when absent.
	GetOrCreateByName(name string) (*models.Trade, error)
	ListLinkedTradeIDs(userID string) ([]string, error)
	ListTradeNamesForUser(userID string) ([]string, error)
	// ApplyLinkDiff removes and adds worker-trade links in one transaction.
	ApplyLinkDiff(userID string, toRemove, toAdd []string) error
}

type TradeRepositoryImpl struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

func (r *TradeRepositoryImpl) FindByID(id string) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.First(&trade, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r *TradeRepositoryImpl) GetOrCreateByName(name string) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.Where(models.Trade{Name: name}).FirstOrCreate(&trade).Error
	if err != nil {
		// Lost a create race: another request inserted the same name first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = r.db.First(&trade, "name = ?", name).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &trade, nil
}

func (r *TradeRepositoryImpl) ListLinkedTradeIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.WorkerTrade{}).
		Where("user_id = ?", userID).
		Pluck("trade_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *TradeRepositoryImpl) ListTradeNamesForUser(userID string) ([]string, error) {
	var names []string
	err := r.db.Model(&models.WorkerTrade{}).
		Joins("JOIN trades ON trades.id = worker_trades.trade_id").
		Where("worker_trades.user_id = ?", userID).
		Order("trades.name").
		Pluck("trades.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *TradeRepositoryImpl) ApplyLinkDiff(userID string, toRemove, toAdd []string) error {
	if len(toRemove) == 0 && len(toAdd) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(toRemove) > 0 {
			if err := tx.Where("user_id = ? AND trade_id IN ?", userID, toRemove).
				Delete(&models.WorkerTrade{}).Error; err != nil {
				return err
			}
		}
		for _, tradeID := range toAdd {
			link := &models.WorkerTrade{UserID: userID, TradeID: tradeID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateDuplicate(err)
}
