package repositories

import (
	"errors"

	"buildlink/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	FindByResetToken(token string) (*models.User, error)
	Create(user *models.User) error
	// CreateWithTradeLink creates the account and, when tradeID is non-empty,
	// its worker-trade link in a single transaction so a failure cannot leave
	// an account without its trade.
	CreateWithTradeLink(user *models.User, tradeID string) error
	Update(user *models.User) error
	// UpdateWithPortfolio persists the account update and any new portfolio
	// entries in a single transaction.
	UpdateWithPortfolio(user *models.User, entries []models.Portfolio) error
	Delete(id string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("NationalID").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "reset_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *UserRepositoryImpl) CreateWithTradeLink(user *models.User, tradeID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if tradeID != "" {
			link := &models.WorkerTrade{UserID: user.ID, TradeID: tradeID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateDuplicate(err)
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateWithPortfolio(user *models.User, entries []models.Portfolio) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateDuplicate(err)
}

func (r *UserRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// translateDuplicate maps unique-constraint violations to ErrDuplicateKey.
// Requires gorm.Config{TranslateError: true}.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
