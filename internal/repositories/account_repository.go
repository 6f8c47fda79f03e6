package repositories

import (
	"errors"
	"time"

	"landmarket_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrUsernameTaken   = errors.New("username already taken")
)

type AccountRepository interface {
	Create(db *gorm.DB, account *models.Account) error
	FindByID(db *gorm.DB, id string) (*models.Account, error)
	FindByEmail(db *gorm.DB, email string) (*models.Account, error)
	FindByVerificationToken(db *gorm.DB, token string) (*models.Account, error)
	UpdateVerificationToken(db *gorm.DB, accountID, token string) error
	MarkVerified(db *gorm.DB, accountID string) error
	UpdatePassword(db *gorm.DB, accountID, passwordHash string) error
	Delete(db *gorm.DB, accountID string) error
}

type AccountRepositoryImpl struct{}

func NewAccountRepository() AccountRepository {
	return &AccountRepositoryImpl{}
}

// Create сохраняет новый аккаунт. Предварительные проверки дают
// осмысленную ошибку; гонку двух одновременных регистраций закрывает
// uniqueIndex на email/username на уровне БД.
func (r *AccountRepositoryImpl) Create(db *gorm.DB, account *models.Account) error {
	var existing models.Account
	if err := db.Where("email = ?", account.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}
	if err := db.Where("username = ?", account.Username).First(&existing).Error; err == nil {
		return ErrUsernameTaken
	}

	return db.Create(account).Error
}

func (r *AccountRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Account, error) {
	var account models.Account
	err := db.First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	err := db.First(&account, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByVerificationToken(db *gorm.DB, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrAccountNotFound
	}

	var account models.Account
	err := db.First(&account, "verification_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) UpdateVerificationToken(db *gorm.DB, accountID, token string) error {
	result := db.Model(&models.Account{}).Where("id = ?", accountID).Updates(map[string]interface{}{
		"verification_token": token,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// MarkVerified ставит is_verified. Токен не стираем: повторный переход
// по той же ссылке должен отвечать "already active", а не "invalid link".
func (r *AccountRepositoryImpl) MarkVerified(db *gorm.DB, accountID string) error {
	result := db.Model(&models.Account{}).Where("id = ?", accountID).Updates(map[string]interface{}{
		"is_verified": true,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) UpdatePassword(db *gorm.DB, accountID, passwordHash string) error {
	result := db.Model(&models.Account{}).Where("id = ?", accountID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete удаляет аккаунт вместе с зависимыми записями одной транзакцией
func (r *AccountRepositoryImpl) Delete(db *gorm.DB, accountID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&models.Session{}).Error; err != nil {
			return err
		}

		if err := tx.Where("rater_id = ? OR rated_id = ?", accountID, accountID).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}

		var profile models.Profile
		if err := tx.First(&profile, "account_id = ?", accountID).Error; err == nil {
			if err := tx.Model(&profile).Association("SocialLinks").Clear(); err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", accountID).Delete(&models.Account{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
}
