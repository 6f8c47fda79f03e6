package repositories

import (
	"errors"
	"time"

	"landmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	FindByToken(db *gorm.DB, token string) (*models.Session, error)
	FindActiveByAccount(db *gorm.DB, accountID string, now time.Time) (*models.Session, error)
	DeleteByToken(db *gorm.DB, token string) error
	DeleteByAccountID(db *gorm.DB, accountID string) error
}

type SessionRepositoryImpl struct{}

func NewSessionRepository() SessionRepository {
	return &SessionRepositoryImpl{}
}

func (r *SessionRepositoryImpl) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *SessionRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session
	err := db.First(&session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindActiveByAccount возвращает живую сессию аккаунта, если она есть.
// Login переиспользует ее вместо выпуска новой.
func (r *SessionRepositoryImpl) FindActiveByAccount(db *gorm.DB, accountID string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := db.Where("account_id = ? AND expires_at > ?", accountID, now).
		Order("expires_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepositoryImpl) DeleteByToken(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepositoryImpl) DeleteByAccountID(db *gorm.DB, accountID string) error {
	return db.Where("account_id = ?", accountID).Delete(&models.Session{}).Error
}
