package repositories

import (
	"errors"
	"time"

	"landmarket_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrSocialLinkNotFound = errors.New("social link not found")
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByAccountID(db *gorm.DB, accountID string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error
	Delete(db *gorm.DB, profile *models.Profile) error
	UpdateAverageRating(db *gorm.DB, accountID string, average float64) error

	// Social links
	ListLinks(db *gorm.DB, profile *models.Profile) ([]models.SocialLink, error)
	AttachLink(db *gorm.DB, profile *models.Profile, link *models.SocialLink) error
	FindAttachedLink(db *gorm.DB, profile *models.Profile, linkID string) (*models.SocialLink, error)
	UpdateLink(db *gorm.DB, link *models.SocialLink) error
	RemoveLink(db *gorm.DB, profile *models.Profile, link *models.SocialLink) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	var existing models.Profile
	if err := db.Where("account_id = ?", profile.AccountID).First(&existing).Error; err == nil {
		return ErrProfileExists
	}
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByAccountID(db *gorm.DB, accountID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Preload("SocialLinks").First(&profile, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	result := db.Model(profile).Updates(map[string]interface{}{
		"first_name":     profile.FirstName,
		"last_name":      profile.LastName,
		"contact_number": profile.ContactNumber,
		"description":    profile.Description,
		"location":       profile.Location,
		"website":        profile.Website,
		"image_path":     profile.ImagePath,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Delete удаляет профиль и его связи с соц-ссылками. Сами строки
// SocialLink не трогаем - они могут быть привязаны к другим профилям.
func (r *ProfileRepositoryImpl) Delete(db *gorm.DB, profile *models.Profile) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(profile).Association("SocialLinks").Clear(); err != nil {
			return err
		}
		return tx.Delete(profile).Error
	})
}

func (r *ProfileRepositoryImpl) UpdateAverageRating(db *gorm.DB, accountID string, average float64) error {
	result := db.Model(&models.Profile{}).Where("account_id = ?", accountID).Updates(map[string]interface{}{
		"average_rating": average,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// --- Social links ---

func (r *ProfileRepositoryImpl) ListLinks(db *gorm.DB, profile *models.Profile) ([]models.SocialLink, error) {
	var links []models.SocialLink
	err := db.Model(profile).Association("SocialLinks").Find(&links)
	return links, err
}

func (r *ProfileRepositoryImpl) AttachLink(db *gorm.DB, profile *models.Profile, link *models.SocialLink) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(link).Error; err != nil {
			return err
		}
		return tx.Model(profile).Association("SocialLinks").Append(link)
	})
}

// FindAttachedLink ищет ссылку только среди привязанных к этому профилю
func (r *ProfileRepositoryImpl) FindAttachedLink(db *gorm.DB, profile *models.Profile, linkID string) (*models.SocialLink, error) {
	var links []models.SocialLink
	err := db.Model(profile).Where("id = ?", linkID).Association("SocialLinks").Find(&links)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, ErrSocialLinkNotFound
	}
	return &links[0], nil
}

func (r *ProfileRepositoryImpl) UpdateLink(db *gorm.DB, link *models.SocialLink) error {
	result := db.Model(link).Updates(map[string]interface{}{
		"site_name":  link.SiteName,
		"url":        link.URL,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSocialLinkNotFound
	}
	return nil
}

// RemoveLink отвязывает ссылку от профиля и удаляет саму строку
func (r *ProfileRepositoryImpl) RemoveLink(db *gorm.DB, profile *models.Profile, link *models.SocialLink) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(profile).Association("SocialLinks").Delete(link); err != nil {
			return err
		}
		return tx.Delete(link).Error
	})
}
