package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"landmarket_backend/internal/imageprocessor"
	"landmarket_backend/internal/logger"
	"landmarket_backend/internal/models"
	"landmarket_backend/internal/repositories"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/internal/storage"
	"landmarket_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageUpload - загружаемый файл аватара из multipart-формы
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type ProfileService interface {
	CreateProfile(ctx context.Context, db *gorm.DB, accountID string, req *dto.CreateProfileRequest, image *ImageUpload) (*models.Profile, error)
	GetProfile(db *gorm.DB, accountID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, callerID, accountID string, req *dto.UpdateProfileRequest, image *ImageUpload) (*models.Profile, error)
	DeleteProfile(ctx context.Context, db *gorm.DB, callerID, accountID string) error

	ListSocialLinks(db *gorm.DB, accountID string) ([]models.SocialLink, error)
	AddSocialLink(db *gorm.DB, callerID, accountID string, req *dto.SocialLinkRequest) (*models.SocialLink, error)
	UpdateSocialLink(db *gorm.DB, callerID, accountID string, req *dto.UpdateSocialLinkRequest) (*models.SocialLink, error)
	DeleteSocialLink(db *gorm.DB, callerID, accountID string, req *dto.DeleteSocialLinkRequest) error
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	ratingRepo  repositories.RatingRepository
	fileStorage storage.Storage
	images      *imageprocessor.Processor
}

// NewProfileService собирает сервис профилей. images может быть nil -
// тогда аватары сохраняются как есть, без нормализации.
func NewProfileService(
	profileRepo repositories.ProfileRepository,
	ratingRepo repositories.RatingRepository,
	fileStorage storage.Storage,
	images *imageprocessor.Processor,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		ratingRepo:  ratingRepo,
		fileStorage: fileStorage,
		images:      images,
	}
}

// saveImage нормализует и сохраняет аватар, возвращая путь в хранилище
func (s *ProfileServiceImpl) saveImage(ctx context.Context, image *ImageUpload) (string, error) {
	reader := image.Reader
	if s.images != nil {
		normalized, err := s.images.NormalizeAvatar(reader)
		if err != nil {
			return "", apperrors.NewBadRequestError("Invalid image upload: " + err.Error())
		}
		reader = normalized
	}

	path := imagePath(image.Filename)
	if err := s.fileStorage.Save(ctx, path, reader); err != nil {
		return "", apperrors.InternalError(err)
	}
	return path, nil
}

// capitalizeName приводит имя к виду "Bob", но только если оно начинается
// со строчной буквы. "McDonald" и "O'Brien" пользователь набрал сам -
// их не трогаем.
func capitalizeName(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	if !unicode.IsLower(runes[0]) {
		return name
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

// imagePath собирает уникальное имя файла аватара: случайный префикс
// защищает от коллизий и перезаписи чужих файлов при совпадении имен.
func imagePath(originalName string) string {
	suffix := make([]byte, 8)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("profile_images/profile_%s_%s_%s",
		strings.ReplaceAll(uuid.NewString(), "-", ""),
		base64.RawURLEncoding.EncodeToString(suffix),
		filepath.Base(originalName),
	)
}

// CreateProfile создает профиль владельца. Если у аккаунта уже есть
// полученные оценки, среднее подтягивается сразу.
func (s *ProfileServiceImpl) CreateProfile(ctx context.Context, db *gorm.DB, accountID string, req *dto.CreateProfileRequest, image *ImageUpload) (*models.Profile, error) {
	profile := &models.Profile{
		AccountID:     accountID,
		FirstName:     capitalizeName(req.FirstName),
		LastName:      capitalizeName(req.LastName),
		ContactNumber: req.ContactNumber,
		Description:   req.Description,
		Location:      req.Location,
		Website:       req.Website,
	}

	if image != nil {
		path, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		profile.ImagePath = path
	}

	if average, err := s.ratingRepo.CalculateAverage(db, accountID); err == nil {
		profile.AverageRating = average
	}

	if err := s.profileRepo.Create(db, profile); err != nil {
		if apperrors.Is(err, repositories.ErrProfileExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return profile, nil
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, accountID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// UpdateProfile меняет только переданные поля. Править чужой профиль
// нельзя.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, callerID, accountID string, req *dto.UpdateProfileRequest, image *ImageUpload) (*models.Profile, error) {
	if callerID != accountID {
		return nil, apperrors.ErrNotProfileOwner
	}

	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FirstName != nil {
		profile.FirstName = capitalizeName(*req.FirstName)
	}
	if req.LastName != nil {
		profile.LastName = capitalizeName(*req.LastName)
	}
	if req.ContactNumber != nil {
		profile.ContactNumber = *req.ContactNumber
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}

	if image != nil {
		path, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		if profile.ImagePath != "" {
			if err := s.fileStorage.Delete(ctx, profile.ImagePath); err != nil {
				logger.Warn("failed to remove replaced profile image",
					"path", profile.ImagePath, "error", err)
			}
		}
		profile.ImagePath = path
	}

	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return profile, nil
}

func (s *ProfileServiceImpl) DeleteProfile(ctx context.Context, db *gorm.DB, callerID, accountID string) error {
	if callerID != accountID {
		return apperrors.ErrNotProfileOwner
	}

	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.profileRepo.Delete(db, profile); err != nil {
		return apperrors.InternalError(err)
	}

	if profile.ImagePath != "" {
		if err := s.fileStorage.Delete(ctx, profile.ImagePath); err != nil {
			logger.Warn("failed to remove profile image",
				"path", profile.ImagePath, "error", err)
		}
	}

	return nil
}

// --- Социальные ссылки ---

func (s *ProfileServiceImpl) ListSocialLinks(db *gorm.DB, accountID string) ([]models.SocialLink, error) {
	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNoProfileForSocial
		}
		return nil, apperrors.InternalError(err)
	}

	links, err := s.profileRepo.ListLinks(db, profile)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return links, nil
}

func (s *ProfileServiceImpl) AddSocialLink(db *gorm.DB, callerID, accountID string, req *dto.SocialLinkRequest) (*models.SocialLink, error) {
	if callerID != accountID {
		return nil, apperrors.ErrNotProfileOwner
	}

	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNoProfileForSocial
		}
		return nil, apperrors.InternalError(err)
	}

	link := &models.SocialLink{
		SiteName: req.SiteName,
		URL:      req.URL,
	}
	if err := s.profileRepo.AttachLink(db, profile, link); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return link, nil
}

func (s *ProfileServiceImpl) UpdateSocialLink(db *gorm.DB, callerID, accountID string, req *dto.UpdateSocialLinkRequest) (*models.SocialLink, error) {
	if callerID != accountID {
		return nil, apperrors.ErrNotProfileOwner
	}

	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNoProfileForSocial
		}
		return nil, apperrors.InternalError(err)
	}

	// Ссылка должна быть привязана именно к этому профилю
	link, err := s.profileRepo.FindAttachedLink(db, profile, req.SocialLinkID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSocialLinkNotFound) {
			return nil, apperrors.ErrSocialLinkNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.SiteName != nil {
		link.SiteName = *req.SiteName
	}
	if req.URL != nil {
		link.URL = *req.URL
	}

	if err := s.profileRepo.UpdateLink(db, link); err != nil {
		if apperrors.Is(err, repositories.ErrSocialLinkNotFound) {
			return nil, apperrors.ErrSocialLinkNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return link, nil
}

func (s *ProfileServiceImpl) DeleteSocialLink(db *gorm.DB, callerID, accountID string, req *dto.DeleteSocialLinkRequest) error {
	if callerID != accountID {
		return apperrors.ErrNotProfileOwner
	}

	profile, err := s.profileRepo.FindByAccountID(db, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNoProfileForSocial
		}
		return apperrors.InternalError(err)
	}

	link, err := s.profileRepo.FindAttachedLink(db, profile, req.SocialLinkID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSocialLinkNotFound) {
			return apperrors.ErrSocialLinkNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.profileRepo.RemoveLink(db, profile, link); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
