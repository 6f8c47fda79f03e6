package services

import (
	"landmarket_backend/internal/models"
	"landmarket_backend/internal/repositories"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RatingService interface {
	Rate(db *gorm.DB, raterID, ratedID string, req *dto.CreateRatingRequest) (*models.Rating, error)
	ListRatings(db *gorm.DB, ratedID string) ([]models.Rating, error)
}

type RatingServiceImpl struct {
	ratingRepo  repositories.RatingRepository
	accountRepo repositories.AccountRepository
}

func NewRatingService(
	ratingRepo repositories.RatingRepository,
	accountRepo repositories.AccountRepository,
) RatingService {
	return &RatingServiceImpl{
		ratingRepo:  ratingRepo,
		accountRepo: accountRepo,
	}
}

// Rate ставит оценку от raterID к ratedID. Оценивать могут только
// покупатели, себя оценивать нельзя, повторная оценка той же пары
// отклоняется. Средний рейтинг профиля пересчитывается в той же
// транзакции, что и вставка оценки.
func (s *RatingServiceImpl) Rate(db *gorm.DB, raterID, ratedID string, req *dto.CreateRatingRequest) (*models.Rating, error) {
	if raterID == ratedID {
		return nil, apperrors.ErrSelfRating
	}

	rater, err := s.accountRepo.FindByID(db, raterID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if rater.Role != models.RoleBuyer {
		return nil, apperrors.ErrBrokerCannotRate
	}

	if _, err := s.accountRepo.FindByID(db, ratedID); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.ratingRepo.FindByPair(db, raterID, ratedID); err == nil {
		return nil, apperrors.ErrAlreadyRated
	}

	rating := &models.Rating{
		RaterID: raterID,
		RatedID: ratedID,
		Score:   req.Score,
		Comment: req.Comment,
	}

	if err := s.ratingRepo.Create(db, rating); err != nil {
		if apperrors.Is(err, repositories.ErrRatingExists) {
			return nil, apperrors.ErrAlreadyRated
		}
		return nil, apperrors.InternalError(err)
	}

	return rating, nil
}

func (s *RatingServiceImpl) ListRatings(db *gorm.DB, ratedID string) ([]models.Rating, error) {
	if _, err := s.accountRepo.FindByID(db, ratedID); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	ratings, err := s.ratingRepo.FindByRated(db, ratedID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ratings, nil
}
