package repositories

import (
	"errors"

	"landmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRatingExists = errors.New("rating already exists")

type RatingRepository interface {
	// Create сохраняет оценку и пересчитывает средний рейтинг
	// профиля оцененного в той же транзакции
	Create(db *gorm.DB, rating *models.Rating) error
	FindByPair(db *gorm.DB, raterID, ratedID string) (*models.Rating, error)
	FindByRated(db *gorm.DB, ratedID string) ([]models.Rating, error)
	CalculateAverage(db *gorm.DB, ratedID string) (float64, error)
}

type RatingRepositoryImpl struct{}

func NewRatingRepository() RatingRepository {
	return &RatingRepositoryImpl{}
}

func (r *RatingRepositoryImpl) Create(db *gorm.DB, rating *models.Rating) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		if err := tx.Where("rater_id = ? AND rated_id = ?", rating.RaterID, rating.RatedID).
			First(&existing).Error; err == nil {
			return ErrRatingExists
		}

		// Составной uniqueIndex (rater_id, rated_id) закрывает гонку,
		// которую предварительная проверка пропустит
		if err := tx.Create(rating).Error; err != nil {
			return err
		}

		average, err := r.CalculateAverage(tx, rating.RatedID)
		if err != nil {
			return err
		}

		result := tx.Model(&models.Profile{}).
			Where("account_id = ?", rating.RatedID).
			Update("average_rating", average)
		if result.Error != nil {
			return result.Error
		}
		// Профиля может не быть - тогда пересчитывать нечего,
		// среднее посчитается при создании профиля
		return nil
	})
}

func (r *RatingRepositoryImpl) FindByPair(db *gorm.DB, raterID, ratedID string) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("rater_id = ? AND rated_id = ?", raterID, ratedID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepositoryImpl) FindByRated(db *gorm.DB, ratedID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Where("rated_id = ?", ratedID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// CalculateAverage считает среднее арифметическое всех полученных оценок.
// Полный пересчет на каждую оценку - O(n), на наших объемах приемлемо.
func (r *RatingRepositoryImpl) CalculateAverage(db *gorm.DB, ratedID string) (float64, error) {
	var result struct {
		Average float64
	}
	err := db.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) as average").
		Where("rated_id = ?", ratedID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Average, nil
}
