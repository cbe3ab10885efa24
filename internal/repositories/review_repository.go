package repositories

import (
	"errors"

	"kidhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this school")
)

// RatingStats - агрегированный рейтинг школы
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindBySchool(db *gorm.DB, schoolID string) ([]models.Review, error)
	FindByParent(db *gorm.DB, parentID string) ([]models.Review, error)
	Delete(db *gorm.DB, id string) error
	SchoolRatingStats(db *gorm.DB, schoolID string) (*RatingStats, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	var existing models.Review
	err := db.Where("school_id = ? AND parent_id = ?", review.SchoolID, review.ParentID).
		First(&existing).Error
	if err == nil {
		return ErrReviewAlreadyExists
	}

	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("School").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindBySchool(db *gorm.DB, schoolID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("school_id = ?", schoolID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindByParent(db *gorm.DB, parentID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("School").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) SchoolRatingStats(db *gorm.DB, schoolID string) (*RatingStats, error) {
	var stats RatingStats
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average_rating, COUNT(*) as total_reviews").
		Where("school_id = ?", schoolID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
