package repositories

import (
	"errors"

	"kidhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

// ActivitySearchCriteria - фильтры листинга занятий.
// Пустые/nil поля не накладывают ограничений; непустые объединяются по AND.
type ActivitySearchCriteria struct {
	City           string
	NeighborhoodID string
	Category       string
	// Возрастной фильтр - пересечение интервалов: занятие подходит, если
	// [AgeMin, AgeMax] запроса пересекается с интервалом занятия
	AgeMin       *int
	AgeMax       *int
	PriceMin     *float64
	PriceMax     *float64
	VerifiedOnly bool
}

type ActivityRepository interface {
	Create(db *gorm.DB, activity *models.Activity) error
	FindByID(db *gorm.DB, id string) (*models.Activity, error)
	FindBySchool(db *gorm.DB, schoolID string) ([]models.Activity, error)
	Search(db *gorm.DB, criteria ActivitySearchCriteria) ([]models.Activity, error)
	FindPending(db *gorm.DB) ([]models.Activity, error)
	Deactivate(db *gorm.DB, id string) error

	// Verify - условная идемпотентная запись, как у школ
	Verify(db *gorm.DB, id string) (bool, error)
}

type ActivityRepositoryImpl struct{}

func NewActivityRepository() ActivityRepository {
	return &ActivityRepositoryImpl{}
}

func (r *ActivityRepositoryImpl) Create(db *gorm.DB, activity *models.Activity) error {
	return db.Create(activity).Error
}

func (r *ActivityRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Activity, error) {
	var activity models.Activity
	err := db.Preload("School").Preload("School.Neighborhood").
		First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepositoryImpl) FindBySchool(db *gorm.DB, schoolID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := db.Where("school_id = ?", schoolID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepositoryImpl) Search(db *gorm.DB, criteria ActivitySearchCriteria) ([]models.Activity, error) {
	query := db.Model(&models.Activity{}).
		Preload("School").
		Where("activities.active = ?", true)

	// Фильтры по городу/району живут на школе
	if criteria.City != "" || criteria.NeighborhoodID != "" {
		query = query.Joins("JOIN schools ON schools.id = activities.school_id")
	}
	if criteria.City != "" {
		query = query.Where("LOWER(schools.city) = LOWER(?)", criteria.City)
	}
	if criteria.NeighborhoodID != "" {
		query = query.Where("schools.neighborhood_id = ?", criteria.NeighborhoodID)
	}

	if criteria.Category != "" {
		query = query.Where("activities.category = ?", criteria.Category)
	}

	// Пересечение интервалов, не вложенность
	if criteria.AgeMin != nil {
		query = query.Where("activities.age_max >= ?", *criteria.AgeMin)
	}
	if criteria.AgeMax != nil {
		query = query.Where("activities.age_min <= ?", *criteria.AgeMax)
	}

	if criteria.PriceMin != nil {
		query = query.Where("activities.price_monthly >= ?", *criteria.PriceMin)
	}
	if criteria.PriceMax != nil {
		query = query.Where("activities.price_monthly <= ?", *criteria.PriceMax)
	}

	if criteria.VerifiedOnly {
		query = query.Where("activities.verified = ?", true)
	}

	var activities []models.Activity
	err := query.Order("activities.created_at ASC").Find(&activities).Error
	return activities, err
}

func (r *ActivityRepositoryImpl) FindPending(db *gorm.DB) ([]models.Activity, error) {
	var activities []models.Activity
	err := db.Preload("School").
		Where("verified = ? AND active = ?", false, true).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepositoryImpl) Deactivate(db *gorm.DB, id string) error {
	result := db.Model(&models.Activity{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepositoryImpl) Verify(db *gorm.DB, id string) (bool, error) {
	var activity models.Activity
	if err := db.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrActivityNotFound
		}
		return false, err
	}

	result := db.Model(&models.Activity{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
