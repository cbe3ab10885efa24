package repositories

import (
	"errors"

	"kidhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSchoolNotFound      = errors.New("school not found")
	ErrSchoolAlreadyExists = errors.New("user already has a school")
)

// SchoolSearchCriteria - фильтры листинга школ.
// Пустые поля не накладывают ограничений.
type SchoolSearchCriteria struct {
	City           string
	NeighborhoodID string
	VerifiedOnly   bool
}

type SchoolRepository interface {
	Create(db *gorm.DB, school *models.School) error
	FindByID(db *gorm.DB, id string) (*models.School, error)
	FindByOwner(db *gorm.DB, userID string) (*models.School, error)
	Update(db *gorm.DB, school *models.School) error
	Search(db *gorm.DB, criteria SchoolSearchCriteria) ([]models.School, error)
	FindPending(db *gorm.DB) ([]models.School, error)

	// Verify - условная идемпотентная запись: меняет только verified=false.
	// Возвращает true, если состояние изменилось этим вызовом.
	Verify(db *gorm.DB, id string) (bool, error)
}

type SchoolRepositoryImpl struct{}

func NewSchoolRepository() SchoolRepository {
	return &SchoolRepositoryImpl{}
}

func (r *SchoolRepositoryImpl) Create(db *gorm.DB, school *models.School) error {
	var existing models.School
	if err := db.Where("created_by = ?", school.CreatedBy).First(&existing).Error; err == nil {
		return ErrSchoolAlreadyExists
	}

	if err := db.Create(school).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSchoolAlreadyExists
		}
		return err
	}
	return nil
}

func (r *SchoolRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.School, error) {
	var school models.School
	err := db.Preload("Neighborhood").First(&school, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepositoryImpl) FindByOwner(db *gorm.DB, userID string) (*models.School, error) {
	var school models.School
	err := db.Preload("Neighborhood").Where("created_by = ?", userID).First(&school).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepositoryImpl) Update(db *gorm.DB, school *models.School) error {
	result := db.Save(school)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSchoolNotFound
	}
	return nil
}

func (r *SchoolRepositoryImpl) Search(db *gorm.DB, criteria SchoolSearchCriteria) ([]models.School, error) {
	query := db.Model(&models.School{}).Preload("Neighborhood")

	if criteria.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", criteria.City)
	}
	if criteria.NeighborhoodID != "" {
		query = query.Where("neighborhood_id = ?", criteria.NeighborhoodID)
	}
	if criteria.VerifiedOnly {
		query = query.Where("verified = ?", true)
	}

	var schools []models.School
	err := query.Order("created_at ASC").Find(&schools).Error
	return schools, err
}

func (r *SchoolRepositoryImpl) FindPending(db *gorm.DB) ([]models.School, error) {
	var schools []models.School
	err := db.Preload("Neighborhood").
		Where("verified = ?", false).
		Order("created_at ASC").
		Find(&schools).Error
	return schools, err
}

func (r *SchoolRepositoryImpl) Verify(db *gorm.DB, id string) (bool, error) {
	var school models.School
	if err := db.First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrSchoolNotFound
		}
		return false, err
	}

	// Условный апдейт: два конкурентных verify не теряют запись,
	// второй просто не находит строк
	result := db.Model(&models.School{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
