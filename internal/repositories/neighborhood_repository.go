package repositories

import (
	"errors"

	"kidhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNeighborhoodNotFound      = errors.New("neighborhood not found")
	ErrNeighborhoodAlreadyExists = errors.New("neighborhood already exists in this city")
)

type NeighborhoodRepository interface {
	Create(db *gorm.DB, n *models.Neighborhood) error
	FindByID(db *gorm.DB, id string) (*models.Neighborhood, error)
	FindByCity(db *gorm.DB, city string) ([]models.Neighborhood, error)
	FindAll(db *gorm.DB) ([]models.Neighborhood, error)
}

type NeighborhoodRepositoryImpl struct{}

func NewNeighborhoodRepository() NeighborhoodRepository {
	return &NeighborhoodRepositoryImpl{}
}

func (r *NeighborhoodRepositoryImpl) Create(db *gorm.DB, n *models.Neighborhood) error {
	var existing models.Neighborhood
	err := db.Where("LOWER(city) = LOWER(?) AND LOWER(name) = LOWER(?)", n.City, n.Name).
		First(&existing).Error
	if err == nil {
		return ErrNeighborhoodAlreadyExists
	}

	if err := db.Create(n).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNeighborhoodAlreadyExists
		}
		return err
	}
	return nil
}

func (r *NeighborhoodRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Neighborhood, error) {
	var n models.Neighborhood
	err := db.First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNeighborhoodNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NeighborhoodRepositoryImpl) FindByCity(db *gorm.DB, city string) ([]models.Neighborhood, error) {
	var list []models.Neighborhood
	err := db.Where("LOWER(city) = LOWER(?)", city).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *NeighborhoodRepositoryImpl) FindAll(db *gorm.DB) ([]models.Neighborhood, error) {
	var list []models.Neighborhood
	err := db.Order("city ASC, name ASC").Find(&list).Error
	return list, err
}
