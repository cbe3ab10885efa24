package services

import (
	"errors"

	"kidhub_backend/internal/models"
	"kidhub_backend/internal/repositories"
	"kidhub_backend/internal/services/dto"
	"kidhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NeighborhoodService interface {
	CreateNeighborhood(db *gorm.DB, role models.UserRole, req *dto.CreateNeighborhoodRequest) (*models.Neighborhood, error)
	GetNeighborhood(db *gorm.DB, id string) (*models.Neighborhood, error)
	ListNeighborhoods(db *gorm.DB, city string) ([]models.Neighborhood, error)
}

type neighborhoodService struct {
	neighborhoodRepo repositories.NeighborhoodRepository
}

func NewNeighborhoodService(neighborhoodRepo repositories.NeighborhoodRepository) NeighborhoodService {
	return &neighborhoodService{neighborhoodRepo: neighborhoodRepo}
}

// CreateNeighborhood - справочник районов ведет только админ.
func (s *neighborhoodService) CreateNeighborhood(db *gorm.DB, role models.UserRole, req *dto.CreateNeighborhoodRequest) (*models.Neighborhood, error) {
	if role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	n := &models.Neighborhood{
		City: req.City,
		Name: req.Name,
		Lat:  req.Lat,
		Lng:  req.Lng,
	}

	if err := s.neighborhoodRepo.Create(db, n); err != nil {
		if errors.Is(err, repositories.ErrNeighborhoodAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "neighborhood", "Neighborhood already exists in this city")
		}
		return nil, err
	}
	return n, nil
}

func (s *neighborhoodService) GetNeighborhood(db *gorm.DB, id string) (*models.Neighborhood, error) {
	n, err := s.neighborhoodRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNeighborhoodNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return n, nil
}

// ListNeighborhoods возвращает районы города, либо все при пустом city.
func (s *neighborhoodService) ListNeighborhoods(db *gorm.DB, city string) ([]models.Neighborhood, error) {
	if city == "" {
		return s.neighborhoodRepo.FindAll(db)
	}
	return s.neighborhoodRepo.FindByCity(db, city)
}
