package services

import (
	"errors"
	"strings"

	"kidhub_backend/internal/moderation"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/repositories"
	"kidhub_backend/internal/services/dto"
	"kidhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SchoolService interface {
	CreateSchool(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateSchoolRequest) (*models.School, error)
	GetSchool(db *gorm.DB, schoolID string) (*models.School, error)
	GetMySchool(db *gorm.DB, userID string) (*models.School, error)
	UpdateSchool(db *gorm.DB, userID string, role models.UserRole, schoolID string, req *dto.UpdateSchoolRequest) (*models.School, error)
	ListSchools(db *gorm.DB, filter *dto.SchoolFilterRequest) ([]models.School, error)
	ListPendingSchools(db *gorm.DB, role models.UserRole, requesterID string) ([]models.School, error)
	VerifySchool(db *gorm.DB, role models.UserRole, requesterID, schoolID string) (*models.School, error)
	GetSchoolRating(db *gorm.DB, schoolID string) (*dto.SchoolRatingResponse, error)
}

type schoolService struct {
	schoolRepo       repositories.SchoolRepository
	neighborhoodRepo repositories.NeighborhoodRepository
	reviewRepo       repositories.ReviewRepository
}

func NewSchoolService(
	schoolRepo repositories.SchoolRepository,
	neighborhoodRepo repositories.NeighborhoodRepository,
	reviewRepo repositories.ReviewRepository,
) SchoolService {
	return &schoolService{
		schoolRepo:       schoolRepo,
		neighborhoodRepo: neighborhoodRepo,
		reviewRepo:       reviewRepo,
	}
}

// CreateSchool создает школу для school-аккаунта. Одна школа на аккаунт.
func (s *schoolService) CreateSchool(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateSchoolRequest) (*models.School, error) {
	if d := moderation.Authorize(role, userID, moderation.ActionCreateSchool, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	if req.NeighborhoodID != nil {
		if err := s.checkNeighborhoodCity(db, *req.NeighborhoodID, req.City); err != nil {
			return nil, err
		}
	}

	school := &models.School{
		Name:           req.Name,
		Description:    req.Description,
		Phone:          req.Phone,
		Email:          req.Email,
		City:           req.City,
		Address:        req.Address,
		NeighborhoodID: req.NeighborhoodID,
		Lat:            req.Lat,
		Lng:            req.Lng,
		Verified:       false,
		CreatedBy:      userID,
	}

	if err := s.schoolRepo.Create(db, school); err != nil {
		if errors.Is(err, repositories.ErrSchoolAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "school", "User already has a school")
		}
		return nil, err
	}
	return school, nil
}

func (s *schoolService) GetSchool(db *gorm.DB, schoolID string) (*models.School, error) {
	school, err := s.schoolRepo.FindByID(db, schoolID)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return school, nil
}

func (s *schoolService) GetMySchool(db *gorm.DB, userID string) (*models.School, error) {
	school, err := s.schoolRepo.FindByOwner(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return school, nil
}

// UpdateSchool меняет данные школы. Разрешено владельцу и админу.
// Верификацию update не трогает.
func (s *schoolService) UpdateSchool(db *gorm.DB, userID string, role models.UserRole, schoolID string, req *dto.UpdateSchoolRequest) (*models.School, error) {
	school, err := s.GetSchool(db, schoolID)
	if err != nil {
		return nil, err
	}

	if school.CreatedBy != userID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrNotOwner
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Description != nil {
		school.Description = *req.Description
	}
	if req.Phone != nil {
		school.Phone = *req.Phone
	}
	if req.Email != nil {
		school.Email = *req.Email
	}
	if req.Address != nil {
		school.Address = *req.Address
	}
	if req.NeighborhoodID != nil {
		if err := s.checkNeighborhoodCity(db, *req.NeighborhoodID, school.City); err != nil {
			return nil, err
		}
		school.NeighborhoodID = req.NeighborhoodID
	}
	if req.Lat != nil {
		school.Lat = req.Lat
	}
	if req.Lng != nil {
		school.Lng = req.Lng
	}

	if err := s.schoolRepo.Update(db, school); err != nil {
		return nil, err
	}
	return s.schoolRepo.FindByID(db, school.ID)
}

// ListSchools возвращает школы по фильтру. Пустой фильтр не сужает
// выборку, verified_only=true оставляет только верифицированные.
// Фильтр neighborhood_id применяется только вместе с city и только если
// район действительно лежит в этом городе. Иначе фильтр отбрасывается.
func (s *schoolService) ListSchools(db *gorm.DB, filter *dto.SchoolFilterRequest) ([]models.School, error) {
	criteria := repositories.SchoolSearchCriteria{
		City:         filter.City,
		VerifiedOnly: filter.VerifiedOnly,
	}

	if filter.NeighborhoodID != "" && filter.City != "" {
		n, err := s.neighborhoodRepo.FindByID(db, filter.NeighborhoodID)
		if err == nil && strings.EqualFold(n.City, filter.City) {
			criteria.NeighborhoodID = filter.NeighborhoodID
		}
	}

	return s.schoolRepo.Search(db, criteria)
}

// ListPendingSchools - очередь модерации для админа.
func (s *schoolService) ListPendingSchools(db *gorm.DB, role models.UserRole, requesterID string) ([]models.School, error) {
	if d := moderation.Authorize(role, requesterID, moderation.ActionVerifySchool, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}
	return s.schoolRepo.FindPending(db)
}

// VerifySchool помечает школу верифицированной. Идемпотентно:
// повторный вызов на уже верифицированной школе не ошибка.
func (s *schoolService) VerifySchool(db *gorm.DB, role models.UserRole, requesterID, schoolID string) (*models.School, error) {
	if d := moderation.Authorize(role, requesterID, moderation.ActionVerifySchool, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	school, err := s.GetSchool(db, schoolID)
	if err != nil {
		return nil, err
	}
	if !moderation.VerifyChanges(moderation.VerificationStateOf(school.Verified)) {
		return school, nil
	}

	if _, err := s.schoolRepo.Verify(db, schoolID); err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	return s.schoolRepo.FindByID(db, schoolID)
}

func (s *schoolService) GetSchoolRating(db *gorm.DB, schoolID string) (*dto.SchoolRatingResponse, error) {
	if _, err := s.GetSchool(db, schoolID); err != nil {
		return nil, err
	}

	stats, err := s.reviewRepo.SchoolRatingStats(db, schoolID)
	if err != nil {
		return nil, err
	}
	return &dto.SchoolRatingResponse{
		SchoolID:    schoolID,
		Average:     stats.AverageRating,
		ReviewCount: stats.TotalReviews,
	}, nil
}

func (s *schoolService) checkNeighborhoodCity(db *gorm.DB, neighborhoodID, city string) error {
	n, err := s.neighborhoodRepo.FindByID(db, neighborhoodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNeighborhoodNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}
	if !strings.EqualFold(n.City, city) {
		return apperrors.ErrInvalidOperation("school", "Neighborhood belongs to a different city")
	}
	return nil
}
