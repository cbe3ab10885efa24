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

type ActivityService interface {
	CreateActivity(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateActivityRequest) (*models.Activity, error)
	SubmitActivity(db *gorm.DB, userID string, role models.UserRole, req *dto.SubmitActivityRequest) (*models.Activity, error)
	GetActivity(db *gorm.DB, activityID string) (*models.Activity, error)
	ListActivities(db *gorm.DB, filter *dto.ActivityFilterRequest) ([]models.Activity, error)
	ListSchoolActivities(db *gorm.DB, schoolID string) ([]models.Activity, error)
	ListPendingActivities(db *gorm.DB, role models.UserRole, requesterID string) ([]models.Activity, error)
	VerifyActivity(db *gorm.DB, role models.UserRole, requesterID, activityID string) (*models.Activity, error)
	DeactivateActivity(db *gorm.DB, userID string, role models.UserRole, activityID string) error
}

type activityService struct {
	activityRepo     repositories.ActivityRepository
	schoolRepo       repositories.SchoolRepository
	neighborhoodRepo repositories.NeighborhoodRepository
}

func NewActivityService(
	activityRepo repositories.ActivityRepository,
	schoolRepo repositories.SchoolRepository,
	neighborhoodRepo repositories.NeighborhoodRepository,
) ActivityService {
	return &activityService{
		activityRepo:     activityRepo,
		schoolRepo:       schoolRepo,
		neighborhoodRepo: neighborhoodRepo,
	}
}

// CreateActivity создает занятие от имени школы.
// Аккаунт должен уже владеть школой, занятие привязывается к ней.
func (s *activityService) CreateActivity(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateActivityRequest) (*models.Activity, error) {
	if d := moderation.Authorize(role, userID, moderation.ActionCreateActivity, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	school, err := s.schoolRepo.FindByOwner(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrInvalidOperation("activity", "Create a school before adding activities")
		}
		return nil, err
	}

	if err := validateAgeRange(req.AgeMin, req.AgeMax); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		SchoolID:     &school.ID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.ActivityCategory(req.Category),
		AgeMin:       req.AgeMin,
		AgeMax:       req.AgeMax,
		PriceMonthly: req.PriceMonthly,
		Active:       true,
		Verified:     false,
		CreatedBy:    userID,
		Source:       models.ActivitySourceSchool,
	}

	if err := s.activityRepo.Create(db, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// SubmitActivity - родительская заявка на занятие. Попадает в очередь
// модерации неверифицированной, источник помечается как parent.
func (s *activityService) SubmitActivity(db *gorm.DB, userID string, role models.UserRole, req *dto.SubmitActivityRequest) (*models.Activity, error) {
	if d := moderation.Authorize(role, userID, moderation.ActionSubmitActivity, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	if err := validateAgeRange(req.AgeMin, req.AgeMax); err != nil {
		return nil, err
	}

	var schoolID *string
	if req.SchoolID != nil {
		school, err := s.schoolRepo.FindByID(db, *req.SchoolID)
		if err != nil {
			if errors.Is(err, repositories.ErrSchoolNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, err
		}
		schoolID = &school.ID
	}

	activity := &models.Activity{
		SchoolID:     schoolID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.ActivityCategory(req.Category),
		AgeMin:       req.AgeMin,
		AgeMax:       req.AgeMax,
		PriceMonthly: req.PriceMonthly,
		Active:       true,
		Verified:     false,
		CreatedBy:    userID,
		Source:       models.ActivitySourceParent,
	}

	if err := s.activityRepo.Create(db, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) GetActivity(db *gorm.DB, activityID string) (*models.Activity, error) {
	activity, err := s.activityRepo.FindByID(db, activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return activity, nil
}

// ListActivities возвращает активные занятия по фильтру. Пустой фильтр
// не сужает выборку, verified_only=true оставляет только верифицированные.
// Возрастной фильтр работает как пересечение интервалов, neighborhood_id
// действует только вместе с city (как в ListSchools).
func (s *activityService) ListActivities(db *gorm.DB, filter *dto.ActivityFilterRequest) ([]models.Activity, error) {
	if filter.AgeMin != nil && filter.AgeMax != nil && *filter.AgeMin > *filter.AgeMax {
		return nil, apperrors.NewBadRequestError("age_min must not exceed age_max")
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return nil, apperrors.NewBadRequestError("price_min must not exceed price_max")
	}

	criteria := repositories.ActivitySearchCriteria{
		City:         filter.City,
		Category:     filter.Category,
		AgeMin:       filter.AgeMin,
		AgeMax:       filter.AgeMax,
		PriceMin:     filter.PriceMin,
		PriceMax:     filter.PriceMax,
		VerifiedOnly: filter.VerifiedOnly,
	}

	if filter.NeighborhoodID != "" && filter.City != "" {
		n, err := s.neighborhoodRepo.FindByID(db, filter.NeighborhoodID)
		if err == nil && strings.EqualFold(n.City, filter.City) {
			criteria.NeighborhoodID = filter.NeighborhoodID
		}
	}

	return s.activityRepo.Search(db, criteria)
}

func (s *activityService) ListSchoolActivities(db *gorm.DB, schoolID string) ([]models.Activity, error) {
	if _, err := s.schoolRepo.FindByID(db, schoolID); err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return s.activityRepo.FindBySchool(db, schoolID)
}

func (s *activityService) ListPendingActivities(db *gorm.DB, role models.UserRole, requesterID string) ([]models.Activity, error) {
	if d := moderation.Authorize(role, requesterID, moderation.ActionVerifyActivity, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}
	return s.activityRepo.FindPending(db)
}

// VerifyActivity помечает занятие верифицированным, идемпотентно.
func (s *activityService) VerifyActivity(db *gorm.DB, role models.UserRole, requesterID, activityID string) (*models.Activity, error) {
	if d := moderation.Authorize(role, requesterID, moderation.ActionVerifyActivity, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	activity, err := s.GetActivity(db, activityID)
	if err != nil {
		return nil, err
	}
	if !moderation.VerifyChanges(moderation.VerificationStateOf(activity.Verified)) {
		return activity, nil
	}

	if _, err := s.activityRepo.Verify(db, activityID); err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	return s.activityRepo.FindByID(db, activityID)
}

// DeactivateActivity - мягкое удаление. Запись остается, чтобы не рвать
// ссылки из лидов. Разрешено владельцу занятия и админу.
func (s *activityService) DeactivateActivity(db *gorm.DB, userID string, role models.UserRole, activityID string) error {
	activity, err := s.GetActivity(db, activityID)
	if err != nil {
		return err
	}

	if !s.canManageActivity(db, activity, userID, role) {
		return apperrors.ErrNotOwner
	}

	return s.activityRepo.Deactivate(db, activityID)
}

// canManageActivity: админ, автор записи, либо владелец школы занятия.
func (s *activityService) canManageActivity(db *gorm.DB, activity *models.Activity, userID string, role models.UserRole) bool {
	if role == models.UserRoleAdmin {
		return true
	}
	if activity.CreatedBy == userID {
		return true
	}
	if activity.SchoolID != nil {
		school, err := s.schoolRepo.FindByID(db, *activity.SchoolID)
		if err == nil && school.CreatedBy == userID {
			return true
		}
	}
	return false
}

func validateAgeRange(ageMin, ageMax int) error {
	if ageMin < models.ActivityAgeFloor || ageMax > models.ActivityAgeCeiling || ageMin > ageMax {
		return apperrors.NewBadRequestError("Age range must satisfy 3 <= age_min <= age_max <= 18")
	}
	return nil
}
