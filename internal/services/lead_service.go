package services

import (
	"errors"
	"fmt"

	"kidhub_backend/internal/email"
	"kidhub_backend/internal/logger"
	"kidhub_backend/internal/moderation"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/repositories"
	"kidhub_backend/internal/services/dto"
	"kidhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type LeadService interface {
	CreateLead(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateLeadRequest) (*models.Lead, error)
	GetLead(db *gorm.DB, userID string, role models.UserRole, leadID string) (*models.Lead, error)
	ListMyLeads(db *gorm.DB, userID string) ([]models.Lead, error)
	ListSchoolLeads(db *gorm.DB, userID string, role models.UserRole) ([]models.Lead, error)
	UpdateLeadStatus(db *gorm.DB, userID string, role models.UserRole, leadID string, req *dto.UpdateLeadStatusRequest) (*models.Lead, error)
}

type leadService struct {
	leadRepo     repositories.LeadRepository
	activityRepo repositories.ActivityRepository
	schoolRepo   repositories.SchoolRepository
	userRepo     repositories.UserRepository
	mailer       email.Provider
}

func NewLeadService(
	leadRepo repositories.LeadRepository,
	activityRepo repositories.ActivityRepository,
	schoolRepo repositories.SchoolRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
) LeadService {
	return &leadService{
		leadRepo:     leadRepo,
		activityRepo: activityRepo,
		schoolRepo:   schoolRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

// CreateLead создает заявку родителя на занятие. Один лид на пару
// (родитель, занятие). Стартовый статус всегда new.
func (s *leadService) CreateLead(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateLeadRequest) (*models.Lead, error) {
	if d := moderation.Authorize(role, userID, moderation.ActionCreateLead, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	activity, err := s.activityRepo.FindByID(db, req.ActivityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if !activity.Active {
		return nil, apperrors.ErrInvalidOperation("lead", "Activity is no longer active")
	}

	if req.ChildAge < activity.AgeMin || req.ChildAge > activity.AgeMax {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("Child age must be between %d and %d for this activity", activity.AgeMin, activity.AgeMax))
	}

	lead := &models.Lead{
		ActivityID: activity.ID,
		ParentID:   userID,
		ChildAge:   req.ChildAge,
		Message:    req.Message,
		Status:     models.LeadStatusNew,
	}

	if err := s.leadRepo.Create(db, lead); err != nil {
		if errors.Is(err, repositories.ErrLeadAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "lead", "You already have a lead for this activity")
		}
		return nil, err
	}

	// Уведомление школе best-effort: ошибка отправки не откатывает лид
	s.notifySchool(db, activity, lead)

	return s.leadRepo.FindByID(db, lead.ID)
}

// GetLead доступен автору лида, владельцу школы занятия и админу.
func (s *leadService) GetLead(db *gorm.DB, userID string, role models.UserRole, leadID string) (*models.Lead, error) {
	lead, err := s.leadRepo.FindByID(db, leadID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if role == models.UserRoleAdmin || lead.ParentID == userID || s.leadSchoolOwner(db, lead) == userID {
		return lead, nil
	}
	return nil, apperrors.ErrNotOwner
}

func (s *leadService) ListMyLeads(db *gorm.DB, userID string) ([]models.Lead, error) {
	return s.leadRepo.FindByParent(db, userID)
}

// ListSchoolLeads возвращает лиды по занятиям школы текущего аккаунта.
// Админ не владеет школой и видит все лиды разом.
func (s *leadService) ListSchoolLeads(db *gorm.DB, userID string, role models.UserRole) ([]models.Lead, error) {
	if role != models.UserRoleSchool && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if role == models.UserRoleAdmin {
		return s.leadRepo.FindAll(db)
	}

	school, err := s.schoolRepo.FindByOwner(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return s.leadRepo.FindBySchool(db, school.ID)
}

// UpdateLeadStatus продвигает лид по воронке new -> contacted -> closed.
// Переход применяется через compare-and-set: допустимые исходные статусы
// вычисляются из таблицы переходов, гонка двух обновлений дает конфликт,
// а не потерянную запись.
func (s *leadService) UpdateLeadStatus(db *gorm.DB, userID string, role models.UserRole, leadID string, req *dto.UpdateLeadStatusRequest) (*models.Lead, error) {
	to := models.LeadStatus(req.Status)
	if !moderation.ValidLeadStatus(to) {
		return nil, apperrors.ErrInvalidOperation("lead", "Unknown lead status")
	}

	lead, err := s.leadRepo.FindByID(db, leadID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	owner := s.leadSchoolOwner(db, lead)
	if d := moderation.Authorize(role, userID, moderation.ActionUpdateLeadStatus, moderation.Target{OwnerID: owner}); !d.Allowed {
		return nil, d.Err()
	}

	if !moderation.CanTransitionLead(lead.Status, to) {
		return nil, moderation.ErrLeadTransition(lead.Status, to)
	}

	err = s.leadRepo.UpdateStatusCAS(db, leadID, to, moderation.LeadPredecessors(to))
	if err != nil {
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		if errors.Is(err, repositories.ErrLeadStatusRace) {
			current, rerr := s.leadRepo.FindByID(db, leadID)
			if rerr != nil {
				return nil, moderation.ErrLeadTransition(lead.Status, to)
			}
			return nil, moderation.ErrLeadTransition(current.Status, to)
		}
		return nil, err
	}

	return s.leadRepo.FindByID(db, leadID)
}

// leadSchoolOwner возвращает userID владельца школы занятия лида,
// пустую строку если занятие не привязано к школе.
func (s *leadService) leadSchoolOwner(db *gorm.DB, lead *models.Lead) string {
	activity := lead.Activity
	if activity == nil {
		a, err := s.activityRepo.FindByID(db, lead.ActivityID)
		if err != nil {
			return ""
		}
		activity = a
	}
	if activity.SchoolID == nil {
		return ""
	}

	school, err := s.schoolRepo.FindByID(db, *activity.SchoolID)
	if err != nil {
		return ""
	}
	return school.CreatedBy
}

func (s *leadService) notifySchool(db *gorm.DB, activity *models.Activity, lead *models.Lead) {
	if activity.SchoolID == nil {
		return
	}

	school, err := s.schoolRepo.FindByID(db, *activity.SchoolID)
	if err != nil {
		return
	}

	to := school.Email
	if to == "" {
		owner, err := s.userRepo.FindByID(db, school.CreatedBy)
		if err != nil {
			return
		}
		to = owner.Email
	}

	msg := &email.Email{
		To:      []string{to},
		Subject: fmt.Sprintf("New lead for %s", activity.Title),
		Body: fmt.Sprintf(
			"You have a new lead for %q.\n\nChild age: %d\nMessage: %s\n",
			activity.Title, lead.ChildAge, lead.Message,
		),
	}
	if err := s.mailer.Send(msg); err != nil {
		logger.WithError(err).Warn("failed to send lead notification", "lead_id", lead.ID)
	}
}
