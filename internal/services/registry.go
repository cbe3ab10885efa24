package services

import (
	"kidhub_backend/internal/config"
	"kidhub_backend/internal/email"
	"kidhub_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	SchoolService       SchoolService
	ActivityService     ActivityService
	LeadService         LeadService
	ReviewService       ReviewService
	NeighborhoodService NeighborhoodService
	EmailProvider       email.Provider
}

// NewServiceContainer собирает сервисы поверх репозиториев.
func NewServiceContainer(repos *repositories.RepositoryContainer) *ServiceContainer {
	cfg := config.GetConfig()

	var mailer email.Provider
	if cfg.Email.Enabled {
		mailer = email.NewSMTPProvider(&email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.FromEmail,
			UseTLS:   cfg.Email.UseTLS,
		})
	} else {
		mailer = email.NewNoopProvider()
	}

	return &ServiceContainer{
		AuthService:         NewAuthService(repos.UserRepo, repos.RefreshTokenRepo),
		SchoolService:       NewSchoolService(repos.SchoolRepo, repos.NeighborhoodRepo, repos.ReviewRepo),
		ActivityService:     NewActivityService(repos.ActivityRepo, repos.SchoolRepo, repos.NeighborhoodRepo),
		LeadService:         NewLeadService(repos.LeadRepo, repos.ActivityRepo, repos.SchoolRepo, repos.UserRepo, mailer),
		ReviewService:       NewReviewService(repos.ReviewRepo, repos.SchoolRepo),
		NeighborhoodService: NewNeighborhoodService(repos.NeighborhoodRepo),
		EmailProvider:       mailer,
	}
}
