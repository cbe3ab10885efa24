package services

import (
	"errors"
	"time"

	"kidhub_backend/internal/auth"
	"kidhub_backend/internal/config"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/repositories"
	"kidhub_backend/internal/services/dto"
	"kidhub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	WhoAmI(db *gorm.DB, userID string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Register создает пользователя с ролью parent или school.
// Админы не регистрируются через публичный endpoint.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	role := models.UserRole(req.Role)
	if role != models.UserRoleParent && role != models.UserRoleSchool {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issueTokens(db, user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(db, user)
}

// Refresh обменивает refresh-токен на новую пару токенов.
// Старый токен отзывается (rotation), повторное использование невозможно.
func (s *authService) Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	rt, err := s.tokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.tokenRepo.DeleteByToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, rt.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.tokenRepo.DeleteByToken(db, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(db, user)
}

func (s *authService) Logout(db *gorm.DB, refreshToken string) error {
	return s.tokenRepo.DeleteByToken(db, refreshToken)
}

// WhoAmI возвращает актуальный профиль по userID из токена.
// Роль берется из базы, а не из claims.
func (s *authService) WhoAmI(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	cfg := config.GetConfig()
	refreshToken := uuid.NewString()
	rt := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTL) * 24 * time.Hour),
	}
	if err := s.tokenRepo.Create(db, rt); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
