package services

import (
	"errors"

	"kidhub_backend/internal/moderation"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/repositories"
	"kidhub_backend/internal/services/dto"
	"kidhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateReviewRequest) (*models.Review, error)
	ListSchoolReviews(db *gorm.DB, schoolID string) ([]models.Review, error)
	ListMyReviews(db *gorm.DB, userID string) ([]models.Review, error)
	DeleteReview(db *gorm.DB, userID string, role models.UserRole, reviewID string) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	schoolRepo repositories.SchoolRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, schoolRepo repositories.SchoolRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		schoolRepo: schoolRepo,
	}
}

// CreateReview - один отзыв на пару (родитель, школа).
func (s *reviewService) CreateReview(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateReviewRequest) (*models.Review, error) {
	if d := moderation.Authorize(role, userID, moderation.ActionCreateReview, moderation.Target{}); !d.Allowed {
		return nil, d.Err()
	}

	if _, err := s.schoolRepo.FindByID(db, req.SchoolID); err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	review := &models.Review{
		SchoolID: req.SchoolID,
		ParentID: userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := s.reviewRepo.Create(db, review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrConflict(err, "review", "You already reviewed this school")
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListSchoolReviews(db *gorm.DB, schoolID string) ([]models.Review, error) {
	if _, err := s.schoolRepo.FindByID(db, schoolID); err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return s.reviewRepo.FindBySchool(db, schoolID)
}

func (s *reviewService) ListMyReviews(db *gorm.DB, userID string) ([]models.Review, error) {
	return s.reviewRepo.FindByParent(db, userID)
}

// DeleteReview разрешен автору отзыва и админу.
func (s *reviewService) DeleteReview(db *gorm.DB, userID string, role models.UserRole, reviewID string) error {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}

	if review.ParentID != userID && role != models.UserRoleAdmin {
		return apperrors.ErrNotOwner
	}

	return s.reviewRepo.Delete(db, reviewID)
}
