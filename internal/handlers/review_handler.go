package handlers

import (
	"net/http"

	"kidhub_backend/internal/middleware"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/services"
	"kidhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	r.GET("/schools/:schoolId/reviews", h.ListSchoolReviews)

	// Protected routes
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", middleware.RoleMiddleware(models.UserRoleParent), h.CreateReview)
		reviews.GET("/my", middleware.RoleMiddleware(models.UserRoleParent), h.ListMyReviews)
		reviews.DELETE("/:reviewId", h.DeleteReview)
	}
}

// CreateReview godoc
// @Summary Leave a review for a school
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Review data"
// @Success 201 {object} models.Review
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(h.GetDB(c), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListSchoolReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListSchoolReviews(h.GetDB(c), c.Param("schoolId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) ListMyReviews(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListMyReviews(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(h.GetDB(c), userID, h.GetUserRole(c), c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
