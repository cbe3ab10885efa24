package handlers

import (
	"net/http"

	"kidhub_backend/internal/middleware"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/services"
	"kidhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	*BaseHandler
	activityService services.ActivityService
}

func NewActivityHandler(base *BaseHandler, activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler:     base,
		activityService: activityService,
	}
}

func (h *ActivityHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/activities")
	{
		public.GET("", h.ListActivities)
		public.GET("/:activityId", h.GetActivity)
	}
	r.GET("/schools/:schoolId/activities", h.ListSchoolActivities)

	// Protected routes
	activities := r.Group("/activities")
	activities.Use(middleware.AuthMiddleware())
	{
		activities.POST("", middleware.RoleMiddleware(models.UserRoleSchool), h.CreateActivity)
		activities.POST("/submissions", middleware.RoleMiddleware(models.UserRoleParent), h.SubmitActivity)
		activities.DELETE("/:activityId", h.DeactivateActivity)
	}

	// Admin routes - moderation queue
	admin := r.Group("/admin/activities")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPendingActivities)
		admin.POST("/:activityId/verify", h.VerifyActivity)
	}
}

// ListActivities godoc
// @Summary List active verified activities
// @Tags activities
// @Produce json
// @Param city query string false "Filter by city"
// @Param neighborhood_id query string false "Filter by neighborhood (requires city)"
// @Param category query string false "Activity category"
// @Param age_min query int false "Child age range lower bound"
// @Param age_max query int false "Child age range upper bound"
// @Param price_min query number false "Minimum monthly price"
// @Param price_max query number false "Maximum monthly price"
// @Success 200 {array} models.Activity
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var filter dto.ActivityFilterRequest
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	activities, err := h.activityService.ListActivities(h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) GetActivity(c *gin.Context) {
	activity, err := h.activityService.GetActivity(h.GetDB(c), c.Param("activityId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) ListSchoolActivities(c *gin.Context) {
	activities, err := h.activityService.ListSchoolActivities(h.GetDB(c), c.Param("schoolId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

// CreateActivity godoc
// @Summary Create an activity for the current school
// @Tags activities
// @Accept json
// @Produce json
// @Param request body dto.CreateActivityRequest true "Activity data"
// @Success 201 {object} models.Activity
// @Security BearerAuth
// @Router /activities [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	activity, err := h.activityService.CreateActivity(h.GetDB(c), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// SubmitActivity godoc
// @Summary Submit an activity found by a parent for moderation
// @Tags activities
// @Accept json
// @Produce json
// @Param request body dto.SubmitActivityRequest true "Submission data"
// @Success 201 {object} models.Activity
// @Security BearerAuth
// @Router /activities/submissions [post]
func (h *ActivityHandler) SubmitActivity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitActivityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	activity, err := h.activityService.SubmitActivity(h.GetDB(c), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

func (h *ActivityHandler) DeactivateActivity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.activityService.DeactivateActivity(h.GetDB(c), userID, h.GetUserRole(c), c.Param("activityId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ActivityHandler) ListPendingActivities(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	activities, err := h.activityService.ListPendingActivities(h.GetDB(c), h.GetUserRole(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

// VerifyActivity godoc
// @Summary Mark an activity as verified (idempotent)
// @Tags admin
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} models.Activity
// @Security BearerAuth
// @Router /admin/activities/{activityId}/verify [post]
func (h *ActivityHandler) VerifyActivity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.VerifyActivity(h.GetDB(c), h.GetUserRole(c), userID, c.Param("activityId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}
