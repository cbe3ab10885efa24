package handlers

import (
	"net/http"

	"kidhub_backend/internal/middleware"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/services"
	"kidhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SchoolHandler struct {
	*BaseHandler
	schoolService services.SchoolService
}

func NewSchoolHandler(base *BaseHandler, schoolService services.SchoolService) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   base,
		schoolService: schoolService,
	}
}

func (h *SchoolHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/schools")
	{
		public.GET("", h.ListSchools)
		public.GET("/:schoolId", h.GetSchool)
		public.GET("/:schoolId/rating", h.GetSchoolRating)
	}

	// Protected routes - school accounts
	schools := r.Group("/schools")
	schools.Use(middleware.AuthMiddleware())
	{
		schools.POST("", h.CreateSchool)
		schools.GET("/my", h.GetMySchool)
		schools.PUT("/:schoolId", h.UpdateSchool)
	}

	// Admin routes - moderation queue
	admin := r.Group("/admin/schools")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPendingSchools)
		admin.POST("/:schoolId/verify", h.VerifySchool)
	}
}

// ListSchools godoc
// @Summary List verified schools
// @Tags schools
// @Produce json
// @Param city query string false "Filter by city"
// @Param neighborhood_id query string false "Filter by neighborhood (requires city)"
// @Success 200 {array} models.School
// @Router /schools [get]
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	var filter dto.SchoolFilterRequest
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	schools, err := h.schoolService.ListSchools(h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, schools)
}

func (h *SchoolHandler) GetSchool(c *gin.Context) {
	school, err := h.schoolService.GetSchool(h.GetDB(c), c.Param("schoolId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandler) GetSchoolRating(c *gin.Context) {
	rating, err := h.schoolService.GetSchoolRating(h.GetDB(c), c.Param("schoolId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

// CreateSchool godoc
// @Summary Create a school for the current school account
// @Tags schools
// @Accept json
// @Produce json
// @Param request body dto.CreateSchoolRequest true "School data"
// @Success 201 {object} models.School
// @Security BearerAuth
// @Router /schools [post]
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSchoolRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	school, err := h.schoolService.CreateSchool(h.GetDB(c), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

func (h *SchoolHandler) GetMySchool(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	school, err := h.schoolService.GetMySchool(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	school, err := h.schoolService.UpdateSchool(h.GetDB(c), userID, h.GetUserRole(c), c.Param("schoolId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

func (h *SchoolHandler) ListPendingSchools(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	schools, err := h.schoolService.ListPendingSchools(h.GetDB(c), h.GetUserRole(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, schools)
}

// VerifySchool godoc
// @Summary Mark a school as verified (idempotent)
// @Tags admin
// @Produce json
// @Param schoolId path string true "School ID"
// @Success 200 {object} models.School
// @Security BearerAuth
// @Router /admin/schools/{schoolId}/verify [post]
func (h *SchoolHandler) VerifySchool(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	school, err := h.schoolService.VerifySchool(h.GetDB(c), h.GetUserRole(c), userID, c.Param("schoolId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}
