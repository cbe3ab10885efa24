package handlers

import (
	"net/http"

	"kidhub_backend/internal/middleware"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/services"
	"kidhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	*BaseHandler
	leadService services.LeadService
}

func NewLeadHandler(base *BaseHandler, leadService services.LeadService) *LeadHandler {
	return &LeadHandler{
		BaseHandler: base,
		leadService: leadService,
	}
}

func (h *LeadHandler) RegisterRoutes(r *gin.RouterGroup) {
	leads := r.Group("/leads")
	leads.Use(middleware.AuthMiddleware())
	{
		leads.POST("", middleware.RoleMiddleware(models.UserRoleParent), h.CreateLead)
		leads.GET("/my", middleware.RoleMiddleware(models.UserRoleParent), h.ListMyLeads)
		leads.GET("/school", middleware.RequireRoles(models.UserRoleSchool, models.UserRoleAdmin), h.ListSchoolLeads)
		leads.GET("/:leadId", h.GetLead)
		leads.PATCH("/:leadId/status", middleware.RequireRoles(models.UserRoleSchool, models.UserRoleAdmin), h.UpdateLeadStatus)
	}
}

// CreateLead godoc
// @Summary Create a lead for an activity
// @Tags leads
// @Accept json
// @Produce json
// @Param request body dto.CreateLeadRequest true "Lead data"
// @Success 201 {object} models.Lead
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLeadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lead, err := h.leadService.CreateLead(h.GetDB(c), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) ListMyLeads(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	leads, err := h.leadService.ListMyLeads(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) ListSchoolLeads(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	leads, err := h.leadService.ListSchoolLeads(h.GetDB(c), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	lead, err := h.leadService.GetLead(h.GetDB(c), userID, h.GetUserRole(c), c.Param("leadId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// UpdateLeadStatus godoc
// @Summary Move a lead along the new -> contacted -> closed funnel
// @Tags leads
// @Accept json
// @Produce json
// @Param leadId path string true "Lead ID"
// @Param request body dto.UpdateLeadStatusRequest true "Target status"
// @Success 200 {object} models.Lead
// @Security BearerAuth
// @Router /leads/{leadId}/status [patch]
func (h *LeadHandler) UpdateLeadStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLeadStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lead, err := h.leadService.UpdateLeadStatus(h.GetDB(c), userID, h.GetUserRole(c), c.Param("leadId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}
