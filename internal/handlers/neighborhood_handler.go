package handlers

import (
	"net/http"

	"kidhub_backend/internal/middleware"
	"kidhub_backend/internal/models"
	"kidhub_backend/internal/services"
	"kidhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NeighborhoodHandler struct {
	*BaseHandler
	neighborhoodService services.NeighborhoodService
}

func NewNeighborhoodHandler(base *BaseHandler, neighborhoodService services.NeighborhoodService) *NeighborhoodHandler {
	return &NeighborhoodHandler{
		BaseHandler:         base,
		neighborhoodService: neighborhoodService,
	}
}

func (h *NeighborhoodHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/neighborhoods")
	{
		public.GET("", h.ListNeighborhoods)
		public.GET("/:neighborhoodId", h.GetNeighborhood)
	}

	admin := r.Group("/neighborhoods")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateNeighborhood)
	}
}

func (h *NeighborhoodHandler) ListNeighborhoods(c *gin.Context) {
	neighborhoods, err := h.neighborhoodService.ListNeighborhoods(h.GetDB(c), c.Query("city"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, neighborhoods)
}

func (h *NeighborhoodHandler) GetNeighborhood(c *gin.Context) {
	neighborhood, err := h.neighborhoodService.GetNeighborhood(h.GetDB(c), c.Param("neighborhoodId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, neighborhood)
}

// CreateNeighborhood godoc
// @Summary Add a neighborhood to the catalog
// @Tags neighborhoods
// @Accept json
// @Produce json
// @Param request body dto.CreateNeighborhoodRequest true "Neighborhood data"
// @Success 201 {object} models.Neighborhood
// @Security BearerAuth
// @Router /neighborhoods [post]
func (h *NeighborhoodHandler) CreateNeighborhood(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateNeighborhoodRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	neighborhood, err := h.neighborhoodService.CreateNeighborhood(h.GetDB(c), h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, neighborhood)
}
