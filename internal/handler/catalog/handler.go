package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/handler"
	"github.com/IsaacLanzoni/projeto-belezza/internal/service/catalog"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListProfessionals(c *gin.Context) {
	professionals, err := h.service.ListProfessionals(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(professionals))
}

func (h *Handler) GetProfessional(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	professional, err := h.service.GetProfessional(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(professional))
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context(), c.DefaultQuery("category", "all"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(svc))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/professionals", h.ListProfessionals)
	r.GET("/professionals/:id", h.GetProfessional)
	r.GET("/services", h.ListServices)
	r.GET("/services/:id", h.GetService)
}
