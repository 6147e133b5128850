package availability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/handler"
	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

// GetAvailableSlots answers the slot grid the booking page renders:
// GET /professionals/:id/slots?date=YYYY-MM-DD
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	date, err := time.ParseInLocation(model.DateFormat, c.Query("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format, want YYYY-MM-DD"))
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), professionalID, date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/professionals/:id/slots", h.GetAvailableSlots)
}
