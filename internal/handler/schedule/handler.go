package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/handler"
	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

// GetSchedule returns the authenticated professional's weekly template
// plus any special-date overrides.
func (h *Handler) GetSchedule(c *gin.Context) {
	professionalID, ok := actor(c)
	if !ok {
		return
	}

	cfg, err := h.service.GetSchedule(c.Request.Context(), professionalID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

func (h *Handler) SaveWeekSchedule(c *gin.Context) {
	professionalID, ok := actor(c)
	if !ok {
		return
	}

	var week model.WeekSchedule
	if err := c.ShouldBindJSON(&week); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SaveWeekSchedule(c.Request.Context(), professionalID, week); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) SaveSpecialDate(c *gin.Context) {
	professionalID, ok := actor(c)
	if !ok {
		return
	}

	var day model.DaySchedule
	if err := c.ShouldBindJSON(&day); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SaveSpecialDate(c.Request.Context(), professionalID, c.Param("date"), day); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteSpecialDate(c *gin.Context) {
	professionalID, ok := actor(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSpecialDate(c.Request.Context(), professionalID, c.Param("date")); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sched := r.Group("/schedule")
	{
		sched.GET("", h.GetSchedule)
		sched.PUT("/week", h.SaveWeekSchedule)
		sched.PUT("/special/:date", h.SaveSpecialDate)
		sched.DELETE("/special/:date", h.DeleteSpecialDate)
	}
}

func actor(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return uuid.Nil, false
	}
	return id, true
}
