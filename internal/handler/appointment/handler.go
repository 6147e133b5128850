package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/handler"
	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) BookSlot(c *gin.Context) {
	actorID, ok := actor(c)
	if !ok {
		return
	}

	var req model.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.BookSlot(c.Request.Context(), actorID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

// ListAppointments returns the authenticated client's own bookings.
func (h *Handler) ListAppointments(c *gin.Context) {
	actorID, ok := actor(c)
	if !ok {
		return
	}

	appointments, err := h.service.ListForClient(c.Request.Context(), actorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// ListProfessionalAppointments returns the authenticated professional's
// agenda for a date window.
func (h *Handler) ListProfessionalAppointments(c *gin.Context) {
	actorID, ok := actor(c)
	if !ok {
		return
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 1, 0)
	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation(model.DateFormat, v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date"))
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation(model.DateFormat, v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date"))
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	appointments, err := h.service.ListForProfessional(c.Request.Context(), actorID, from, to)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	actorID, ok := actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, actorID, req.Reason); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ConfirmAppointment(c *gin.Context) {
	actorID, ok := actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Confirm(c.Request.Context(), id, actorID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookSlot)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.POST("/:id/confirm", h.ConfirmAppointment)
	}
	r.GET("/me/appointments", h.ListProfessionalAppointments)
}

func actor(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return uuid.Nil, false
	}
	return id, true
}
