package appointment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/isabeauty/agenda-api/internal/model"
	appointmentService "github.com/isabeauty/agenda-api/internal/service/appointment"
	"github.com/isabeauty/agenda-api/pkg/event"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.NewData = apt
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": apt})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments := h.service.ListAppointments(c.Request.Context())
	if len(appointments) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "no appointments scheduled yet", "data": appointments})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) SearchAppointments(c *gin.Context) {
	filters := &model.SearchFilters{
		Client: c.Query("client"),
		Phone:  c.Query("phone"),
		Date:   c.Query("date"),
	}
	if filters.Client == "" && filters.Phone == "" && filters.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "provide at least one of client, phone or date"})
		return
	}
	if filters.Date != "" && !model.ValidDate(filters.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date format"})
		return
	}

	results := h.service.SearchAppointments(c.Request.Context(), filters)
	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "no appointments matched", "data": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": results})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	oldApt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.OldData = oldApt
		eventCtx.NewData = apt
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.OldData = apt
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetAvailability lists the free slots on a date. The optional keep
// parameter marks a slot that stays offered even when booked, for edits.
func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if !model.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date format"})
		return
	}

	slots := h.service.Availability(c.Request.Context(), date, c.Query("keep"))
	if len(slots) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "no free slots on this date", "data": slots})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": slots})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/availability", h.GetAvailability)
		appointments.GET("/search", h.SearchAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, eventTracker *event.EventTrackerMiddleware) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", eventTracker.TrackEvent("appointment", "create"), h.CreateAppointment)
		appointments.PUT("/:id", eventTracker.TrackEvent("appointment", "update"), h.UpdateAppointment)
		appointments.DELETE("/:id", eventTracker.TrackEvent("appointment", "delete"), h.DeleteAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/availability", h.GetAvailability)
		appointments.GET("/search", h.SearchAppointments)
		appointments.GET("/:id", h.GetAppointment)
	}
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func statusFor(err error) int {
	if e, ok := err.(interface{ StatusCode() int }); ok {
		return e.StatusCode()
	}
	return http.StatusInternalServerError
}
