package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/isabeauty/agenda-api/internal/model"
	reportService "github.com/isabeauty/agenda-api/internal/service/report"
)

type Handler struct {
	service *reportService.Service
}

func NewHandler(service *reportService.Service) *Handler {
	return &Handler{service: service}
}

// GetDailyReport summarizes the bookings of a single date. Defaults to
// today when no date is given.
func (h *Handler) GetDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(model.DateLayout)
	}
	if !model.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date format"})
		return
	}

	summary := h.service.Daily(c.Request.Context(), date)
	if summary.Count == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "no appointments on this date", "data": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": summary})
}

func (h *Handler) GetMonthlyReport(c *gin.Context) {
	year, month, err := yearMonth(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	summary := h.service.Monthly(c.Request.Context(), year, month)
	if summary.Count == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "no appointments in this month", "data": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": summary})
}

func (h *Handler) GetMonthlyStatistics(c *gin.Context) {
	year, month, err := yearMonth(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	stats := h.service.Statistics(c.Request.Context(), year, month)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}

func (h *Handler) GetOverview(c *gin.Context) {
	overview := h.service.CurrentOverview(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": overview})
}

// GetProjection estimates monthly revenue from a workload scenario. The
// defaults describe a full month at capacity.
func (h *Handler) GetProjection(c *gin.Context) {
	workdays, err := intQuery(c, "workdays", 22)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid workdays"})
		return
	}
	clientsPerDay, err := intQuery(c, "clients_per_day", 5)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clients_per_day"})
		return
	}
	avgTravelFee := 5.0
	if raw := c.Query("avg_travel_fee"); raw != "" {
		avgTravelFee, err = strconv.ParseFloat(raw, 64)
		if err != nil || avgTravelFee < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid avg_travel_fee"})
			return
		}
	}
	if workdays < 0 || clientsPerDay < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "workdays and clients_per_day must not be negative"})
		return
	}

	projection := reportService.EstimateRevenue(workdays, clientsPerDay, avgTravelFee)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": projection})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/daily", h.GetDailyReport)
		reports.GET("/monthly", h.GetMonthlyReport)
		reports.GET("/monthly/statistics", h.GetMonthlyStatistics)
		reports.GET("/overview", h.GetOverview)
		reports.GET("/projection", h.GetProjection)
	}
}

func yearMonth(c *gin.Context) (int, int, error) {
	now := time.Now()
	year, err := intQuery(c, "year", now.Year())
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("invalid year")
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month")
	}
	return year, month, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
