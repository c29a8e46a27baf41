package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isabeauty/agenda-api/internal/handler"
	"github.com/isabeauty/agenda-api/internal/model"
)

type serviceEntry struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type zoneEntry struct {
	Label string  `json:"label"`
	Fee   float64 `json:"fee"`
}

// Handler serves the fixed service and travel-zone catalog.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) ListServices(c *gin.Context) {
	services := make([]serviceEntry, 0, len(model.ServiceNames))
	for _, name := range model.ServiceNames {
		services = append(services, serviceEntry{
			Name:            name,
			Price:           model.ServiceCatalog[name],
			DurationMinutes: model.DurationFor(name),
		})
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) ListZones(c *gin.Context) {
	zones := make([]zoneEntry, 0, len(model.ZoneNames))
	for _, label := range model.ZoneNames {
		zones = append(zones, zoneEntry{
			Label: label,
			Fee:   model.TravelZones[label],
		})
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(zones))
}

func (h *Handler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.Slots()))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("/services", h.ListServices)
		catalog.GET("/zones", h.ListZones)
		catalog.GET("/slots", h.ListSlots)
	}
}
