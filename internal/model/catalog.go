package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form every record carries.
const DateLayout = "2006-01-02"

// ServiceCatalog maps every offered service to its default price. A booking
// with a zero service_price falls back to this table at valuation time.
var ServiceCatalog = map[string]float64{
	"Cílios comun":     25.00,
	"Design com Henna": 40.00,
	"Combo":            110.00,
	"Buço":             15.00,
	"Cílios Italiano":  70.00,
	"Maquiagem":        100.00,
	"Retoque Henna":    20.00,
}

// ServiceNames fixes the display order of the catalog.
var ServiceNames = []string{
	"Cílios comun",
	"Design com Henna",
	"Combo",
	"Buço",
	"Cílios Italiano",
	"Maquiagem",
	"Retoque Henna",
}

// ServiceDurations holds the estimated duration per service, in minutes.
var ServiceDurations = map[string]int{
	"Cílios comun":     30,
	"Design com Henna": 45,
	"Combo":            180,
	"Buço":             30,
	"Cílios Italiano":  90,
	"Maquiagem":        60,
	"Retoque Henna":    30,
}

const defaultServiceDuration = 60

// TravelZones maps each travel zone label to its flat fee.
var TravelZones = map[string]float64{
	"ZN - Zona Norte": 5.00,
	"ZL - Zona Leste": 10.00,
	"ZS - Zona Sul":   15.00,
	"Sem taxas":       0.00,
}

var ZoneNames = []string{
	"ZN - Zona Norte",
	"ZL - Zona Leste",
	"ZS - Zona Sul",
	"Sem taxas",
}

// NoTravelZone is the zone applied when a booking does not select one.
const NoTravelZone = "Sem taxas"

const (
	firstSlotHour = 9
	lastSlotHour  = 17
)

// Slots returns the fixed hourly booking slots, ascending: 09:00 through
// 17:00, one appointment per slot per date.
func Slots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// ValidSlot reports whether t is one of the fixed hourly slots.
func ValidSlot(t string) bool {
	for _, s := range Slots() {
		if s == t {
			return true
		}
	}
	return false
}

// DefaultPrice returns the catalog price for a service.
func DefaultPrice(service string) (float64, bool) {
	p, ok := ServiceCatalog[service]
	return p, ok
}

// TravelFeeFor returns the flat fee for a travel zone label.
func TravelFeeFor(zone string) (float64, bool) {
	fee, ok := TravelZones[zone]
	return fee, ok
}

// DurationFor returns the estimated service duration in minutes, falling
// back to one hour for services without an entry.
func DurationFor(service string) int {
	if d, ok := ServiceDurations[service]; ok {
		return d
	}
	return defaultServiceDuration
}

// ValidDate reports whether s parses as a calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
