package model

import "time"

// Appointment is one booked service instance. The collection of these
// records is the whole persisted state of the studio.
type Appointment struct {
	ID           int64      `json:"id"`
	ClientName   string     `json:"client_name"`
	Phone        string     `json:"phone"`
	Service      string     `json:"service"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	ServicePrice float64    `json:"service_price"`
	TravelFee    float64    `json:"travel_fee"`
	TravelZone   string     `json:"travel_zone_label,omitempty"`
	TotalPrice   float64    `json:"total_price"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	EditedAt     *time.Time `json:"edited_at,omitempty"`
}

type CreateAppointmentRequest struct {
	ClientName   string  `json:"client_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Service      string  `json:"service" binding:"required"`
	Date         string  `json:"date" binding:"required,isodate"`
	Time         string  `json:"time" binding:"required,slot"`
	ServicePrice float64 `json:"service_price" binding:"omitempty,gte=0"`
	TravelZone   string  `json:"travel_zone_label"`
	Notes        string  `json:"notes"`
}

// UpdateAppointmentRequest replaces the whole record; id and created_at are
// preserved by the service.
type UpdateAppointmentRequest struct {
	ClientName   string  `json:"client_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Service      string  `json:"service" binding:"required"`
	Date         string  `json:"date" binding:"required,isodate"`
	Time         string  `json:"time" binding:"required,slot"`
	ServicePrice float64 `json:"service_price" binding:"omitempty,gte=0"`
	TravelZone   string  `json:"travel_zone_label"`
	Notes        string  `json:"notes"`
}

// SearchFilters mirrors the search flows: client and phone are substring
// matches, date is exact.
type SearchFilters struct {
	Client string
	Phone  string
	Date   string
}
