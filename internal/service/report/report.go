package report

import (
	"sort"
	"time"

	"github.com/isabeauty/agenda-api/internal/model"
)

// The aggregation functions in this package are pure and re-scan the full
// record collection on every call. Nothing here caches or mutates.

type DaySummary struct {
	Date         string               `json:"date"`
	TotalValue   float64              `json:"total_value"`
	Count        int                  `json:"count"`
	Appointments []*model.Appointment `json:"appointments"`
}

type MonthSummary struct {
	Year         int                  `json:"year"`
	Month        int                  `json:"month"`
	MonthName    string               `json:"month_name"`
	TotalValue   float64              `json:"total_value"`
	Count        int                  `json:"count"`
	Appointments []*model.Appointment `json:"appointments"`
}

// RankEntry is one row of a top-N ranking.
type RankEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthStatistics struct {
	TopServices []RankEntry `json:"top_services"`
	TopClients  []RankEntry `json:"top_clients"`
	// BusiestDays keys on the day-of-month substring of the date, "05"
	// rather than "2025-06-05".
	BusiestDays  []RankEntry        `json:"busiest_days"`
	DailyRevenue map[string]float64 `json:"daily_revenue"`
}

type OverviewStats struct {
	TotalAppointments int     `json:"total_appointments"`
	UniqueClients     int     `json:"unique_clients"`
	TodayTotal        float64 `json:"today_total"`
	MonthTotal        float64 `json:"month_total"`
	TotalTravelFees   float64 `json:"total_travel_fees"`
}

type Projection struct {
	Workdays         int     `json:"workdays"`
	ClientsPerDay    int     `json:"clients_per_day"`
	AvgTravelFee     float64 `json:"avg_travel_fee"`
	AvgServiceValue  float64 `json:"avg_service_value"`
	AvgTicket        float64 `json:"avg_ticket"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
	DailyTarget      float64 `json:"daily_target"`
}

// AppointmentValue is the single authoritative pricing formula: the recorded
// service price when positive, otherwise the catalog default, plus the
// travel fee. Reports always recompute through here; the stored total_price
// may be stale.
func AppointmentValue(apt *model.Appointment) float64 {
	price := apt.ServicePrice
	if price <= 0 {
		price = model.ServiceCatalog[apt.Service]
	}
	return price + apt.TravelFee
}

// DailySummary totals the bookings whose date equals the target exactly.
func DailySummary(records []*model.Appointment, date string) DaySummary {
	summary := DaySummary{Date: date, Appointments: []*model.Appointment{}}
	for _, r := range records {
		if r.Date != date {
			continue
		}
		summary.Appointments = append(summary.Appointments, r)
		summary.TotalValue += AppointmentValue(r)
	}
	summary.Count = len(summary.Appointments)
	return summary
}

// MonthlySummary totals the bookings falling in (year, month). Records with
// unparsable dates are skipped silently.
func MonthlySummary(records []*model.Appointment, year, month int) MonthSummary {
	summary := MonthSummary{
		Year:         year,
		Month:        month,
		MonthName:    time.Month(month).String(),
		Appointments: []*model.Appointment{},
	}
	for _, r := range monthRecords(records, year, month) {
		summary.Appointments = append(summary.Appointments, r)
		summary.TotalValue += AppointmentValue(r)
	}
	summary.Count = len(summary.Appointments)
	return summary
}

// MonthlyStatistics computes the top-5 rankings and the per-day revenue
// series for (year, month). With no matching bookings every field is empty
// but present.
func MonthlyStatistics(records []*model.Appointment, year, month int) MonthStatistics {
	matched := monthRecords(records, year, month)

	services := newRankCounter()
	clients := newRankCounter()
	days := newRankCounter()
	revenue := make(map[string]float64)

	for _, r := range matched {
		services.add(r.Service)
		clients.add(r.ClientName)
		if len(r.Date) >= 10 {
			days.add(r.Date[8:10])
		}
		revenue[r.Date] += AppointmentValue(r)
	}

	return MonthStatistics{
		TopServices:  services.top(5),
		TopClients:   clients.top(5),
		BusiestDays:  days.top(5),
		DailyRevenue: revenue,
	}
}

// Overview computes the quick stats shown alongside every view: totals,
// unique client count and today's/this month's revenue.
func Overview(records []*model.Appointment, now time.Time) OverviewStats {
	stats := OverviewStats{TotalAppointments: len(records)}

	clients := make(map[string]struct{})
	for _, r := range records {
		clients[r.ClientName] = struct{}{}
		stats.TotalTravelFees += r.TravelFee
	}
	stats.UniqueClients = len(clients)
	stats.TodayTotal = DailySummary(records, now.Format(model.DateLayout)).TotalValue
	stats.MonthTotal = MonthlySummary(records, now.Year(), int(now.Month())).TotalValue
	return stats
}

// EstimateRevenue projects monthly revenue from the catalog's average
// service price, an assumed travel fee and the operator's workload inputs.
func EstimateRevenue(workdays, clientsPerDay int, avgTravelFee float64) Projection {
	var sum float64
	for _, price := range model.ServiceCatalog {
		sum += price
	}
	avgService := sum / float64(len(model.ServiceCatalog))
	ticket := avgService + avgTravelFee
	estimated := ticket * float64(clientsPerDay) * float64(workdays)

	p := Projection{
		Workdays:         workdays,
		ClientsPerDay:    clientsPerDay,
		AvgTravelFee:     avgTravelFee,
		AvgServiceValue:  avgService,
		AvgTicket:        ticket,
		EstimatedRevenue: estimated,
	}
	if workdays > 0 {
		p.DailyTarget = estimated / float64(workdays)
	}
	return p
}

func monthRecords(records []*model.Appointment, year, month int) []*model.Appointment {
	matched := make([]*model.Appointment, 0)
	for _, r := range records {
		d, err := time.Parse(model.DateLayout, r.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && int(d.Month()) == month {
			matched = append(matched, r)
		}
	}
	return matched
}

// rankCounter counts occurrences while remembering first-encounter order,
// so ties rank in the order the names appeared.
type rankCounter struct {
	counts map[string]int
	order  []string
}

func newRankCounter() *rankCounter {
	return &rankCounter{counts: make(map[string]int)}
}

func (c *rankCounter) add(name string) {
	if _, seen := c.counts[name]; !seen {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *rankCounter) top(n int) []RankEntry {
	entries := make([]RankEntry, 0, len(c.order))
	for _, name := range c.order {
		entries = append(entries, RankEntry{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
