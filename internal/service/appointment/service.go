package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isabeauty/agenda-api/internal/email"
	"github.com/isabeauty/agenda-api/internal/model"
	"github.com/isabeauty/agenda-api/internal/repository"
	apperrors "github.com/isabeauty/agenda-api/pkg/errors"
	"github.com/isabeauty/agenda-api/pkg/metrics"
)

// Service owns the booking flows over the record store. Every mutation is
// followed by a full rewrite of the persisted file; when that write fails
// the in-memory mutation is kept and the error surfaced, so the session can
// diverge from disk until the next successful save.
type Service struct {
	repo     repository.AppointmentRepository
	notifier email.Service
	metrics  *metrics.Metrics
	nextID   atomic.Int64
}

func NewService(repo repository.AppointmentRepository, notifier email.Service, m *metrics.Metrics) *Service {
	s := &Service{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
	}
	// IDs are monotonic and never reused, seeded from the highest
	// persisted ID rather than the collection length.
	s.nextID.Store(repo.MaxID())
	return s
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	zone, fee, err := resolveZone(req.TravelZone)
	if err != nil {
		return nil, err
	}
	if _, ok := model.DefaultPrice(req.Service); !ok {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown service %q", req.Service), nil)
	}
	if !IsSlotFree(s.repo.List(), req.Date, req.Time) {
		return nil, apperrors.Conflict(fmt.Sprintf("slot %s on %s is already booked", req.Time, req.Date), nil)
	}

	apt := &model.Appointment{
		ID:           s.nextID.Add(1),
		ClientName:   req.ClientName,
		Phone:        req.Phone,
		Service:      req.Service,
		Date:         req.Date,
		Time:         req.Time,
		ServicePrice: req.ServicePrice,
		TravelFee:    fee,
		TravelZone:   zone,
		TotalPrice:   req.ServicePrice + fee,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}

	s.repo.Append(apt)
	if err := s.persist("create"); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.notifyOperator(ctx, apt)
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	_, apt, err := s.findByID(id)
	return apt, err
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	index, existing, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	zone, fee, err := resolveZone(req.TravelZone)
	if err != nil {
		return nil, err
	}
	if _, ok := model.DefaultPrice(req.Service); !ok {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown service %q", req.Service), nil)
	}
	// The booking's own slot stays valid while editing.
	sameSlot := existing.Date == req.Date && existing.Time == req.Time
	if !sameSlot && !IsSlotFree(s.repo.List(), req.Date, req.Time) {
		return nil, apperrors.Conflict(fmt.Sprintf("slot %s on %s is already booked", req.Time, req.Date), nil)
	}

	now := time.Now()
	replacement := &model.Appointment{
		ID:           existing.ID,
		ClientName:   req.ClientName,
		Phone:        req.Phone,
		Service:      req.Service,
		Date:         req.Date,
		Time:         req.Time,
		ServicePrice: req.ServicePrice,
		TravelFee:    fee,
		TravelZone:   zone,
		TotalPrice:   req.ServicePrice + fee,
		Notes:        req.Notes,
		CreatedAt:    existing.CreatedAt,
		EditedAt:     &now,
	}

	if err := s.repo.ReplaceAt(index, replacement); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.persist("update"); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsUpdated.Inc()
	}
	return replacement, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	index, _, err := s.findByID(id)
	if err != nil {
		return err
	}
	if _, err := s.repo.RemoveAt(index); err != nil {
		return apperrors.Internal(err)
	}
	if err := s.persist("delete"); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.BookingsDeleted.Inc()
	}
	return nil
}

// ListAppointments returns every booking, most recent date and time first,
// the order the original listing used.
func (s *Service) ListAppointments(ctx context.Context) []*model.Appointment {
	records := s.repo.List()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date+" "+records[i].Time > records[j].Date+" "+records[j].Time
	})
	return records
}

// SearchAppointments applies the given filters: client name is a
// case-insensitive substring match, phone a substring match, date exact.
func (s *Service) SearchAppointments(ctx context.Context, filters *model.SearchFilters) []*model.Appointment {
	results := make([]*model.Appointment, 0)
	client := strings.ToLower(filters.Client)
	for _, r := range s.repo.List() {
		if client != "" && !strings.Contains(strings.ToLower(r.ClientName), client) {
			continue
		}
		if filters.Phone != "" && !strings.Contains(r.Phone, filters.Phone) {
			continue
		}
		if filters.Date != "" && r.Date != filters.Date {
			continue
		}
		results = append(results, r)
	}
	return results
}

// Availability lists the free slots on a date. keepSlot is included even
// when booked, so edit flows can re-offer the current slot.
func (s *Service) Availability(ctx context.Context, date, keepSlot string) []string {
	return AvailableSlots(s.repo.List(), date, model.Slots(), keepSlot)
}

func (s *Service) findByID(id int64) (int, *model.Appointment, error) {
	for i, r := range s.repo.List() {
		if r.ID == id {
			return i, r, nil
		}
	}
	return 0, nil, apperrors.NotFound("appointment", nil)
}

// persist rewrites the file after a mutation. The in-memory state is
// deliberately not rolled back on failure.
func (s *Service) persist(op string) error {
	if s.metrics != nil {
		s.metrics.StoreSize.Set(float64(s.repo.Len()))
	}
	if err := s.repo.Save(); err != nil {
		if s.metrics != nil {
			s.metrics.SaveFailures.Inc()
		}
		return apperrors.Internal(fmt.Errorf("failed to save appointments after %s: %w", op, err))
	}
	return nil
}

func (s *Service) notifyOperator(ctx context.Context, apt *model.Appointment) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendBookingAlert(ctx, apt); err != nil {
		log.Warn().Err(err).Int64("appointment_id", apt.ID).Msg("booking alert not sent")
	}
}

func resolveZone(zone string) (string, float64, error) {
	if zone == "" {
		zone = model.NoTravelZone
	}
	fee, ok := model.TravelFeeFor(zone)
	if !ok {
		return "", 0, apperrors.BadRequest(fmt.Sprintf("unknown travel zone %q", zone), nil)
	}
	return zone, fee, nil
}
