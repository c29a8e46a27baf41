package appointment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isabeauty/agenda-api/internal/model"
	"github.com/isabeauty/agenda-api/internal/repository/jsonfile"
	apperrors "github.com/isabeauty/agenda-api/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "agendamentos.json"), zerolog.Nop())
	return NewService(store, nil, nil)
}

func createRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ClientName:   "Ana Souza",
		Phone:        "11 91234-5678",
		Service:      "Combo",
		Date:         "2025-05-20",
		Time:         "10:00",
		ServicePrice: 110.00,
		TravelZone:   "ZL - Zona Leste",
	}
}

func TestCreateAppointment(t *testing.T) {
	svc := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), apt.ID)
	assert.Equal(t, "Ana Souza", apt.ClientName)
	assert.Equal(t, 10.00, apt.TravelFee)
	assert.Equal(t, 120.00, apt.TotalPrice)
	assert.False(t, apt.CreatedAt.IsZero())
	assert.Nil(t, apt.EditedAt)
}

func TestCreateAppointmentDefaultsZone(t *testing.T) {
	svc := newTestService(t)

	req := createRequest()
	req.TravelZone = ""
	apt, err := svc.CreateAppointment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.NoTravelZone, apt.TravelZone)
	assert.Zero(t, apt.TravelFee)
	assert.Equal(t, req.ServicePrice, apt.TotalPrice)
}

func TestCreateAppointmentUnknownService(t *testing.T) {
	svc := newTestService(t)

	req := createRequest()
	req.Service = "Massagem"
	_, err := svc.CreateAppointment(context.Background(), req)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateAppointmentUnknownZone(t *testing.T) {
	svc := newTestService(t)

	req := createRequest()
	req.TravelZone = "ZO - Zona Oeste"
	_, err := svc.CreateAppointment(context.Background(), req)
	require.Error(t, err)
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.ClientName = "Outra Cliente"
	_, err = svc.CreateAppointment(context.Background(), second)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode())
}

func TestIDsAreNeverReused(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.Time = "11:00"
	apt2, err := svc.CreateAppointment(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, apt2.ID)

	require.NoError(t, svc.DeleteAppointment(ctx, apt2.ID))

	third := createRequest()
	third.Time = "12:00"
	apt3, err := svc.CreateAppointment(ctx, third)
	require.NoError(t, err)
	assert.Equal(t, int64(3), apt3.ID)
}

func TestNextIDSeededFromPersistedMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agendamentos.json")
	store := jsonfile.NewStore(path, zerolog.Nop())
	store.Append(&model.Appointment{ID: 42, Date: "2025-05-20", Time: "09:00"})

	svc := NewService(store, nil, nil)
	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(43), apt.ID)
}

func TestGetAppointmentNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetAppointment(context.Background(), 99)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestUpdateAppointment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apt, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateAppointment(ctx, apt.ID, &model.UpdateAppointmentRequest{
		ClientName:   "Ana Souza",
		Phone:        "11 91234-5678",
		Service:      "Maquiagem",
		Date:         "2025-05-21",
		Time:         "15:00",
		ServicePrice: 100.00,
		TravelZone:   "ZS - Zona Sul",
	})
	require.NoError(t, err)

	assert.Equal(t, apt.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(apt.CreatedAt))
	require.NotNil(t, updated.EditedAt)
	assert.Equal(t, "Maquiagem", updated.Service)
	assert.Equal(t, 115.00, updated.TotalPrice)
}

func TestUpdateKeepsOwnSlot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apt, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	// Editing without moving the slot must not conflict with itself.
	updated, err := svc.UpdateAppointment(ctx, apt.ID, &model.UpdateAppointmentRequest{
		ClientName:   apt.ClientName,
		Phone:        apt.Phone,
		Service:      apt.Service,
		Date:         apt.Date,
		Time:         apt.Time,
		ServicePrice: 120.00,
		TravelZone:   apt.TravelZone,
	})
	require.NoError(t, err)
	assert.Equal(t, 130.00, updated.TotalPrice)
}

func TestUpdateToBookedSlotConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.Time = "11:00"
	apt2, err := svc.CreateAppointment(ctx, second)
	require.NoError(t, err)

	_, err = svc.UpdateAppointment(ctx, apt2.ID, &model.UpdateAppointmentRequest{
		ClientName:   apt2.ClientName,
		Phone:        apt2.Phone,
		Service:      apt2.Service,
		Date:         first.Date,
		Time:         first.Time,
		ServicePrice: apt2.ServicePrice,
		TravelZone:   apt2.TravelZone,
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode())
}

func TestDeleteAppointment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apt, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAppointment(ctx, apt.ID))
	_, err = svc.GetAppointment(ctx, apt.ID)
	assert.Error(t, err)

	err = svc.DeleteAppointment(ctx, apt.ID)
	require.Error(t, err)
}

func TestListAppointmentsOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	early := createRequest()
	early.Date = "2025-05-19"
	_, err := svc.CreateAppointment(ctx, early)
	require.NoError(t, err)

	late := createRequest()
	late.Time = "16:00"
	_, err = svc.CreateAppointment(ctx, late)
	require.NoError(t, err)

	records := svc.ListAppointments(ctx)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-05-20", records[0].Date)
	assert.Equal(t, "2025-05-19", records[1].Date)
}

func TestSearchAppointments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	other := createRequest()
	other.ClientName = "Beatriz Lima"
	other.Phone = "11 95555-0000"
	other.Time = "11:00"
	_, err = svc.CreateAppointment(ctx, other)
	require.NoError(t, err)

	// Case-insensitive substring on the client name.
	results := svc.SearchAppointments(ctx, &model.SearchFilters{Client: "ana"})
	require.Len(t, results, 1)
	assert.Equal(t, "Ana Souza", results[0].ClientName)

	results = svc.SearchAppointments(ctx, &model.SearchFilters{Phone: "95555"})
	require.Len(t, results, 1)
	assert.Equal(t, "Beatriz Lima", results[0].ClientName)

	results = svc.SearchAppointments(ctx, &model.SearchFilters{Date: "2025-05-20"})
	assert.Len(t, results, 2)

	// Filters are conjunctive.
	results = svc.SearchAppointments(ctx, &model.SearchFilters{Client: "ana", Phone: "95555"})
	assert.Empty(t, results)

	results = svc.SearchAppointments(ctx, &model.SearchFilters{Client: "carla"})
	assert.Empty(t, results)
}

func TestAvailabilityThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, createRequest())
	require.NoError(t, err)

	slots := svc.Availability(ctx, "2025-05-20", "")
	assert.Len(t, slots, 8)
	assert.NotContains(t, slots, "10:00")

	slots = svc.Availability(ctx, "2025-05-20", "10:00")
	assert.Len(t, slots, 9)
}

func TestSaveFailureKeepsInMemoryMutation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := jsonfile.NewStore(filepath.Join(blocker, "agendamentos.json"), zerolog.Nop())
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, createRequest())
	require.Error(t, err)

	// The session keeps the booking even though the write failed.
	assert.Len(t, svc.ListAppointments(ctx), 1)
}
