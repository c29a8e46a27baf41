package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isabeauty/agenda-api/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "agendamentos.json"), zerolog.Nop())
}

func sample(id int64) *model.Appointment {
	return &model.Appointment{
		ID:           id,
		ClientName:   "Maria Silva",
		Phone:        "11 98765-4321",
		Service:      "Design com Henna",
		Date:         "2025-04-10",
		Time:         "14:00",
		ServicePrice: 40.00,
		TravelFee:    5.00,
		TravelZone:   "ZN - Zona Norte",
		TotalPrice:   45.00,
		Notes:        "prefere tarde",
		CreatedAt:    time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, store.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agendamentos.json")
	store := NewStore(path, zerolog.Nop())

	apt := sample(1)
	store.Append(apt)
	require.NoError(t, store.Save())

	reloaded := NewStore(path, zerolog.Nop())
	records, err := reloaded.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, apt.ID, got.ID)
	assert.Equal(t, apt.ClientName, got.ClientName)
	assert.Equal(t, apt.Phone, got.Phone)
	assert.Equal(t, apt.Service, got.Service)
	assert.Equal(t, apt.Date, got.Date)
	assert.Equal(t, apt.Time, got.Time)
	assert.Equal(t, apt.ServicePrice, got.ServicePrice)
	assert.Equal(t, apt.TravelFee, got.TravelFee)
	assert.Equal(t, apt.TravelZone, got.TravelZone)
	assert.Equal(t, apt.TotalPrice, got.TotalPrice)
	assert.Equal(t, apt.Notes, got.Notes)
	assert.True(t, apt.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.EditedAt)
}

func TestSaveWritesIndentedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agendamentos.json")
	store := NewStore(path, zerolog.Nop())
	store.Append(sample(1))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0])
	assert.Contains(t, string(data), "\n    {")
}

func TestSaveEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agendamentos.json")
	store := NewStore(path, zerolog.Nop())
	require.NoError(t, store.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agendamentos.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path, zerolog.Nop())
	records, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, records)
	assert.Zero(t, store.Len())
}

func TestSaveFailureKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// A path under a regular file cannot be written.
	store := NewStore(filepath.Join(blocker, "agendamentos.json"), zerolog.Nop())
	store.Append(sample(1))

	assert.Error(t, store.Save())
	assert.Equal(t, 1, store.Len())
}

func TestReplaceAtAndRemoveAtBounds(t *testing.T) {
	store := newTestStore(t)
	store.Append(sample(1))

	assert.Error(t, store.ReplaceAt(-1, sample(2)))
	assert.Error(t, store.ReplaceAt(1, sample(2)))
	_, err := store.RemoveAt(5)
	assert.Error(t, err)

	require.NoError(t, store.ReplaceAt(0, sample(2)))
	removed, err := store.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed.ID)
	assert.Zero(t, store.Len())
}

func TestMaxID(t *testing.T) {
	store := newTestStore(t)
	assert.Zero(t, store.MaxID())

	store.Append(sample(7))
	store.Append(sample(3))
	assert.Equal(t, int64(7), store.MaxID())
}

func TestListReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	store.Append(sample(1))
	store.Append(sample(2))

	records := store.List()
	records[0] = nil

	fresh := store.List()
	require.Len(t, fresh, 2)
	assert.NotNil(t, fresh[0])
}
