package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/isabeauty/agenda-api/internal/model"
)

// ErrCorrupt marks a persisted file that exists but cannot be parsed. The
// session still starts from an empty collection; callers may log the
// condition but historically it is never surfaced to the user.
var ErrCorrupt = errors.New("appointment file is corrupt")

// Store keeps the full appointment collection in memory and mirrors it to a
// single pretty-printed JSON array file. There is no partial-write
// protection: Save overwrites the file in place, matching the deployment
// assumption of one operator and one session.
type Store struct {
	mu      sync.RWMutex
	path    string
	records []*model.Appointment
	logger  zerolog.Logger
}

func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the persisted collection. A missing file yields an empty
// collection and no error; an unreadable or unparsable file yields an empty
// collection and ErrCorrupt.
func (s *Store) Load() ([]*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.records = nil
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var records []*model.Appointment
	if err := json.Unmarshal(data, &records); err != nil {
		s.records = nil
		s.logger.Warn().Err(err).Str("path", s.path).Msg("discarding unparsable appointment file")
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	s.records = records
	return s.snapshot(), nil
}

// Save serializes the whole collection over the persisted file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records
	if records == nil {
		records = []*model.Appointment{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode appointments: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to write appointment file")
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) List() []*model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) At(index int) (*model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.records) {
		return nil, false
	}
	return s.records[index], true
}

func (s *Store) Append(apt *model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, apt)
}

func (s *Store) ReplaceAt(index int, apt *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("index %d out of range", index)
	}
	s.records[index] = apt
	return nil
}

func (s *Store) RemoveAt(index int) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return nil, fmt.Errorf("index %d out of range", index)
	}
	removed := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)
	return removed, nil
}

func (s *Store) MaxID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var max int64
	for _, r := range s.records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}

// snapshot returns a copy of the backing slice so callers can iterate
// without holding the lock. Records themselves are shared.
func (s *Store) snapshot() []*model.Appointment {
	out := make([]*model.Appointment, len(s.records))
	copy(out, s.records)
	return out
}
