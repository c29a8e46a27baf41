package report

import (
	"context"
	"time"

	"github.com/isabeauty/agenda-api/internal/repository"
)

// Service binds the pure aggregation functions to the record store. Every
// call re-scans the current collection.
type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Daily(ctx context.Context, date string) DaySummary {
	return DailySummary(s.repo.List(), date)
}

func (s *Service) Monthly(ctx context.Context, year, month int) MonthSummary {
	return MonthlySummary(s.repo.List(), year, month)
}

func (s *Service) Statistics(ctx context.Context, year, month int) MonthStatistics {
	return MonthlyStatistics(s.repo.List(), year, month)
}

func (s *Service) CurrentOverview(ctx context.Context) OverviewStats {
	return Overview(s.repo.List(), time.Now())
}
