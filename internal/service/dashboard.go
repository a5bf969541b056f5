package service

import (
	"context"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type dashboardService struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
}

func NewDashboardService(statsRepo repository.StatsRepository) DashboardService {
	return &dashboardService{
		statsRepo: statsRepo,
		now:       time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	now := s.now()
	today := now.Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	return s.statsRepo.GetDashboardStats(ctx, today, monthStart)
}
