package service

import (
	"context"

	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

// StatsService reports the aggregate row counts exposed on the stats
// endpoint.
type StatsService struct {
	stats repository.StatsRepository
}

func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

func (s *StatsService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.stats.Stats(ctx)
}
