package stats

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/pkg/cache"
)

// statsCacheTTL bounds staleness even if an invalidation is missed.
const statsCacheTTL = 30 * time.Second

type Service interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	repo  Repository
	cache cache.Cache
}

func NewService(repo Repository, c cache.Cache) Service {
	return &statsService{
		repo:  repo,
		cache: c,
	}
}

// GetDashboardStats serves the counters from Redis when fresh; cache
// failures fall through to the database.
func (s *statsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		found, err := s.cache.Get(ctx, cache.KeyDashboardStats, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard stats cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	result, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.KeyDashboardStats, result, statsCacheTTL); err != nil {
			log.Warn().Err(err).Msg("dashboard stats cache write failed")
		}
	}

	return result, nil
}
