package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/pkg/logger"
	"vipreviews/pkg/metrics"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 10 * time.Minute
)

// StatsService собирает агрегаты дашборда. Снапшот хранится в Redis и
// периодически обновляется фоновой задачей, чтение идёт из снапшота.
type StatsService struct {
	stats     repository.StatsRepository
	clicks    repository.PublicClickRepository
	redirects repository.RedirectEventRepository
	redis     *redis.Client
}

func NewStatsService(
	stats repository.StatsRepository,
	clicks repository.PublicClickRepository,
	redirects repository.RedirectEventRepository,
	redisClient *redis.Client,
) *StatsService {
	return &StatsService{
		stats:     stats,
		clicks:    clicks,
		redirects: redirects,
		redis:     redisClient,
	}
}

// Get возвращает статистику дашборда: сначала снапшот из Redis,
// при его отсутствии свежий сбор из БД.
func (s *StatsService) Get(ctx context.Context) (*entity.DashboardStats, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, statsCacheKey).Result()
		if err == nil {
			metrics.RecordCacheHit(serviceName, statsCacheKey)
			var stats entity.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
			logger.Warn().Msg("Failed to decode cached dashboard stats, collecting fresh")
		} else if !errors.Is(err, redis.Nil) {
			metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		} else {
			metrics.RecordCacheMiss(serviceName, statsCacheKey)
		}
	}

	stats, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, stats)
	return stats, nil
}

// Collect собирает агрегаты напрямую из БД
func (s *StatsService) Collect(ctx context.Context) (*entity.DashboardStats, error) {
	byStatus, err := s.stats.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by status: %w", err)
	}

	byChannel, err := s.stats.CountRequestsByChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests by channel: %w", err)
	}

	ratingsTotal, ratingsAvg, err := s.stats.RatingStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect rating stats: %w", err)
	}

	feedbackTotal, err := s.stats.CountPrivateFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count private feedback: %w", err)
	}

	clicksByPlatform, err := s.clicks.CountByPlatform(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count public clicks: %w", err)
	}

	redirectHits, err := s.redirects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count redirect hits: %w", err)
	}

	var requestsTotal int64
	for _, count := range byStatus {
		requestsTotal += count
	}

	return &entity.DashboardStats{
		RequestsTotal:     requestsTotal,
		RequestsByStatus:  byStatus,
		RequestsByChannel: byChannel,
		RatingsTotal:      ratingsTotal,
		RatingsAverage:    ratingsAvg,
		ClicksByPlatform:  clicksByPlatform,
		PrivateFeedback:   feedbackTotal,
		RedirectHits:      redirectHits,
		GeneratedAt:       time.Now(),
	}, nil
}

// Snapshot пересобирает статистику и обновляет снапшот в Redis
func (s *StatsService) Snapshot(ctx context.Context) error {
	stats, err := s.Collect(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, stats)
	logger.Info().
		Int64("requests_total", stats.RequestsTotal).
		Int64("ratings_total", stats.RatingsTotal).
		Msg("Dashboard stats snapshot updated")
	return nil
}

func (s *StatsService) store(ctx context.Context, stats *entity.DashboardStats) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode dashboard stats")
		return
	}
	if err := s.redis.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		logger.Warn().Err(err).Msg("Failed to cache dashboard stats")
	}
}
