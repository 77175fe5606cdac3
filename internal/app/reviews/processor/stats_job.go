package processor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"vipreviews/internal/app/reviews/service"
	"vipreviews/pkg/logger"
)

const jobTimeout = 30 * time.Second

// StatsScheduler периодически пересобирает снапшот статистики дашборда
type StatsScheduler struct {
	cron     *cron.Cron
	stats    *service.StatsService
	schedule string
}

func NewStatsScheduler(stats *service.StatsService, schedule string) *StatsScheduler {
	return &StatsScheduler{
		cron:     cron.New(),
		stats:    stats,
		schedule: schedule,
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *StatsScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.run)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", s.schedule).Msg("Stats scheduler started")

	// Первый снапшот сразу, не дожидаясь расписания
	go s.run()
	return nil
}

// Stop останавливает планировщик и дожидается завершения задач
func (s *StatsScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Stats scheduler stopped")
}

func (s *StatsScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.stats.Snapshot(ctx); err != nil {
		logger.Error().Err(err).Msg("Dashboard stats snapshot failed")
	}
}
