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
	settingKeyRatingPage = "ratingPage"
	settingKeyPlatforms  = "platforms"

	settingsCachePrefix = "settings:"
	settingsCacheTTL    = 5 * time.Minute

	serviceName = "vipreviews"
)

// defaultRatingPageSettings - значения по умолчанию до первого сохранения
func defaultRatingPageSettings() entity.RatingPageSettings {
	return entity.RatingPageSettings{
		Title:           "How was your experience?",
		Subtitle:        "Your feedback helps us improve.",
		ThankYouMessage: "Thank you for your feedback!",
		Threshold:       4,
	}
}

// SettingsService управляет настройками страницы оценки и ссылками платформ.
// Чтение идёт через Redis кеш, запись инвалидирует кеш.
type SettingsService struct {
	repo  repository.SettingsRepository
	redis *redis.Client
}

func NewSettingsService(repo repository.SettingsRepository, redisClient *redis.Client) *SettingsService {
	return &SettingsService{
		repo:  repo,
		redis: redisClient,
	}
}

// GetRatingPage возвращает настройки страницы оценки
func (s *SettingsService) GetRatingPage(ctx context.Context) (entity.RatingPageSettings, error) {
	settings := defaultRatingPageSettings()
	if err := s.getValue(ctx, settingKeyRatingPage, &settings); err != nil {
		return entity.RatingPageSettings{}, err
	}
	if settings.Threshold < 1 || settings.Threshold > 5 {
		settings.Threshold = defaultRatingPageSettings().Threshold
	}
	return settings, nil
}

// GetPlatformURLs возвращает ссылки на внешние платформы отзывов
func (s *SettingsService) GetPlatformURLs(ctx context.Context) (entity.PlatformURLs, error) {
	var urls entity.PlatformURLs
	if err := s.getValue(ctx, settingKeyPlatforms, &urls); err != nil {
		return entity.PlatformURLs{}, err
	}
	return urls, nil
}

// Get возвращает полный набор настроек
func (s *SettingsService) Get(ctx context.Context) (*entity.SettingsResponse, error) {
	ratingPage, err := s.GetRatingPage(ctx)
	if err != nil {
		return nil, err
	}
	urls, err := s.GetPlatformURLs(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.SettingsResponse{
		RatingPage:   ratingPage,
		PlatformURLs: urls,
	}, nil
}

// Update сохраняет переданные секции настроек
func (s *SettingsService) Update(ctx context.Context, req *entity.UpdateSettingsRequest) (*entity.SettingsResponse, error) {
	if req.RatingPage != nil {
		if req.RatingPage.Threshold < 1 || req.RatingPage.Threshold > 5 {
			req.RatingPage.Threshold = defaultRatingPageSettings().Threshold
		}
		if err := s.setValue(ctx, settingKeyRatingPage, req.RatingPage); err != nil {
			return nil, err
		}
	}
	if req.PlatformURLs != nil {
		if err := s.setValue(ctx, settingKeyPlatforms, req.PlatformURLs); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx)
}

// getValue читает настройку: сначала кеш, затем БД.
// Отсутствие записи в БД не ошибка, возвращаются значения по умолчанию.
func (s *SettingsService) getValue(ctx context.Context, key string, dest interface{}) error {
	cacheKey := settingsCachePrefix + key

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			metrics.RecordCacheHit(serviceName, settingsCachePrefix)
			if err := json.Unmarshal([]byte(cached), dest); err == nil {
				return nil
			}
			logger.Warn().Str("key", key).Msg("Failed to decode cached settings, falling back to database")
		} else if !errors.Is(err, redis.Nil) {
			metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
			logger.Warn().Err(err).Str("key", key).Msg("Redis read failed, falling back to database")
		} else {
			metrics.RecordCacheMiss(serviceName, settingsCachePrefix)
		}
	}

	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load settings %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to decode settings %s: %w", key, err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, raw, settingsCacheTTL).Err(); err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
			logger.Warn().Err(err).Str("key", key).Msg("Failed to cache settings")
		}
	}
	return nil
}

// setValue сохраняет настройку и инвалидирует кеш
func (s *SettingsService) setValue(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode settings %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to save settings %s: %w", key, err)
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, settingsCachePrefix+key).Err(); err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
			logger.Warn().Err(err).Str("key", key).Msg("Failed to invalidate settings cache")
		}
	}
	logger.Info().Str("key", key).Msg("Settings updated")
	return nil
}
