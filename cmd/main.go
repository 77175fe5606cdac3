package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vipreviews/internal/app/reviews/config"
	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/handler"
	"vipreviews/internal/app/reviews/infrastructure/messaging"
	"vipreviews/internal/app/reviews/infrastructure/provider"
	"vipreviews/internal/app/reviews/processor"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/internal/app/reviews/service"
	"vipreviews/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("vipreviews", logLevel)

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Msg("Redis is unavailable, caching disabled")
		redisClient = nil
	} else {
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	}

	kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	smsSender := provider.NewTwilioSender(
		cfg.Twilio.AccountSID,
		cfg.Twilio.AuthToken,
		cfg.Twilio.PhoneNumber,
		!cfg.Twilio.Configured(),
	)
	emailSender := provider.NewSendGridSender(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		!cfg.SendGrid.Configured(),
	)
	logger.Info().
		Str("sms_mode", smsSender.Mode()).
		Str("email_mode", emailSender.Mode()).
		Msg("Initialized delivery providers")

	reviewRequestRepo := repository.NewReviewRequestRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	feedbackRepo := repository.NewPrivateFeedbackRepository(db)
	clickRepo := repository.NewPublicClickRepository(db)
	redirectRepo := repository.NewRedirectEventRepository(db)
	manifestRepo := repository.NewManifestRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	settingsService := service.NewSettingsService(settingsRepo, redisClient)
	dispatcher := service.NewDispatcher(smsSender, emailSender)
	sendService := service.NewSendService(
		reviewRequestRepo,
		manifestRepo,
		dispatcher,
		kafkaProducer,
		cfg.App.PublicURL,
		cfg.App.APIURL,
	)
	ratingService := service.NewRatingService(
		reviewRequestRepo,
		ratingRepo,
		feedbackRepo,
		clickRepo,
		settingsService,
		kafkaProducer,
	)
	redirectService := service.NewRedirectService(reviewRequestRepo, redirectRepo, cfg.App.PublicURL)
	authService := service.NewAuthService(accountRepo, cfg.JWT.Secret)
	manifestService := service.NewManifestService(manifestRepo, reviewRequestRepo)
	driverService := service.NewDriverService(driverRepo)
	statsService := service.NewStatsService(statsRepo, clickRepo, redirectRepo, redisClient)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := authService.SeedAccounts(
		seedCtx,
		cfg.Seed.AdminEmail,
		cfg.Seed.AdminPassword,
		cfg.Seed.ClientEmail,
		cfg.Seed.ClientPassword,
	); err != nil {
		logger.Error().Err(err).Msg("Failed to seed accounts")
	}
	seedCancel()

	statsScheduler := processor.NewStatsScheduler(statsService, cfg.Jobs.StatsCron)
	if err := statsScheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start stats scheduler")
	}
	defer statsScheduler.Stop()

	authMiddleware := handler.NewAuthMiddleware(authService)
	router := handler.SetupRoutes(
		handler.NewAuthHandler(authService),
		handler.NewRatingHandler(ratingService),
		handler.NewReviewRequestHandler(sendService, ratingService, redirectService, statsService),
		handler.NewManifestHandler(manifestService),
		handler.NewSettingsHandler(settingsService),
		handler.NewClientHandler(authService),
		handler.NewDriverHandler(driverService),
		handler.NewRedirectHandler(redirectService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting VIP Reviews Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down VIP Reviews Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("VIP Reviews Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Manifest{},
		&entity.Contact{},
		&entity.ReviewRequest{},
		&entity.Rating{},
		&entity.PrivateFeedback{},
		&entity.PublicReviewClick{},
		&entity.RedirectEvent{},
		&entity.Admin{},
		&entity.Client{},
		&entity.Driver{},
		&entity.Setting{},
	)
}
