package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vipreviews/internal/app/reviews/util"
	"vipreviews/pkg/logger"
	"vipreviews/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	authHandler *AuthHandler,
	ratingHandler *RatingHandler,
	reviewRequestHandler *ReviewRequestHandler,
	manifestHandler *ManifestHandler,
	settingsHandler *SettingsHandler,
	clientHandler *ClientHandler,
	driverHandler *DriverHandler,
	redirectHandler *RedirectHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("vipreviews"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "vipreviews",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Переход по трекинговой ссылке из SMS или email
	router.GET("/go/:redirectId", redirectHandler.Follow)

	api := router.Group("/api")
	{
		// Публичные эндпоинты (без аутентификации)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/rating/page/:token", ratingHandler.GetPage)
		api.POST("/rating/submit", ratingHandler.Submit)
		api.POST("/review-requests/track-public-click", ratingHandler.TrackPublicClick)
		api.POST("/review-requests/private-feedback", ratingHandler.SubmitPrivateFeedback)
		api.GET("/settings/platforms", settingsHandler.Platforms)

		// Эндпоинты клиента
		client := api.Group("/client")
		client.Use(authMiddleware.Authenticate(util.RoleClient))
		{
			client.POST("/rating", ratingHandler.SubmitClientRating)
			client.GET("/rating", ratingHandler.GetClientRating)
		}

		// Админские эндпоинты
		admin := api.Group("")
		admin.Use(authMiddleware.Authenticate(util.RoleAdmin))
		{
			admin.POST("/manifests/upload", manifestHandler.Upload)
			admin.GET("/manifests", manifestHandler.List)
			admin.GET("/manifests/:id", manifestHandler.Get)
			admin.DELETE("/manifests/:id", manifestHandler.Delete)

			admin.POST("/review-requests/send", reviewRequestHandler.Send)
			admin.GET("/review-requests", reviewRequestHandler.List)
			admin.GET("/feedback", reviewRequestHandler.ListFeedback)
			admin.GET("/feedback/:id", reviewRequestHandler.GetFeedback)
			admin.GET("/redirects", reviewRequestHandler.ListRedirects)
			admin.GET("/dashboard/stats", reviewRequestHandler.DashboardStats)

			admin.GET("/settings", settingsHandler.Get)
			admin.PUT("/settings", settingsHandler.Update)

			admin.GET("/clients", clientHandler.List)
			admin.POST("/clients", clientHandler.Create)
			admin.PUT("/clients/:id", clientHandler.Update)
			admin.DELETE("/clients/:id", clientHandler.Delete)

			admin.GET("/drivers", driverHandler.List)
			admin.POST("/drivers", driverHandler.Create)
			admin.GET("/drivers/:id", driverHandler.Get)
			admin.PUT("/drivers/:id", driverHandler.Update)
			admin.DELETE("/drivers/:id", driverHandler.Delete)
		}
	}

	return router
}
