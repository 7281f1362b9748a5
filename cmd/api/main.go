package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ari1008/vegnbio-reservation/internal/api"
	"github.com/ari1008/vegnbio-reservation/internal/api/handler"
	apimiddleware "github.com/ari1008/vegnbio-reservation/internal/api/middleware"
	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/config"
	"github.com/ari1008/vegnbio-reservation/internal/infrastructure/auth"
	"github.com/ari1008/vegnbio-reservation/internal/infrastructure/postgres"
	"github.com/ari1008/vegnbio-reservation/internal/infrastructure/rabbitmq"
	redisinfra "github.com/ari1008/vegnbio-reservation/internal/infrastructure/redis"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/logger"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/metrics"
	"github.com/ari1008/vegnbio-reservation/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger(os.Getenv("APP_ENV"))
	logger.Set(log)
	defer logger.Sync()

	m := metrics.Init()

	// PostgreSQL
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// Redis（分散ロック・メニューキャッシュ）
	redisClient := redisinfra.NewClient(&cfg.Redis)
	defer redisClient.Close()
	lockManager := redisinfra.NewLockManager(redisClient)
	menuCache := redisinfra.NewMenuCache(redisClient)

	// RabbitMQ（URL未設定なら通知は無効）
	var notifier *rabbitmq.Notifier
	if cfg.AMQP.URL != "" {
		notifier, err = rabbitmq.NewNotifier(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			logger.Fatal("RabbitMQ接続に失敗", zap.Error(err))
		}
		defer notifier.Close()
	} else {
		logger.Warn("AMQP_URL未設定のため予約通知は無効")
	}

	// リポジトリ
	txManager := postgres.NewTxManager(db)
	reservationRepo := postgres.NewReservationRepository(db)
	restaurantRepo := postgres.NewRestaurantRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	eventRepo := postgres.NewEventRequestRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// 認証
	resolver := auth.NewJWTResolver(cfg.Auth.JWTSecret)

	// アプリケーションサービス
	reservationService := application.NewReservationService(
		txManager, reservationRepo, restaurantRepo, customerRepo, resolver, lockManager, notifier, m)
	eventService := application.NewEventRequestService(
		txManager, eventRepo, restaurantRepo, customerRepo, resolver, lockManager, notifier, m)
	restaurantService := application.NewRestaurantService(restaurantRepo, resolver)
	customerService := application.NewCustomerService(customerRepo)
	menuService := application.NewMenuService(menuRepo, resolver, menuCache)
	reviewService := application.NewReviewService(reviewRepo, customerRepo, restaurantRepo, resolver)

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	customerHandler := handler.NewCustomerHandler(customerService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	eventHandler := handler.NewEventRequestHandler(eventService)
	menuHandler := handler.NewMenuHandler(menuService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), apimiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/restaurants", restaurantHandler.Create)
	v1.GET("/restaurants", restaurantHandler.List)
	v1.GET("/restaurants/:id", restaurantHandler.GetByID)
	v1.PUT("/restaurants/:id", restaurantHandler.Update)
	v1.GET("/restaurants/:id/reservations", reservationHandler.ListByRestaurant)
	v1.GET("/restaurants/:id/event-requests", eventHandler.ListByRestaurant)
	v1.GET("/restaurants/:id/menu", menuHandler.ListByRestaurant)
	v1.GET("/restaurants/:id/reviews", reviewHandler.ListByRestaurant)

	v1.POST("/customers", customerHandler.Create)
	v1.GET("/customers", customerHandler.List)
	v1.GET("/customers/:id", customerHandler.GetByID)
	v1.GET("/customers/:id/reservations", reservationHandler.ListByCustomer)

	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.List)
	v1.GET("/reservations/:id", reservationHandler.GetByID)
	v1.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)
	v1.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	v1.POST("/event-requests", eventHandler.Create)
	v1.GET("/event-requests", eventHandler.List)
	v1.GET("/event-requests/:id", eventHandler.GetByID)
	v1.PATCH("/event-requests/:id/status", eventHandler.UpdateStatus)
	v1.POST("/event-requests/:id/cancel", eventHandler.Cancel)

	v1.POST("/dishes", menuHandler.Create)
	v1.GET("/dishes/:id", menuHandler.GetByID)
	v1.PUT("/dishes/:id", menuHandler.Update)
	v1.DELETE("/dishes/:id", menuHandler.Delete)

	v1.POST("/reviews", reviewHandler.Submit)
	v1.GET("/reviews/pending", reviewHandler.ListPending)
	v1.GET("/reviews/:id", reviewHandler.GetByID)
	v1.PATCH("/reviews/:id/moderate", reviewHandler.Moderate)

	// バックグラウンドワーカー
	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	sweeper := worker.NewCompletedSweeper(reservationService, cfg.Worker.SweepInterval)
	go sweeper.Start(sweeperCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cancelSweeper()
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
