package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawlink/lawlink-api/internal/config"
	"github.com/lawlink/lawlink-api/internal/email"
	appointmentHandler "github.com/lawlink/lawlink-api/internal/handler/appointment"
	authHandler "github.com/lawlink/lawlink-api/internal/handler/auth"
	lawyerHandler "github.com/lawlink/lawlink-api/internal/handler/lawyer"
	notificationHandler "github.com/lawlink/lawlink-api/internal/handler/notification"
	reviewHandler "github.com/lawlink/lawlink-api/internal/handler/review"
	"github.com/lawlink/lawlink-api/internal/middleware"
	"github.com/lawlink/lawlink-api/internal/repository/postgres"
	"github.com/lawlink/lawlink-api/internal/router"
	appointmentService "github.com/lawlink/lawlink-api/internal/service/appointment"
	authService "github.com/lawlink/lawlink-api/internal/service/auth"
	lawyerService "github.com/lawlink/lawlink-api/internal/service/lawyer"
	notificationService "github.com/lawlink/lawlink-api/internal/service/notification"
	reviewService "github.com/lawlink/lawlink-api/internal/service/review"
	"github.com/lawlink/lawlink-api/pkg/auth"
	"github.com/lawlink/lawlink-api/pkg/logger"
	"github.com/lawlink/lawlink-api/pkg/messaging"
	redisBroker "github.com/lawlink/lawlink-api/pkg/messaging/redis"
	"github.com/lawlink/lawlink-api/pkg/metrics"
	"github.com/lawlink/lawlink-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal(err, "failed to run migrations")
	}

	m := metrics.NewMetrics("lawlink")

	var broker messaging.Broker = messaging.NoopBroker{}
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
			MinIdleConns: 2,
		}, log.Zerolog())
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
	}
	defer broker.Close()

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	}

	base := postgres.NewBaseRepository(db, m)
	userRepo := postgres.NewUserRepository(base)
	lawyerRepo := postgres.NewLawyerRepository(base)
	serviceRepo := postgres.NewServiceRepository(base)
	availabilityRepo := postgres.NewAvailabilityRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	reviewRepo := postgres.NewReviewRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	authSvc := authService.NewService(userRepo, jwtSvc, hasher, emailSvc, log)
	notifSvc := notificationService.NewService(notificationRepo, userRepo, emailSvc, broker, log)
	lawyerSvc := lawyerService.NewService(lawyerRepo, serviceRepo, availabilityRepo, m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, lawyerRepo, serviceRepo, notifSvc, broker, log, m)
	reviewSvc := reviewService.NewService(reviewRepo, lawyerRepo, notifSvc, lawyerSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	routerCfg := router.DefaultConfig()
	routerCfg.RateLimitRPS = cfg.RateLimit.RPS
	routerCfg.RateLimitBurst = cfg.RateLimit.Burst
	routerCfg.Timeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	r := router.New(routerCfg, *log.Zerolog(), m, db, authMiddleware, router.Handlers{
		Auth:         authHandler.NewHandler(authSvc),
		Lawyer:       lawyerHandler.NewHandler(lawyerSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Review:       reviewHandler.NewHandler(reviewSvc),
		Notification: notificationHandler.NewHandler(notifSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
	log.Info("server stopped")
}
