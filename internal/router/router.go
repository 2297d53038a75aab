package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lawlink/lawlink-api/internal/handler"
	appointmentHandler "github.com/lawlink/lawlink-api/internal/handler/appointment"
	authHandler "github.com/lawlink/lawlink-api/internal/handler/auth"
	lawyerHandler "github.com/lawlink/lawlink-api/internal/handler/lawyer"
	notificationHandler "github.com/lawlink/lawlink-api/internal/handler/notification"
	reviewHandler "github.com/lawlink/lawlink-api/internal/handler/review"
	"github.com/lawlink/lawlink-api/internal/middleware"
	"github.com/lawlink/lawlink-api/pkg/metrics"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	Timeout        time.Duration
	CORS           middleware.CORSConfig
}

func DefaultConfig() Config {
	return Config{
		RateLimitRPS:   50,
		RateLimitBurst: 100,
		Timeout:        30 * time.Second,
		CORS:           middleware.DefaultCORSConfig(),
	}
}

type Router struct {
	engine *gin.Engine
}

type Handlers struct {
	Auth         *authHandler.Handler
	Lawyer       *lawyerHandler.Handler
	Appointment  *appointmentHandler.Handler
	Review       *reviewHandler.Handler
	Notification *notificationHandler.Handler
}

func New(
	cfg Config,
	log zerolog.Logger,
	m *metrics.Metrics,
	db *sqlx.DB,
	auth *middleware.AuthMiddleware,
	handlers Handlers,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.ErrorLogger(log),
		middleware.Metrics(m),
		middleware.Timeout(cfg.Timeout),
		middleware.CORS(cfg.CORS),
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	engine.Use(rateLimiter.RateLimit())

	engine.GET("/health", handler.Health(db))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	authRequired := auth.Authenticate()
	cacheHeaders := middleware.CacheControl(middleware.DirectoryCacheConfig())

	handlers.Auth.RegisterRoutes(api, authRequired)

	// Present claims to public directory reads when a session exists, so
	// owners see their own inactive services.
	public := api.Group("", auth.OptionalAuth())
	handlers.Lawyer.RegisterRoutes(public, authRequired, cacheHeaders)
	handlers.Review.RegisterRoutes(public, authRequired)

	protected := api.Group("", authRequired)
	handlers.Appointment.RegisterRoutes(protected)
	handlers.Notification.RegisterRoutes(api, authRequired)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
