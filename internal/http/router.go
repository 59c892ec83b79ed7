package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/calhub/internal/auth"
	"github.com/geocoder89/calhub/internal/cache"
	"github.com/geocoder89/calhub/internal/config"
	"github.com/geocoder89/calhub/internal/http/handlers"
	"github.com/geocoder89/calhub/internal/http/middlewares"
	"github.com/geocoder89/calhub/internal/observability"
	"github.com/geocoder89/calhub/internal/repo/memory"
	"github.com/geocoder89/calhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	log *slog.Logger,
	cfg config.Config,
	pool *pgxpool.Pool,
	listCache cache.Store,
	metrics *observability.Prom,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.RegisterValidators()

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("calhub"))

	if metrics != nil {
		r.Use(metrics.GinHandleMiddleware())
	}

	// health

	checks := map[string]func(context.Context) error{}

	if pool != nil {
		checks["db"] = func(ctx context.Context) error {
			pctx, cancel := context.WithTimeout(ctx, 1*time.Second)
			defer cancel()

			return pool.Ping(pctx)
		}
	}

	if p, ok := listCache.(pinger); ok {
		checks["cache"] = func(ctx context.Context) error {
			pctx, cancel := context.WithTimeout(ctx, 1*time.Second)
			defer cancel()

			return p.Ping(pctx)
		}
	}

	h := handlers.NewHealthHandler(checks)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// wire up repositories; memory repos serve db-less runs and tests

	var (
		usersRepo  handlers.UserReader
		usersWrite handlers.UserWriter
		eventsRepo handlers.EventsRepo
	)

	if pool != nil {
		pgUsers := postgres.NewUsersRepo(pool, metrics)
		usersRepo, usersWrite = pgUsers, pgUsers
		eventsRepo = postgres.NewEventsRepo(pool, metrics)
	} else {
		memUsers := memory.NewUsersRepo()
		usersRepo, usersWrite = memUsers, memUsers
		eventsRepo = memory.NewEventsRepo()
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())

	authHandler := handlers.NewAuthHandler(usersRepo, usersWrite, jwtManager)
	eventsHandler := handlers.NewEventsHandler(eventsRepo, listCache)

	authGate := middlewares.NewAuthMiddleware(jwtManager)

	authLimiter := middlewares.NewRateLimiter(cfg.RateLimitAuth, cfg.RateLimitWindow)
	eventsLimiter := middlewares.NewRateLimiter(cfg.RateLimitEvents, cfg.RateLimitWindow)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Use(authLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	events := api.Group("/events")
	events.Use(authGate.RequireAuth())
	events.Use(eventsLimiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))
	events.GET("", eventsHandler.ListEvents)
	events.POST("", eventsHandler.CreateEvent)
	events.GET("/:id", eventsHandler.GetEventByID)
	events.PUT("/:id", eventsHandler.UpdateEvent)
	events.DELETE("/:id", eventsHandler.DeleteEvent)

	log.Debug("router wired", "db", pool != nil, "metrics", metrics != nil)

	return r
}
