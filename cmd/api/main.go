package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/corvusHold/leasedesk/internal/config"
	"github.com/corvusHold/leasedesk/internal/delivery"
	evsvc "github.com/corvusHold/leasedesk/internal/events/service"
	"github.com/corvusHold/leasedesk/internal/lease"
	"github.com/corvusHold/leasedesk/internal/logger"
	"github.com/corvusHold/leasedesk/internal/metrics"
	"github.com/corvusHold/leasedesk/internal/platform/jsonx"
	"github.com/corvusHold/leasedesk/internal/platform/ratelimit"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
	"github.com/corvusHold/leasedesk/internal/templates"
	"github.com/corvusHold/leasedesk/internal/version"
)

func main() {
	if handleCLICommand(os.Args[1:]) {
		return
	}
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Str("addr", cfg.AppAddr).Str("version", version.String()).Msg("starting api server")
	log.Debug().Msg(cfg.String())

	// Redis only backs the send rate limiter; without it counters stay in process.
	var rc *redis.Client
	if cfg.RedisAddr != "" {
		rc = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer rc.Close()
	}

	e, err := newServer(context.Background(), cfg, log, rc)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to build server")
	}

	// Start server
	go func() {
		if err := e.Start(cfg.AppAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}

// newServer wires every module onto a fresh echo instance. rc may be nil.
func newServer(ctx context.Context, cfg config.Config, log zerolog.Logger, rc *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonx.Serializer{}

	// Middlewares
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return matchCORSOrigin(origin, cfg.CORSAllowedOrigins), nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.HTTPMiddleware("/metrics"))

	// Validator
	e.Validator = validation.New()

	pub := evsvc.NewLogger(logger.Component(log, "events"))

	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if rc != nil {
		store = ratelimit.NewRedisStore(rc)
	}

	// Register domain routes via factories
	tpl, err := templates.Register(ctx, e, cfg, pub, logger.Component(log, "templates"))
	if err != nil {
		return nil, err
	}
	drafts := delivery.Register(e, cfg, tpl, store, pub, logger.Component(log, "delivery"))
	lease.Register(e, cfg, drafts, pub, logger.Component(log, "lease"))

	// Health endpoint pings Redis when it is configured
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
		defer cancel()

		cacheStatus := "disabled"
		if rc != nil {
			start := time.Now()
			_, err := rc.Ping(ctx).Result()
			metrics.ObserveRedisPing(time.Since(start).Seconds())
			metrics.SetRedisUp(err == nil)
			cacheStatus = "ok"
			if err != nil {
				cacheStatus = "down"
			}
		}

		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"time":    time.Now().UTC().Format(time.RFC3339),
			"version": version.String(),
			"cache":   cacheStatus,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e, nil
}
