package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hsho_live_api/internal/config"
	"hsho_live_api/internal/debug"
	httpServer "hsho_live_api/internal/http"
	"hsho_live_api/internal/http/handlers"
	"hsho_live_api/internal/http/middleware"
	"hsho_live_api/internal/identity"
	"hsho_live_api/internal/logger"
	"hsho_live_api/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	st, cache := openStores(cfg)

	deriver := identity.NewDeriver(cfg)
	verifier := identity.NewVerifier(cfg.VerifyURL)
	recorder := debug.NewRecorder(debug.DefaultCapacity)

	h := handlers.NewHandler(cfg, st, cache, deriver, verifier, recorder)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())

	httpServer.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "base_url", cfg.BaseURL,
			"id_mode", cfg.IDMode, "token_mode", cfg.TokenMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// openStores picks the persistence and cache backends. Failures are logged
// and downgraded, never fatal: this server must come up and answer with
// defaults no matter what is misconfigured.
func openStores(cfg *config.Config) (store.Store, store.Cache) {
	mem := store.NewMemory()
	var st store.Store = mem
	var cache store.Cache = mem

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL, cfg.PGStrictSSL)
		if err != nil {
			logger.Error("database unavailable, serving from memory", "error", err)
		} else {
			if err := pg.EnsureSchema(ctx); err != nil {
				logger.Error("schema ensure failed, continuing", "error", err)
			}
			st = pg
			cache = pg
			logger.Info("database connected")
		}
	}

	if cfg.RedisURL != "" {
		rc, err := store.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Error("redis unavailable, using fallback cache", "error", err)
		} else {
			cache = rc
			logger.Info("redis cache connected")
		}
	}

	return st, cache
}
