package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/imagegenhub/imagegenhub/config"
	"github.com/imagegenhub/imagegenhub/internal/application"
	"github.com/imagegenhub/imagegenhub/internal/container"
	"github.com/imagegenhub/imagegenhub/internal/domain/repository"
	"github.com/imagegenhub/imagegenhub/internal/infrastructure/memory"
	"github.com/imagegenhub/imagegenhub/internal/infrastructure/session"
	"github.com/imagegenhub/imagegenhub/internal/interface/middleware"
	"github.com/imagegenhub/imagegenhub/internal/router"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
	"github.com/imagegenhub/imagegenhub/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Redis is optional: session backend and rate limiting use it when
	// enabled, everything else runs from process memory.
	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	// Session snapshot store
	var sessions repository.SessionRepository
	if cfg.SessionBackend == "redis" && container.GetRedis() != nil {
		sessions = session.NewRedisStore(container.GetRedis(), cfg.SessionTTL, logger)
	} else {
		sessions = session.NewFileStore(cfg.SessionFile, logger)
	}

	// In-memory meme collection, seeded with the demo data
	memes := memory.NewMemeRepository()
	if err := memory.LoadSeed(memes, cfg.SeedFile); err != nil {
		logger.WithError(err).Fatal("failed to seed meme collection")
	}
	logger.WithField("count", memes.Len()).Info("meme collection seeded")

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Provide singletons to the container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)
	container.SetNotifier(application.NewNotifier())
	container.SetMemeRepo(memes)
	container.SetSessionRepo(sessions)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	// Restore a persisted session, if any. A corrupt snapshot logs a
	// warning and boots with no session.
	container.GetAuthService().RestoreSession(ctx)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(http.ErrServerClosed, err) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
