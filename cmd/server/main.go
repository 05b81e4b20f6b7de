package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/folioworks/profile-service/internal/bootstrap"
	"github.com/folioworks/profile-service/internal/config"
	"github.com/folioworks/profile-service/internal/infra/cache"
	"github.com/folioworks/profile-service/internal/infra/db"
	"github.com/folioworks/profile-service/internal/modules/handler"
	"github.com/folioworks/profile-service/internal/router"
	"github.com/folioworks/profile-service/internal/telemetry"
)

//	@title			Profile Service API
//	@version		1.0
//	@description	CRUD service for user profiles with projects, work history and education.
//	@BasePath		/api/v1

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if _, err := telemetry.SetupTracing(cfg); err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	gdb := do.MustInvoke[*gorm.DB](inj)
	if cfg.Telemetry.Enabled {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("failed to instrument gorm", zap.Error(err))
		}
		if rdb := do.MustInvoke[*redis.Client](inj); rdb != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Warn("failed to instrument redis", zap.Error(err))
			}
		}
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		ProfileHandler: do.MustInvoke[*handler.ProfileHandler](inj),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := telemetry.Shutdown(ctx); err != nil {
		log.Warn("tracing shutdown failed", zap.Error(err))
	}
	if rdb := do.MustInvoke[*redis.Client](inj); rdb != nil {
		_ = cache.Close(rdb)
	}
}
