package bootstrap

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/folioworks/profile-service/internal/config"
	"github.com/folioworks/profile-service/internal/infra/cache"
	"github.com/folioworks/profile-service/internal/infra/db"
	"github.com/folioworks/profile-service/internal/infra/logger"
	"github.com/folioworks/profile-service/internal/modules/handler"
	"github.com/folioworks/profile-service/internal/modules/repo"
	"github.com/folioworks/profile-service/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis (optional): when disabled the repo runs uncached.
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Redis.Enabled {
			return nil, nil
		}
		return cache.New(cfg)
	})
	do.Provide(inj, func(i *do.Injector) (*repo.ProfileCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb := do.MustInvoke[*redis.Client](i)
		if rdb == nil {
			return nil, nil
		}
		log := do.MustInvoke[*zap.Logger](i)
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		return repo.NewProfileCache(rdb, ttl, log), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(
			do.MustInvoke[*gorm.DB](i),
			do.MustInvoke[*repo.ProfileCache](i),
		), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProfileService, error) {
		return service.NewProfileService(do.MustInvoke[repo.UserRepo](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProfileHandler, error) {
		return handler.NewProfileHandler(do.MustInvoke[service.ProfileService](i)), nil
	})

	return inj
}
