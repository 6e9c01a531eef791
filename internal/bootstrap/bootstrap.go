package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/store"
	"gorm.io/gorm"
)

// Store is everything the services and the health check need from storage.
type Store interface {
	services.UserRepository
	services.AppointmentRepository
	Ping(ctx context.Context) error
}

// Resources are the storage handles shared by cmd/server and cmd/seed.
type Resources struct {
	Store Store
	Cache services.Cache
	// DB is nil when running on the in-memory store.
	DB *gorm.DB

	closers []func() error
}

// Open connects the configured store and the optional directory cache. A
// Redis that cannot be reached is logged and replaced by a no-op cache.
func Open(ctx context.Context, cfg *config.Config) (*Resources, error) {
	res := &Resources{Cache: cache.Nop{}}

	switch cfg.Store {
	case config.StoreMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		res.Store = store.NewMemory()
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		res.DB = db
		res.Store = store.NewGorm(db)
		res.closers = append(res.closers, func() error { return database.Close(db) })
	}

	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("directory cache disabled", "error", err)
		} else {
			res.Cache = rc
			res.closers = append(res.closers, rc.Close)
			slog.Info("directory cache connected")
		}
	}

	return res, nil
}

// Close releases connections in reverse order of opening.
func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			slog.Error("close failed", "error", err)
		}
	}
	r.closers = nil
}
