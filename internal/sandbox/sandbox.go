// Package sandbox assembles the patient API used for local development and by
// client tests. It runs in memory unless Postgres or Redis are configured.
package sandbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Varun5711/wecare/internal/auth"
	"github.com/Varun5711/wecare/internal/config"
	"github.com/Varun5711/wecare/internal/database"
	"github.com/Varun5711/wecare/internal/handlers"
	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/middleware"
	"github.com/Varun5711/wecare/internal/redis"
	"github.com/Varun5711/wecare/internal/service"
	"github.com/Varun5711/wecare/internal/storage"
)

type Sandbox struct {
	Store    storage.Storage
	Users    *service.UserService
	Bookings *service.BookingService
	Limiter  *middleware.RateLimiter
	Handler  http.Handler

	log     *logger.Logger
	closers []func()
}

// New builds a seeded in-memory sandbox. A nil log disables request logging
// and a zero RateLimitRPS disables rate limiting.
func New(cfg config.SandboxConfig, log *logger.Logger) (*Sandbox, error) {
	return NewWithStorage(cfg, storage.NewMemoryStorage(), log)
}

// Open connects the storage backends named in cfg and builds the sandbox on
// top of them. Unlike New, log is required. Call Close when done.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Sandbox, error) {
	var (
		store   storage.Storage = storage.NewMemoryStorage()
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Database.PrimaryDSN != "" {
		db, err := database.NewManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			ReplicaDSNs:     cfg.Database.ReplicaDSNs,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		closers = append(closers, db.Close)

		if err := db.Migrate(ctx); err != nil {
			closeAll()
			return nil, err
		}
		store = storage.NewPostgresStorage(db)
		log.Info("Using Postgres storage with %d replica(s)", len(cfg.Database.ReplicaDSNs))
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			closeAll()
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })

		store = storage.WithRedisOTPs(store, rdb)
		log.Info("Keeping OTPs in Redis at %s", cfg.Redis.Addr)
	}

	sb, err := NewWithStorage(cfg.Sandbox, store, log)
	if err != nil {
		closeAll()
		return nil, err
	}
	sb.closers = closers
	return sb, nil
}

// NewWithStorage seeds store with the default doctors and mounts the API on it.
func NewWithStorage(cfg config.SandboxConfig, store storage.Storage, log *logger.Logger) (*Sandbox, error) {
	if err := storage.Seed(store); err != nil {
		return nil, fmt.Errorf("failed to seed doctors: %w", err)
	}

	jwtTTL := cfg.JWTTTL
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}
	otpTTL := cfg.OTPTTL
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	users := service.NewUserService(store, auth.NewJWTManager(cfg.JWTSecret, jwtTTL), otpTTL)
	bookings := service.NewBookingService(store)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return &Sandbox{
		log:      log,
		Store:    store,
		Users:    users,
		Bookings: bookings,
		Limiter:  limiter,
		Handler: handlers.NewRouter(handlers.RouterConfig{
			Users:          users,
			Bookings:       bookings,
			Limiter:        limiter,
			AllowedOrigins: origins,
			Log:            log,
		}),
	}, nil
}

// Close releases the storage connections opened by Open.
func (s *Sandbox) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// RunCleanup purges expired OTPs every interval until stop is closed.
func (s *Sandbox) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-stop:
			return
		}
	}
}

func (s *Sandbox) cleanup(now time.Time) int64 {
	deleted, err := s.Store.DeleteExpiredOTPs(now)
	if err != nil {
		if s.log != nil {
			s.log.Error("Failed to delete expired OTPs: %v", err)
		}
		return 0
	}
	if deleted > 0 && s.log != nil {
		s.log.Info("Deleted %d expired OTPs", deleted)
	}
	return deleted
}
