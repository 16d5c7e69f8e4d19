package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/trivia-api/internal/cache"
	"github.com/ArtemMoroz51/trivia-api/internal/handler"
	"github.com/ArtemMoroz51/trivia-api/internal/logger"
	"github.com/ArtemMoroz51/trivia-api/internal/service"
	"github.com/ArtemMoroz51/trivia-api/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	cfg   Config
	log   *zap.Logger
	db    *pgxpool.Pool
	sqlDB *sql.DB
	rdb   *redis.Client
	srv   *http.Server
}

func New(cfg Config) (*App, error) {
	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	a := &App{cfg: cfg, log: l}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	a.db = db

	gdb, err := storage.Open(db, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.sqlDB, err = gdb.DB(); err != nil {
		return err
	}

	if a.cfg.AutoMigrate {
		if err := storage.Migrate(ctx, gdb); err != nil {
			return err
		}
		a.log.Info("database migrated")
	}
	if a.cfg.SeedCategories {
		n, err := storage.SeedCategories(ctx, gdb)
		if err != nil {
			return err
		}
		a.log.Info("categories seeded", zap.Int("count", n))
	}

	opts := []service.Option{}
	if a.cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, a.cfg.RedisURL)
		if err != nil {
			return err
		}
		a.rdb = rdb
		opts = append(opts, service.WithCategoryCache(cache.NewRedisCategoryCache(rdb, a.cfg.CategoryCacheTTL)))
	}

	svc := service.NewTriviaService(storage.NewPostgresStore(gdb), a.log, opts...)

	router := handler.NewRouter(svc, handler.Config{
		RequestTimeout: a.cfg.RequestTimeout,
		Health:         db.Ping,
	}, a.log)

	a.srv = &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("server started",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("log_level", a.cfg.LogLevel),
		zap.Bool("category_cache", a.rdb != nil),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return a.srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
