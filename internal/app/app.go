package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/database"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/redis"
	"github.com/MrSnakeDoc/bookmarks/internal/scheduler"
	"github.com/MrSnakeDoc/bookmarks/internal/sources/seed"
	"github.com/MrSnakeDoc/bookmarks/internal/store/sqlite"
	"github.com/MrSnakeDoc/bookmarks/internal/utils"
	"github.com/MrSnakeDoc/bookmarks/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	db          *sql.DB
	redisClient *goredis.Client
	maintenance *scheduler.Maintenance
}

// New loads the configuration and connects every backing service.
// It blocks while SQLite (and Redis, when configured) come up.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	loggerClient.Infof("Opening SQLite database at %s", cfg.DBPath)
	db, err := database.Open(ctx, database.Options{
		Path:           cfg.DBPath,
		MaxOpenConns:   cfg.DBMaxOpenConns,
		BusyTimeout:    cfg.DBBusyTimeout,
		ConnectTimeout: cfg.DBConnectTimeout,
		RetryInterval:  cfg.DBRetryInterval,
		MaxWait:        cfg.DBMaxWait,
		PingTimeout:    cfg.DBPingTimeout,
	}, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	loggerClient.Info("SQLite initialized successfully")

	if cfg.SeedFile != "" {
		if _, err := seed.NewSeeder(cfg.SeedFile, db, loggerClient).Run(ctx); err != nil {
			utils.Close(db)
			return nil, err
		}
	}

	probes := []deps.Probe{{Name: "sqlite", Check: db.PingContext}}

	var (
		redisClient *goredis.Client
		limiter     mw.Limiter
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			utils.Close(db)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		probes = append(probes, deps.Probe{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		if cfg.RateLimitBurst > 0 {
			limiter = mw.NewRedisLimiter(redisClient, cfg.RateLimitPerMin, time.Minute, loggerClient)
		}
	} else if cfg.RateLimitBurst > 0 {
		limiter = mw.NewMemoryLimiter(mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			MaxEntries:        10000,
		})
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Store:        sqlite.NewStore(db),
		Production:   cfg.IsProduction(),
		APIPrefix:    cfg.APIPrefix,
		MaxBodyBytes: cfg.MaxBodyBytes,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		CORSOrigins:  cfg.CORSOrigins,
		Probes:       probes,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d, limiter),
		db:          db,
		redisClient: redisClient,
		maintenance: scheduler.NewMaintenance(db, loggerClient, cfg.DBMaintenance),
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then drains in-flight requests
// and closes the backing services.
func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Bookmarks v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Bookmarks %s env=%s", version.String(), a.cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.DBMaintenance > 0 {
		a.maintenance.Start(ctx)
		a.logger.Info("database maintenance started",
			logger.Duration("interval", a.cfg.DBMaintenance))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.maintenance.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, "Redis", a.logger)
	}
	utils.MustClose(a.db, "SQLite", a.logger)

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Bookmarks stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
