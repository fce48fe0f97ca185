package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jurisdesk/prazo-engine/internal/application/computation"
	"github.com/jurisdesk/prazo-engine/internal/config"
	"github.com/jurisdesk/prazo-engine/internal/domain/engine"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/database/postgres"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/database/postgres/repositories"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/database/redis"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/messaging/kafka"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/jurisdesk/prazo-engine/internal/interfaces/http"
	"github.com/jurisdesk/prazo-engine/internal/interfaces/http/handlers"
	"github.com/jurisdesk/prazo-engine/internal/interfaces/http/middleware"
)

func newServeCommand(opts *RootOptions) *cobra.Command {
	var (
		port        int
		autoMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the prazo-engine API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			return RunServe(cmd.Context(), cfg, autoMigrate, resolveConfigPath(opts))
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "apply pending migrations before serving")
	return cmd
}

// RunServe wires the full application and blocks until the context is
// canceled or a termination signal arrives.  A non-empty configPath enables
// hot-reloading of the log level when the file changes on disk.
func RunServe(ctx context.Context, cfg *config.Config, autoMigrate bool, configPath string) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting prazo-engine",
		logging.String("version", Version),
		logging.Int("port", cfg.Server.Port))

	if configPath != "" {
		config.Watch(configPath, func(next *config.Config) {
			if setter, ok := logger.(logging.LevelSetter); ok {
				setter.SetLevel(next.Log.Level)
			}
			logger.Info("configuration reloaded",
				logging.String("path", configPath),
				logging.String("log_level", next.Log.Level))
		})
	}

	dbURL := postgres.BuildDSN(cfg.Database)
	if autoMigrate {
		if err := postgres.RunMigrations(dbURL, cfg.Database.MigrationsDir); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	calendarRepo := repositories.NewCalendarRepository(conn.DB())
	catalogRepo := repositories.NewCatalogRepository(conn.DB())
	if err := catalogRepo.SeedDefaults(ctx); err != nil {
		return err
	}

	checkers := []handlers.HealthChecker{
		handlers.HealthCheckerFunc{ComponentName: "postgres", CheckFunc: conn.HealthCheck},
	}

	var cache computation.CalendarCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		var cacheOpts []redis.CacheOption
		if cfg.Redis.KeyPrefix != "" {
			cacheOpts = append(cacheOpts, redis.WithPrefix(cfg.Redis.KeyPrefix))
		}
		if cfg.Redis.SnapshotTTL > 0 {
			cacheOpts = append(cacheOpts, redis.WithTTL(cfg.Redis.SnapshotTTL))
		}
		cache = redis.NewCalendarCache(redisClient, logger, cacheOpts...)
		checkers = append(checkers, handlers.HealthCheckerFunc{
			ComponentName: "redis",
			CheckFunc:     redisClient.HealthCheck,
		})
	}

	var publisher computation.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = producer
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "prazo",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return err
	}
	metrics := prometheus.NewAppMetrics(collector)

	svc, err := computation.NewService(computation.Dependencies{
		Calendars: calendarRepo,
		Catalog:   catalogRepo,
		Engine:    engine.New(cfg.Engine.MaxEffectiveDays),
		Cache:     cache,
		Publisher: publisher,
		Metrics:   prometheus.NewRecorder(metrics),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	cors := middleware.DefaultCORSConfig()
	router := httpserver.NewRouter(httpserver.RouterConfig{
		ComputationHandler: handlers.NewComputationHandler(svc, logger),
		HealthHandler:      handlers.NewHealthHandler(Version, checkers...),
		CORS:               &cors,
		Logger:             logger,
		Metrics:            metrics,
		MetricsCollector:   collector,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("signal received", logging.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return server.Stop(context.Background())
}
