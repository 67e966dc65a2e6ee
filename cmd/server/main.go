package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iudanet/gophtasks/internal/config"
	"github.com/iudanet/gophtasks/internal/server"
	"github.com/iudanet/gophtasks/internal/server/auth"
	"github.com/iudanet/gophtasks/internal/server/middleware"
	"github.com/iudanet/gophtasks/internal/server/storage/postgres"
	"github.com/iudanet/gophtasks/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// backend is what main needs from a storage implementation
type backend interface {
	server.Storage
	Migrate(ctx context.Context) error
	Close() error
	DB() *sql.DB
}

type flags struct {
	configPath  string
	address     string
	dsn         string
	driver      string
	showVersion bool
	migrateOnly bool
}

func main() {
	// Parse flags
	var f flags
	flag.BoolVar(&f.showVersion, "version", false, "Show version information")
	flag.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&f.address, "address", "", "API listen address (overrides config)")
	flag.StringVar(&f.driver, "db-driver", "", "Database driver: sqlite or postgres (overrides config)")
	flag.StringVar(&f.dsn, "dsn", "", "Database DSN or SQLite path (overrides config)")
	flag.BoolVar(&f.migrateOnly, "migrate-only", false, "Apply migrations and exit")
	flag.Parse()

	// Show version and exit if requested
	if f.showVersion {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	store, err := openStorage(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if cfg.Database.AutoMigrate || f.migrateOnly {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		logger.InfoContext(ctx, "migrations applied", slog.String("driver", cfg.Database.Driver))
	}
	if f.migrateOnly {
		return nil
	}

	issuer := auth.NewIssuer(store,
		auth.WithTTL(cfg.Auth.TokenTTL),
		auth.WithReuseMargin(cfg.Auth.ReuseMargin),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(store.DB(), "gophtasks"),
	)

	var metrics *middleware.Metrics
	metricsAddress := ""
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics(registry)
		metricsAddress = cfg.Metrics.Address
	}

	handler := server.NewRouter(server.Deps{
		Logger:  logger,
		Storage: store,
		Issuer:  issuer,
		Metrics: metrics,
		Version: Version,
	})

	srv := server.New(logger, handler, registry, server.Options{
		Address:         cfg.Server.Address,
		MetricsAddress:  metricsAddress,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	logger.InfoContext(ctx, "GophTasks server starting",
		slog.String("version", Version),
		slog.String("driver", cfg.Database.Driver),
	)

	return srv.Run(ctx)
}

// loadConfig applies command-line flags on top of the file and environment
func loadConfig(f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.address != "" {
		cfg.Server.Address = f.address
	}
	if f.driver != "" {
		cfg.Database.Driver = f.driver
	}
	if f.dsn != "" {
		cfg.Database.DSN = f.dsn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig) (backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		opts := postgres.DefaultOptions()
		if cfg.MaxOpenConns > 0 {
			opts.MaxOpenConns = cfg.MaxOpenConns
		}
		s, err := postgres.New(ctx, cfg.DSN, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "GophTasks Server\n")
	fmt.Fprintf(w, "Version:    %s\n", Version)
	fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
}
