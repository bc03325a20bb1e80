package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/simaogato/fintrack-backend/internal/adapter/grpc"
	httpadapter "github.com/simaogato/fintrack-backend/internal/adapter/http"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/memory"
	"github.com/simaogato/fintrack-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/fintrack-backend/internal/config"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/logging"
	"github.com/simaogato/fintrack-backend/internal/pkg/grpcserver"
	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/fintrack-backend/internal/usecase/investment"
	"github.com/simaogato/fintrack-backend/internal/usecase/seeder"
	"github.com/simaogato/fintrack-backend/internal/usecase/transaction"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

func main() {
	// 1. Load and validate configuration
	cfg, dotenvLoaded := config.Load()
	logger := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if !dotenvLoaded {
		logger.Debug().Msg("no .env file found, using process environment")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server exited")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	// 2. Initialize Repositories
	repos, closeStore, err := openStore(ctx, cfg, logging.Component(logger, "store"))
	if err != nil {
		return err
	}
	defer closeStore()

	// 3. Initialize Services (Use Cases)
	categories := domain.DefaultCategoryRegistry()
	authService := auth.NewAuthService(repos.users, auth.NewTokenService(cfg.JWTSecret))
	transactionService := transaction.NewTransactionService(repos.transactions, categories)
	investmentService := investment.NewInvestmentService(repos.investments, categories)
	dashboardService := dashboard.NewDashboardService(repos.transactions, repos.investments, categories)

	if cfg.SeedDemoData {
		demoSeeder := seeder.NewDemoSeeder(repos.users, authService, transactionService, investmentService)
		created, err := demoSeeder.Seed(ctx, cfg.DemoEmail, cfg.DemoPassword)
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		logger.Info().Bool("created", created).Str("email", cfg.DemoEmail).Msg("demo account ready")
	}

	// 4. REST transport
	app := httpadapter.NewApp(httpadapter.Services{
		Auth:         authService,
		Transactions: transactionService,
		Investments:  investmentService,
		Dashboard:    dashboardService,
		Categories:   categories,
	}, httpadapter.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Logger:           logging.Component(logger, "http"),
	})

	// 5. gRPC analytics transport with health and reflection
	grpcSrv := grpcserver.New(":"+cfg.GRPCPort, grpclib.ChainUnaryInterceptor(
		grpcadapter.LoggingInterceptor(logging.Component(logger, "grpc")),
		grpcadapter.AuthInterceptor(authService),
	))
	grpcadapter.RegisterAnalyticsServiceServer(grpcSrv.Server, grpcadapter.NewServer(transactionService, investmentService, dashboardService))
	grpcSrv.SetServing(grpcadapter.AnalyticsServiceName)

	// 6. Serve until a signal arrives or a listener fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("HTTP server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server listening")
		if err := grpcSrv.Start(); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		grpcSrv.Stop()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

type repositories struct {
	users        domain.UserRepository
	transactions domain.TransactionRepository
	investments  domain.InvestmentRepository
}

// openStore builds the repositories for the configured backend. The returned
// func releases the store.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repositories, func(), error) {
	if cfg.DataBackend == config.BackendMemory {
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:        memory.NewUserRepository(store),
			transactions: memory.NewTransactionRepository(store),
			investments:  memory.NewInvestmentRepository(store),
		}, func() {}, nil
	}

	db, err := connectWithRetry(ctx, cfg, logger)
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DBConnStr); err != nil {
			db.Close()
			return repositories{}, nil, err
		}
		logger.Info().Msg("database migrations applied")
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
			return
		}
		logger.Info().Msg("database connection closed")
	}

	return repositories{
		users:        postgres.NewUserRepository(db),
		transactions: postgres.NewTransactionRepository(db),
		investments:  postgres.NewInvestmentRepository(db),
	}, closeDB, nil
}

// connectWithRetry gives a freshly started Postgres container time to accept connections
func connectWithRetry(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*postgres.DB, error) {
	opts := postgres.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		QueryTimeout:    cfg.StoreTimeout,
	}

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := postgres.NewDB(ctx, cfg.DBConnStr, opts)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Msg("database not ready")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff * time.Duration(attempt)):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, lastErr)
}
