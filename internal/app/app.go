package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/godilite/presentation-scoring/internal/config"
	handler "github.com/godilite/presentation-scoring/internal/grpc"
	"github.com/godilite/presentation-scoring/internal/httpapi"
	"github.com/godilite/presentation-scoring/internal/metrics"
	"github.com/godilite/presentation-scoring/internal/repository"
	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
	dbbuilder "github.com/godilite/presentation-scoring/pkg/database"
	grpcsrv "github.com/godilite/presentation-scoring/pkg/grpc/server"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger       *zap.Logger
	dbPool       *sql.DB
	grpcServer   *grpcsrv.Server
	httpServer   *http.Server
	httpListener net.Listener
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	app, err := build(ctx, cfg, logger, dbPool)
	if err != nil {
		_ = dbPool.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, cfg *config.Config, logger *zap.Logger, dbPool *sql.DB) (*App, error) {
	evaluationRepo := repository.NewEvaluationRepository(dbPool)
	if err := evaluationRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	if !dbbuilder.IsInMemory(cfg.DBPath) {
		if err := evaluationRepo.Reset(ctx); err != nil {
			return nil, fmt.Errorf("evaluation log reset failed: %w", err)
		}
		logger.Info("Evaluation log cleared for new session", zap.String("path", cfg.DBPath))
	}

	rub := rubric.Default()
	if cfg.RubricFile != "" {
		loaded, err := rubric.LoadFile(cfg.RubricFile)
		if err != nil {
			return nil, fmt.Errorf("rubric load failed: %w", err)
		}
		rub = loaded
		logger.Info("Rubric loaded", zap.String("file", cfg.RubricFile), zap.Int("criteria", rub.Len()))
	}

	metricsManager := metrics.NewManager(metrics.WithProcessCollectors())

	evaluationService := service.NewEvaluationService(evaluationRepo, rub, logger,
		service.WithMissingScorePolicy(cfg.MissingScorePolicy),
		service.WithRecorder(metricsManager),
	)

	if cfg.SeedSampleData {
		if err := evaluationService.Import(ctx, scoring.SampleEvaluations()); err != nil {
			return nil, fmt.Errorf("sample data seed failed: %w", err)
		}
		count, err := evaluationRepo.CountEvaluations(ctx)
		if err != nil {
			return nil, fmt.Errorf("sample data seed failed: %w", err)
		}
		logger.Info("Sample evaluations seeded", zap.Int("evaluations", count))
	}

	grpcHandlers := handler.NewGRPCHandlers(evaluationService, logger)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithMetrics(metricsManager),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(handler.ServiceName, func(s *grpc.Server) {
		handler.RegisterPresentationScoringServer(s, grpcHandlers)
	})

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcServer.Shutdown(ctx)
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.HTTPAddr, err)
	}

	api := httpapi.NewServer(evaluationService, metricsManager.Handler(), logger)

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		grpcServer: grpcServer,
		httpServer: &http.Server{
			Handler:           api.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		httpListener: httpListener,
	}, nil
}

// GRPCAddr returns the address the gRPC server listens on.
func (a *App) GRPCAddr() net.Addr {
	return a.grpcServer.Addr()
}

// HTTPAddr returns the address the HTTP server listens on.
func (a *App) HTTPAddr() net.Addr {
	return a.httpListener.Addr()
}

// Run starts the servers and blocks until ctx is done or a shutdown signal is
// received.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting")

	a.grpcServer.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("HTTP server started", zap.String("addr", a.httpListener.Addr().String()))
		if err := a.httpServer.Serve(a.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *App) shutdown() error {
	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
	}
	if err := a.dbPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database shutdown: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		a.logger.Error("shutdown completed with errors", zap.Error(err))
		return err
	}
	a.logger.Info("graceful shutdown completed successfully")
	return nil
}
