// @title        Salary API
// @version      1.0
// @description  Credential and token service guarding owner-only salary records.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/api"
	"github.com/99minutos/salary-api/internal/api/handler"
	"github.com/99minutos/salary-api/internal/core/service"
	mongodb "github.com/99minutos/salary-api/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/salary-api/internal/infrastructure/db/redis"
	"github.com/99minutos/salary-api/internal/infrastructure/queue"
	"github.com/99minutos/salary-api/internal/pkg/config"
	"github.com/99minutos/salary-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "salary-api"))
	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().Object("config", cfg).Msg("starting")

	hasher, err := service.NewBcryptHasher(cfg.Hasher.Cost)
	if err != nil {
		return err
	}
	issuer, err := service.NewJWTIssuer(cfg.TokenSettings())
	if err != nil {
		return err
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserDirectory(db)
	salaryRepo := mongodb.NewSalaryRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, salaryRepo); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// Audit workers outlive the signal context so requests still in flight
	// during shutdown can publish.
	workerCtx, cancelWorkers := context.WithCancel(context.WithoutCancel(ctx))
	dispatcher := queue.NewDispatcher(
		cfg.Audit.Workers,
		service.NewAuditService(mongodb.NewAuditRepository(db), logger.Component("audit")),
		logger.Component("audit"),
	)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	auth, err := service.NewAuthService(users, hasher, issuer, logger.Component("auth"), service.WithAudit(dispatcher))
	if err != nil {
		return err
	}
	salaries := redisdb.NewSalaryCache(rdb, salaryRepo, cfg.Redis.CacheTTL, logger.Component("salary_cache"))

	e := api.NewRouter(api.Dependencies{
		Auth:      auth,
		Guard:     service.NewOwnerGuard(issuer, users, logger.Component("guard"), service.WithAudit(dispatcher)),
		Salaries:  service.NewSalaryService(salaries, logger.Component("salary")),
		Readiness: handler.NewHealthDependenciesHandler(db, rdb),
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
