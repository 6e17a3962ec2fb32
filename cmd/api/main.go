package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusopoly/platform/internal/auth"
	"github.com/campusopoly/platform/internal/guard"
	"github.com/campusopoly/platform/internal/handler"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/ledger"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/campusopoly/platform/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return err
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTeamExpiry, cfg.JWTAdminExpiry)
	if err != nil {
		return err
	}

	teams := repository.NewTeamRepository()
	events := repository.NewEventRepository()
	transactions := repository.NewTransactionRepository()
	loans := repository.NewLoanRepository()
	payments := repository.NewPaymentRequestRepository()
	properties := repository.NewPropertyRepository()
	cohorts := repository.NewCohortRepository()
	notifications := repository.NewNotificationRepository()
	outbox := repository.NewOutboxRepository()
	gameConfig := repository.NewGameConfigRepository()

	engine := ledger.NewEngine(teams, events, transactions, loans, payments, properties, notifications, outbox, logger)

	bankSvc := service.NewBankService(pool, engine, logger)
	loanSvc := service.NewLoanService(pool, engine, loans, logger)
	paymentSvc := service.NewPaymentService(pool, engine, payments, teams, outbox, logger)
	propertySvc := service.NewPropertyService(pool, engine, properties, logger)
	setupSvc := service.NewSetupService(pool, teams, cohorts, properties, logger)
	configSvc := service.NewGameConfigService(pool, gameConfig, outbox, logger)
	querySvc := service.NewQueryService(pool, teams, events, transactions, notifications)

	hub := infra.NewWSHub(logger)
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()

	poller := infra.NewOutboxPoller(pool, outbox, producer, hub, logger)
	poller.Start(ctx)

	router := handler.NewRouter(handler.Deps{
		Health:      handler.NewHealthHandler(pool),
		Team:        handler.NewTeamHandler(querySvc, paymentSvc, propertySvc, loanSvc, logger),
		Admin:       handler.NewAdminHandler(bankSvc, loanSvc, paymentSvc, propertySvc, setupSvc, querySvc, issuer, logger),
		SuperAdmin:  handler.NewSuperAdminHandler(bankSvc, setupSvc, configSvc, logger),
		Stream:      handler.NewStreamHandler(hub, logger),
		Issuer:      issuer,
		RateLimiter: guard.NewRateLimiter(120, time.Minute),
		Idempotency: guard.NewIdempotencyGuard(24 * time.Hour),
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	hub.Shutdown(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
