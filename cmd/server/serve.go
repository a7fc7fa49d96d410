package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/database"
	"github.com/gdg-garage/charity-api/internal/gateway"
	"github.com/gdg-garage/charity-api/internal/handlers"
	"github.com/gdg-garage/charity-api/internal/ledger"
	"github.com/gdg-garage/charity-api/internal/registrations"
	"github.com/gdg-garage/charity-api/internal/reporting"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	db := database.Connect(cfg, logger)
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	authHandler := auth.NewAuthHandler(cfg, db, logger)
	donationLedger := ledger.New(db, logger)
	regs := registrations.NewStore(db)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, cfg, logger, handlers.Handlers{
		Auth:          authHandler,
		Registrations: handlers.NewRegistrationHandler(regs, authHandler, logger),
		Donations:     handlers.NewDonationHandler(donationLedger, authHandler, logger),
		Admin:         handlers.NewAdminHandler(donationLedger, reporting.NewEngine(db, regs), authHandler, logger),
		Gateway:       handlers.NewGatewayHandler(gateway.NewBridge(donationLedger, logger), logger),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server failed")
			return err
		}
		return nil
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
