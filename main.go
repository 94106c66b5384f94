package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoledger/src/api"
	"cryptoledger/src/config"
	"cryptoledger/src/database"
	"cryptoledger/src/repositories"
	"cryptoledger/src/utils"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		os.Exit(1)
	}

	logger, logCloser, err := utils.NewLogger(utils.ParseLogLevel(cfg.Service.LogLevel), cfg.Service.LogToFile, cfg.Service.LogFile)
	if err != nil {
		log.Println(err, "Error while opening log file")
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("server stopped with error")
		stop()
		logCloser.Close()
		os.Exit(1)
	}
}

// run owns the persistence handle for the whole life of the HTTP server and
// releases it after the server has drained.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	repo, closeStore, err := openLedgerStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	server := api.NewServer(cfg, repo, logger)
	httpServer := api.NewHTTPServer(cfg, server)

	errC := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Service.Port).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errC
}

func openLedgerStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repositories.TransactionRepository, func(), error) {
	if cfg.Databases.SQL.Driver == config.MemoryDriver {
		logger.Warn("Using in-memory ledger store, data is lost on exit")
		return repositories.NewInMemoryTransactionRepository(), func() {}, nil
	}

	secrets, err := database.NewSecretGetter(cfg)
	if err != nil {
		return nil, nil, err
	}

	pool, err := database.SetupDB(ctx, cfg, secrets, logger)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewTransactionRepository(pool), pool.Close, nil
}
