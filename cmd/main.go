package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"password_vault/internal/cipher"
	"password_vault/internal/config"
	"password_vault/internal/handlers"
	"password_vault/internal/hasher"
	"password_vault/internal/logger"
	"password_vault/internal/repository"
	"password_vault/internal/repository/db"
	"password_vault/internal/server"
	"password_vault/internal/service"
	"password_vault/internal/token"

	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

// @title                       Password Vault API
// @version                     1.0
// @description                 Stores per-service credentials encrypted at rest.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file (default configs/config.yml)")
	genKey := pflag.Bool("gen-key", false, "print a fresh encryption key and exit")
	pflag.Parse()

	if *genKey {
		key, err := cipher.GenerateKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(key)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "err", err)
	}

	dialect, err := repository.ParseDialect(cfg.DB.Driver)
	if err != nil {
		log.Fatalw("invalid database driver", "err", err)
	}

	// open DB
	conn, err := openDB(dialect, cfg.DB.DSN, log)
	if err != nil {
		log.Fatalw("failed to init database", "driver", string(dialect), "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	services, err := buildServices(cfg, repository.NewRepository(conn, dialect))
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func openDB(dialect repository.Dialect, dsn string, log *logger.Logger) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return db.InitDB(ctx, dialect, dsn, log)
}

// buildServices constructs the crypto primitives from configuration and wires
// them into the service layer. Keys are read once here and never again.
func buildServices(cfg *config.Config, store repository.Store) (*service.Service, error) {
	h, err := hasher.New(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	key, err := cfg.EncryptionKeyBytes()
	if err != nil {
		return nil, err
	}
	c, err := cipher.New(key)
	if err != nil {
		return nil, err
	}
	tk, err := token.NewService([]byte(cfg.Auth.SecretKey), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	return service.NewService(store, h, c, tk), nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
