// Package server initializes and runs the identity backend: it wires the
// crypto layer, the PostgreSQL-backed stores, the profile and credential
// services and the HTTP endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Euphysics/ziphonix/internal/cryptox"
	"github.com/Euphysics/ziphonix/internal/logging"
	"github.com/Euphysics/ziphonix/internal/server/config"
	"github.com/Euphysics/ziphonix/internal/server/repositories/repomanager"
	"github.com/Euphysics/ziphonix/internal/server/rest"
	"github.com/Euphysics/ziphonix/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rm     repomanager.RepositoryManager
	server *rest.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	crypto, err := cryptox.New([]byte(cfg.EncryptionKey), cfg.SaltBytes())
	if err != nil {
		return nil, fmt.Errorf("crypto init error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager(crypto)

	us := services.NewUserService(db, rm, logger)
	as := services.NewAuthService(db, rm, crypto, logger)
	manager := services.NewAuthManager(db, us, as, logger)

	srv := rest.NewServer(cfg.EndpointAddrHTTP, manager, us, logger)

	return &App{config: cfg, logger: logger, db: db, rm: rm, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	return nil
}
