// Package server initializes and runs the application: it opens the database,
// applies migrations, wires services behind the HTTP server, and handles
// graceful shutdown on OS signals.
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

	"github.com/pokebox/pokebox/internal/logging"
	"github.com/pokebox/pokebox/internal/server/auth"
	"github.com/pokebox/pokebox/internal/server/config"
	"github.com/pokebox/pokebox/internal/server/pokeapi"
	"github.com/pokebox/pokebox/internal/server/ratelimit"
	"github.com/pokebox/pokebox/internal/server/repositories/repomanager"
	"github.com/pokebox/pokebox/internal/server/rest"
	"github.com/pokebox/pokebox/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(c *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := repomanager.OpenDB(context.Background(), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	hasher := auth.NewPasswordHasher(c.BcryptCost, c.MaxConcurrentHashes)

	us := services.NewUserService(db, rm, hasher, c)
	ps := services.NewPokemonService(db, rm)

	catalog := pokeapi.NewClient(c.PokeAPIBaseURL, c.PokeAPITimeout)
	limiter := ratelimit.NewLimiter(c.RateLimitMax, c.RateLimitWindow, nil)

	srv := rest.NewServer(c.EndpointAddr, logger, us, ps, catalog, limiter, c.SecretKey)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
