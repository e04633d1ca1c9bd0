package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adibarra/shadle/internal/config"
	"github.com/adibarra/shadle/internal/db"
	"github.com/adibarra/shadle/internal/db/repository"
	"github.com/adibarra/shadle/internal/game"
	"github.com/adibarra/shadle/internal/logging"
	"github.com/adibarra/shadle/internal/puzzle"
	"github.com/adibarra/shadle/internal/server"
	"github.com/adibarra/shadle/internal/stats"
	ws "github.com/adibarra/shadle/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	statsWorker      *stats.Worker
	statsBroadcaster *stats.Broadcaster
	bgCancels        []context.CancelFunc
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := db.New(pool)

	attemptRepo := repository.NewAttemptRepository(queries)
	puzzleRepo := repository.NewPuzzleRepository(queries)
	statsRepo := repository.NewStatsRepository(queries)

	puzzleSvc := puzzle.NewService(puzzle.NewDeriver(cfg.Puzzle.Salt), puzzleRepo, logger)
	gameSvc := game.NewService(puzzleSvc, attemptRepo, logger)

	statsCache := stats.NewCache(redisClient, cfg.Stats.CacheTTL)
	statsSvc := stats.NewService(statsRepo, statsCache, stats.ServiceOptions{
		ChunkSize: int32(cfg.Stats.ChunkSize),
	}, logger)
	statsWorker := stats.NewWorker(statsSvc, stats.WorkerOptions{
		TodayInterval:   cfg.Stats.TodayInterval,
		RandomInterval:  cfg.Stats.RandomInterval,
		BacklogInterval: cfg.Stats.BacklogInterval,
	}, logger)

	wsHub := ws.NewHub(logger)
	statsBroadcaster := stats.NewBroadcaster(redisClient, wsHub, "", logger)

	gameHandlers := game.NewHTTPHandler(gameSvc, logger)
	statsHandlers := stats.NewHTTPHandler(statsSvc, logger)
	statsWSHandler := stats.NewWSHandler(wsHub, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, server.Handlers{
		Guess:        gameHandlers.HandleGuess,
		History:      gameHandlers.HandleHistory,
		CreatePuzzle: gameHandlers.HandleCreatePuzzle,
		Stats:        statsHandlers.HandleGet,
		RandomStats:  statsHandlers.HandleGetRandom,
		StatsWS:      statsWSHandler.HandleWebSocket,
	})

	return &Application{
		cfg:              cfg,
		logger:           logger,
		pool:             pool,
		redis:            redisClient,
		http:             apiServer,
		statsWorker:      statsWorker,
		statsBroadcaster: statsBroadcaster,
		bgCancels:        make([]context.CancelFunc, 0, 2),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.statsWorker != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.statsWorker.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("stats worker stopped")
			}
		}()
	}

	if a.statsBroadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.statsBroadcaster.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("stats broadcaster stopped")
			}
		}()
	}
}
