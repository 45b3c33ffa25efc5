package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cricsaga/internal/app"
	"cricsaga/internal/config"
	"cricsaga/internal/ports"
	"cricsaga/internal/storage"
	"cricsaga/internal/worker"
)

// The maintenance daemon: it runs the idle-match janitor against the shared
// session directory and keeps the match archive reachable for operators. Game
// traffic itself is served by the Nakama runtime module in cmd/nakama.
func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("configuration error")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if cfg.TuningFile != "" {
		if err := config.LoadGameTuning(cfg.TuningFile); err != nil {
			log.Warn().Err(err).Msg("could not load game tuning, using defaults")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir := buildDirectory(cfg, log)
	archive := buildArchive(cfg, log)
	engine := app.NewEngine(app.NewService(nil), dir, archive, nil, log)

	if cfg.JanitorInterval > 0 {
		janitor := worker.NewJanitor(engine, cfg.JanitorInterval, cfg.IdleMatchTTL, log)
		if err := janitor.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start janitor")
		}
		defer janitor.Stop()
	} else {
		log.Info().Msg("janitor disabled, set CRICSAGA_JANITOR_INTERVAL to enable")
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not read directory stats")
	} else {
		log.Info().Int("active_matches", stats.ActiveMatches).Msg("server ready")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func buildDirectory(cfg config.Config, log zerolog.Logger) ports.SessionDirectory {
	if cfg.RedisAddr == "" {
		log.Info().Msg("session directory: in-memory")
		return storage.NewMemoryDirectory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	log.Info().Str("addr", cfg.RedisAddr).Msg("session directory: redis")
	return storage.NewRedisDirectory(client)
}

func buildArchive(cfg config.Config, log zerolog.Logger) ports.MatchArchive {
	if cfg.DatabaseURL != "" {
		arch, err := storage.NewPostgresArchive(cfg.DatabaseURL)
		if err == nil {
			log.Info().Msg("match archive: postgres")
			return arch
		}
		log.Warn().Err(err).Msg("match archive: postgres unavailable, falling back to file")
	}

	log.Info().Str("path", cfg.ArchiveFile).Msg("match archive: file")
	return storage.NewFileArchive(cfg.ArchiveFile)
}
