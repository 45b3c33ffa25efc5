package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"cricsaga/internal/ports"
	"cricsaga/internal/storage"
)

// InitModule wires RPCs and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	archive := buildArchive(ctx, logger)

	if err := RegisterRPCs(initializer, archive); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameCricket, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(archive), nil
	}); err != nil {
		return err
	}

	logger.Info("CricSaga Go module loaded.")
	return nil
}

// buildArchive picks the match archive backend from the runtime environment:
// Postgres when a database url is configured, a JSON file otherwise.
func buildArchive(ctx context.Context, logger runtime.Logger) ports.MatchArchive {
	if dsn, ok := envValue(ctx, "cricsaga_database_url"); ok && dsn != "" {
		arch, err := storage.NewPostgresArchive(dsn)
		if err == nil {
			logger.Info("Match archive: Postgres")
			return arch
		}
		logger.Warn("Match archive: Postgres unavailable, falling back to file: %v", err)
	}

	path := "data/match_history.json"
	if p, ok := envValue(ctx, "cricsaga_archive_file"); ok && p != "" {
		path = p
	}
	logger.Info("Match archive: file %s", path)
	return storage.NewFileArchive(path)
}
