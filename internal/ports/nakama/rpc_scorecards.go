package nakama

import (
	"context"
	"database/sql"
	"errors"

	json "github.com/goccy/go-json"
	"github.com/heroiclabs/nakama-common/runtime"

	"cricsaga/internal/ports"
	"cricsaga/internal/storage"
)

const defaultScorecardLimit = 10

// RegisterRPCs registers the Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, archive ports.MatchArchive) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcScorecardList, rpcScorecardList(archive)); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcScorecardGet, rpcScorecardGet(archive)); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcScorecardDelete, rpcScorecardDelete(archive))
}

type scorecardListRequest struct {
	Limit int `json:"limit"`
}

type scorecardRequest struct {
	MatchID string `json:"match_id"`
}

func rpcScorecardList(archive ports.MatchArchive) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || userID == "" {
			return "", runtime.NewError("no user session", 16) // UNAUTHENTICATED
		}

		req := scorecardListRequest{Limit: defaultScorecardLimit}
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
			}
		}
		if req.Limit <= 0 || req.Limit > 50 {
			req.Limit = defaultScorecardLimit
		}

		records, err := archive.ListByUser(ctx, userID, req.Limit)
		if err != nil {
			logger.Error("scorecard_list: %v", err)
			return "", runtime.NewError("archive unavailable", 13) // INTERNAL
		}

		b, _ := json.Marshal(records)
		return string(b), nil
	}
}

func rpcScorecardGet(archive ports.MatchArchive) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req scorecardRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil || req.MatchID == "" {
			return "", runtime.NewError("invalid payload", 3)
		}

		rec, err := archive.Get(ctx, req.MatchID)
		if errors.Is(err, storage.ErrNotFound) {
			return "", runtime.NewError("scorecard not found", 5) // NOT_FOUND
		}
		if err != nil {
			logger.Error("scorecard_get: %v", err)
			return "", runtime.NewError("archive unavailable", 13)
		}

		b, _ := json.Marshal(rec)
		return string(b), nil
	}
}

func rpcScorecardDelete(archive ports.MatchArchive) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if !ok || userID == "" {
			return "", runtime.NewError("no user session", 16)
		}

		var req scorecardRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil || req.MatchID == "" {
			return "", runtime.NewError("invalid payload", 3)
		}

		err := archive.Delete(ctx, req.MatchID, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return "", runtime.NewError("scorecard not found", 5)
		}
		if err != nil {
			logger.Error("scorecard_delete: %v", err)
			return "", runtime.NewError("archive unavailable", 13)
		}

		return `{"deleted":true}`, nil
	}
}
