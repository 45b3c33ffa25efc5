package ports

import (
	"context"
	"time"

	"cricsaga/internal/domain"
)

// MatchRecord is the finished-match row handed to the archive. The engine
// produces it from a domain summary; storage format is the adapter's concern.
type MatchRecord struct {
	MatchID   string `json:"match_id"`
	DisplayID string `json:"display_id"`
	Mode      string `json:"mode"`
	Name      string `json:"match_name"`

	Winner string `json:"winner"`
	Margin string `json:"margin"`
	Tied   bool   `json:"tied"`

	FirstInnings  string `json:"first_innings"`
	SecondInnings string `json:"second_innings"`

	FirstInningsRate  float64 `json:"first_innings_rate"`
	SecondInningsRate float64 `json:"second_innings_rate"`

	Boundaries   int `json:"boundaries"`
	Sixes        int `json:"sixes"`
	DotBalls     int `json:"dot_balls"`
	BestOverRuns int `json:"best_over_runs"`

	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	JoinerID    string `json:"joiner_id"`
	JoinerName  string `json:"joiner_name"`

	PlayedAt time.Time `json:"played_at"`
}

// NewMatchRecord flattens a domain summary into an archive record.
func NewMatchRecord(s domain.Summary, playedAt time.Time) MatchRecord {
	winner := "No one"
	if s.Result.Kind != domain.ResultTie {
		winner = s.Result.Winner.Name
	}
	return MatchRecord{
		MatchID:           s.MatchID,
		DisplayID:         s.DisplayID,
		Mode:              string(s.Mode),
		Name:              s.Creator.Name + " vs " + s.Joiner.Name,
		Winner:            winner,
		Margin:            s.Result.Margin,
		Tied:              s.Result.Kind == domain.ResultTie,
		FirstInnings:      s.FirstInningsLine,
		SecondInnings:     s.SecondInningsLine,
		FirstInningsRate:  s.FirstInningsRate,
		SecondInningsRate: s.SecondInningsRate,
		Boundaries:        s.Boundaries,
		Sixes:             s.Sixes,
		DotBalls:          s.DotBalls,
		BestOverRuns:      s.BestOverRuns,
		CreatorID:         s.Creator.ID,
		CreatorName:       s.Creator.Name,
		JoinerID:          s.Joiner.ID,
		JoinerName:        s.Joiner.Name,
		PlayedAt:          playedAt,
	}
}

// MatchArchive stores finished-match records and serves scorecard queries.
type MatchArchive interface {
	Save(ctx context.Context, rec MatchRecord) error
	// ListByUser returns the newest records either participant id matches.
	ListByUser(ctx context.Context, userID string, limit int) ([]MatchRecord, error)
	Get(ctx context.Context, matchID string) (MatchRecord, error)
	// Delete removes a record, restricted to matches the user played in.
	Delete(ctx context.Context, matchID, userID string) error
}
