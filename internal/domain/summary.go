package domain

import "fmt"

// ResultKind classifies a completed match. Exactly one holds per summary.
type ResultKind string

const (
	// ResultChase means the second-innings batsman reached the target.
	ResultChase ResultKind = "chase"
	// ResultTie means the chase fell exactly one run short of the target.
	ResultTie ResultKind = "tie"
	// ResultDefense means the defending bowler kept the chase below target-1.
	ResultDefense ResultKind = "defense"
)

// Summary is the frozen record of a completed match handed to the archive.
type Summary struct {
	MatchID   string `json:"match_id"`
	DisplayID string `json:"display_id"`
	Mode      Mode   `json:"mode"`

	Result Result `json:"result"`

	FirstInnings  InningsScore `json:"first_innings"`
	SecondInnings InningsScore `json:"second_innings"`
	// Line scores as "runs/wickets (overs.balls)".
	FirstInningsLine  string `json:"first_innings_line"`
	SecondInningsLine string `json:"second_innings_line"`

	FirstInningsRate  float64 `json:"first_innings_rate"`
	SecondInningsRate float64 `json:"second_innings_rate"`

	Boundaries   int `json:"boundaries"`
	Sixes        int `json:"sixes"`
	DotBalls     int `json:"dot_balls"`
	BestOverRuns int `json:"best_over_runs"`

	Target int `json:"target"`

	Creator Player `json:"creator"`
	Joiner  Player `json:"joiner"`
}

// Result names the winner and the margin of a completed match.
type Result struct {
	Kind ResultKind `json:"kind"`
	// Winner is unset when Kind is ResultTie.
	Winner Player `json:"winner,omitempty"`
	// Margin is the quantified gap, e.g. "3 wickets", "4 runs",
	// "comfortably" for an unbounded-wicket chase, "Match tied" for a tie.
	Margin string `json:"margin"`
}

// SafeDivision divides, returning def when the divisor is zero.
func SafeDivision(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}

// ComputeSummary freezes the final record for a match whose second innings has
// closed. The caller guarantees both innings are complete.
func ComputeSummary(m *Match) Summary {
	first := m.Innings[0]
	second := m.Innings[1]

	s := Summary{
		MatchID:           m.ID,
		DisplayID:         m.DisplayID,
		Mode:              m.Mode,
		FirstInnings:      first,
		SecondInnings:     second,
		FirstInningsLine:  first.Line(),
		SecondInningsLine: second.Line(),
		FirstInningsRate:  SafeDivision(float64(first.Runs), float64(first.Balls)/6, 0),
		SecondInningsRate: SafeDivision(float64(second.Runs), float64(second.Balls)/6, 0),
		Boundaries:        first.Boundaries + second.Boundaries,
		Sixes:             first.Sixes + second.Sixes,
		DotBalls:          m.DotBalls,
		BestOverRuns:      bestOverRuns(m),
		Target:            m.Target,
		Creator:           m.Creator,
	}
	if m.Joiner != nil {
		s.Joiner = *m.Joiner
	}

	switch {
	case second.Runs >= m.Target:
		margin := "comfortably"
		if m.MaxWickets.Finite {
			margin = fmt.Sprintf("%d wickets", m.MaxWickets.N-second.Wickets)
		}
		s.Result = Result{Kind: ResultChase, Winner: m.Batsman, Margin: margin}
	case second.Runs == m.Target-1:
		s.Result = Result{Kind: ResultTie, Margin: "Match tied"}
	default:
		runsShort := m.Target - second.Runs - 1
		s.Result = Result{Kind: ResultDefense, Winner: m.Bowler, Margin: fmt.Sprintf("%d runs", runsShort)}
	}

	return s
}

func bestOverRuns(m *Match) int {
	best := m.BestOverRuns
	for _, runs := range m.OverScores {
		if runs > best {
			best = runs
		}
	}
	return best
}
