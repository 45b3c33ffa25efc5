package domain

import (
	"testing"
	"time"
)

func completedMatch() *Match {
	m := NewMatch("m1", "M9000", Player{ID: "u1", Name: "Alice"}, time.Unix(0, 0))
	joiner := Player{ID: "u2", Name: "Bob"}
	m.Joiner = &joiner
	m.Mode = ModeClassic
	m.MaxWickets = FiniteLimit(4)
	m.MaxOvers = FiniteLimit(2)
	m.Phase = PhaseCompleted
	m.CurrentInnings = 2
	// Innings 2 batsman is the joiner after the swap.
	m.Batsman = joiner
	m.Bowler = m.Creator
	return m
}

func TestComputeSummaryChaseWin(t *testing.T) {
	m := completedMatch()
	m.Innings[0] = InningsScore{Runs: 19, Wickets: 4, Balls: 12}
	m.Innings[1] = InningsScore{Runs: 20, Wickets: 1, Balls: 10, Boundaries: 2, Sixes: 1}
	m.Target = 20

	s := ComputeSummary(m)

	if s.Result.Kind != ResultChase {
		t.Fatalf("result = %s, want chase", s.Result.Kind)
	}
	if s.Result.Winner.ID != "u2" {
		t.Fatalf("winner = %s, want u2", s.Result.Winner.ID)
	}
	if s.Result.Margin != "3 wickets" {
		t.Fatalf("margin = %q, want %q", s.Result.Margin, "3 wickets")
	}
	if s.SecondInningsLine != "20/1 (1.4)" {
		t.Fatalf("second innings line = %q", s.SecondInningsLine)
	}
}

func TestComputeSummaryChaseUnboundedWickets(t *testing.T) {
	m := completedMatch()
	m.Mode = ModeQuick
	m.MaxWickets = NoLimit
	m.Innings[0] = InningsScore{Runs: 5, Wickets: 0, Balls: 6}
	m.Innings[1] = InningsScore{Runs: 6, Wickets: 0, Balls: 2}
	m.Target = 6

	s := ComputeSummary(m)

	if s.Result.Kind != ResultChase {
		t.Fatalf("result = %s, want chase", s.Result.Kind)
	}
	if s.Result.Margin != "comfortably" {
		t.Fatalf("margin = %q, want comfortably", s.Result.Margin)
	}
}

func TestComputeSummaryTie(t *testing.T) {
	m := completedMatch()
	m.Innings[0] = InningsScore{Runs: 9, Wickets: 2, Balls: 12}
	m.Innings[1] = InningsScore{Runs: 9, Wickets: 1, Balls: 12}
	m.Target = 10

	s := ComputeSummary(m)

	if s.Result.Kind != ResultTie {
		t.Fatalf("result = %s, want tie", s.Result.Kind)
	}
	if s.Result.Winner.ID != "" {
		t.Fatalf("tie should have no winner, got %s", s.Result.Winner.ID)
	}
	if s.Result.Margin != "Match tied" {
		t.Fatalf("margin = %q, want %q", s.Result.Margin, "Match tied")
	}
}

func TestComputeSummaryDefenseWin(t *testing.T) {
	m := completedMatch()
	m.Innings[0] = InningsScore{Runs: 19, Wickets: 1, Balls: 12}
	m.Innings[1] = InningsScore{Runs: 15, Wickets: 2, Balls: 12}
	m.Target = 20

	s := ComputeSummary(m)

	if s.Result.Kind != ResultDefense {
		t.Fatalf("result = %s, want defense", s.Result.Kind)
	}
	if s.Result.Winner.ID != "u1" {
		t.Fatalf("winner = %s, want bowler u1", s.Result.Winner.ID)
	}
	if s.Result.Margin != "4 runs" {
		t.Fatalf("margin = %q, want %q", s.Result.Margin, "4 runs")
	}
}

func TestSummaryMarginExclusivity(t *testing.T) {
	// Sweep second-innings totals around the target; exactly one result kind
	// must hold for each.
	for runs := 0; runs <= 25; runs++ {
		m := completedMatch()
		m.Innings[0] = InningsScore{Runs: 19, Wickets: 1, Balls: 12}
		m.Innings[1] = InningsScore{Runs: runs, Wickets: 2, Balls: 12}
		m.Target = 20

		s := ComputeSummary(m)
		switch {
		case runs >= 20:
			if s.Result.Kind != ResultChase {
				t.Fatalf("runs=%d: result = %s, want chase", runs, s.Result.Kind)
			}
		case runs == 19:
			if s.Result.Kind != ResultTie {
				t.Fatalf("runs=%d: result = %s, want tie", runs, s.Result.Kind)
			}
		default:
			if s.Result.Kind != ResultDefense {
				t.Fatalf("runs=%d: result = %s, want defense", runs, s.Result.Kind)
			}
		}
	}
}

func TestComputeSummaryAggregates(t *testing.T) {
	m := completedMatch()
	m.Innings[0] = InningsScore{Runs: 24, Wickets: 1, Balls: 12, Boundaries: 2, Sixes: 1}
	m.Innings[1] = InningsScore{Runs: 10, Wickets: 2, Balls: 12, Boundaries: 1, Sixes: 2}
	m.Target = 25
	m.DotBalls = 3
	m.BestOverRuns = 14
	m.OverScores = map[int]int{0: 6, 1: 4}

	s := ComputeSummary(m)

	if s.Boundaries != 3 || s.Sixes != 3 || s.DotBalls != 3 {
		t.Fatalf("aggregates wrong: %d boundaries, %d sixes, %d dots", s.Boundaries, s.Sixes, s.DotBalls)
	}
	if s.BestOverRuns != 14 {
		t.Fatalf("best over = %d, want 14", s.BestOverRuns)
	}
	if s.FirstInningsRate != 12 {
		t.Fatalf("first innings rate = %v, want 12", s.FirstInningsRate)
	}
}

func TestSafeDivision(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		def      float64
		want     float64
	}{
		{name: "normal", num: 12, den: 2, def: 0, want: 6},
		{name: "zero divisor", num: 12, den: 0, def: 0, want: 0},
		{name: "zero divisor custom default", num: 1, den: 0, def: -1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDivision(tt.num, tt.den, tt.def); got != tt.want {
				t.Fatalf("SafeDivision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBestOverDefaultsToZero(t *testing.T) {
	m := completedMatch()
	m.Target = 1
	if s := ComputeSummary(m); s.BestOverRuns != 0 {
		t.Fatalf("best over = %d, want 0 when no overs were tracked", s.BestOverRuns)
	}
}
