package domain

import (
	"testing"
	"time"
)

func playReadyMatch() *Match {
	m := NewMatch("m1", "M100", Player{ID: "u1", Name: "Alice"}, time.Unix(0, 0))
	joiner := Player{ID: "u2", Name: "Bob"}
	m.Joiner = &joiner
	m.Mode = ModeClassic
	m.MaxWickets = FiniteLimit(2)
	m.MaxOvers = FiniteLimit(1)
	m.Phase = PhaseInningsInProgress
	m.Batsman = m.Creator
	m.Bowler = joiner
	return m
}

func TestResolveBall(t *testing.T) {
	tests := []struct {
		name       string
		bat, bowl  int
		wantWicket bool
		wantRuns   int
		wantSymbol string
	}{
		{name: "wicket on equal numbers", bat: 3, bowl: 3, wantWicket: true, wantSymbol: "W"},
		{name: "bowler's number scores", bat: 2, bowl: 5, wantRuns: 5, wantSymbol: "5"},
		{name: "boundary", bat: 1, bowl: 4, wantRuns: 4, wantSymbol: "4"},
		{name: "six", bat: 2, bowl: 6, wantRuns: 6, wantSymbol: "6"},
		{name: "single", bat: 6, bowl: 1, wantRuns: 1, wantSymbol: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := playReadyMatch()
			pending := tt.bat
			m.PendingBat = &pending

			out := ResolveBall(m, tt.bat, tt.bowl)

			if out.Wicket != tt.wantWicket {
				t.Fatalf("wicket = %v, want %v", out.Wicket, tt.wantWicket)
			}
			if out.Runs != tt.wantRuns {
				t.Fatalf("runs = %d, want %d", out.Runs, tt.wantRuns)
			}
			if out.Symbol != tt.wantSymbol {
				t.Fatalf("symbol = %q, want %q", out.Symbol, tt.wantSymbol)
			}

			score := m.ActiveInnings()
			if score.Balls != 1 {
				t.Fatalf("balls = %d, want 1", score.Balls)
			}
			if m.PendingBat != nil {
				t.Fatalf("pending batsman choice should be cleared")
			}
			if tt.wantWicket && score.Wickets != 1 {
				t.Fatalf("wickets = %d, want 1", score.Wickets)
			}
			if !tt.wantWicket && score.Runs != tt.wantRuns {
				t.Fatalf("innings runs = %d, want %d", score.Runs, tt.wantRuns)
			}
			if tt.wantRuns == 4 && score.Boundaries != 1 {
				t.Fatalf("boundaries = %d, want 1", score.Boundaries)
			}
			if tt.wantRuns == 6 && score.Sixes != 1 {
				t.Fatalf("sixes = %d, want 1", score.Sixes)
			}
			if len(m.ThisOver) != 1 || m.ThisOver[0] != tt.wantSymbol {
				t.Fatalf("this over = %v, want [%s]", m.ThisOver, tt.wantSymbol)
			}
		})
	}
}

func TestOverRollover(t *testing.T) {
	m := playReadyMatch()
	m.MaxWickets = NoLimit
	m.MaxOvers = FiniteLimit(5)

	for ball := 1; ball <= 14; ball++ {
		out := ResolveBall(m, 1, 2) // never a wicket
		if ball%6 == 0 {
			if !out.OverComplete {
				t.Fatalf("ball %d: expected over complete", ball)
			}
			if len(out.CompletedOver) != 6 {
				t.Fatalf("ball %d: completed over length = %d, want 6", ball, len(out.CompletedOver))
			}
			if len(m.ThisOver) != 0 {
				t.Fatalf("ball %d: this over should be empty, got %v", ball, m.ThisOver)
			}
		} else if len(m.ThisOver) != ball%6 {
			t.Fatalf("ball %d: this over length = %d, want %d", ball, len(m.ThisOver), ball%6)
		}
	}

	// Over totals are indexed per over.
	if m.OverScores[0] != 12 || m.OverScores[1] != 12 || m.OverScores[2] != 4 {
		t.Fatalf("over scores = %v, want 12/12/4", m.OverScores)
	}
}

func TestShouldEndInnings(t *testing.T) {
	tests := []struct {
		name string
		prep func(*Match)
		want bool
	}{
		{
			name: "wickets exhausted",
			prep: func(m *Match) { m.Innings[0].Wickets = 2 },
			want: true,
		},
		{
			name: "overs exhausted",
			prep: func(m *Match) { m.Innings[0].Balls = 6 },
			want: true,
		},
		{
			name: "target reached in second innings",
			prep: func(m *Match) {
				m.CurrentInnings = 2
				m.Target = 6
				m.Innings[1].Runs = 6
			},
			want: true,
		},
		{
			name: "target irrelevant in first innings",
			prep: func(m *Match) {
				m.Target = 6
				m.Innings[0].Runs = 10
			},
			want: false,
		},
		{
			name: "still going",
			prep: func(m *Match) { m.Innings[0].Balls = 3 },
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := playReadyMatch()
			tt.prep(m)
			if got := ShouldEndInnings(m); got != tt.want {
				t.Fatalf("ShouldEndInnings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBeginSecondInnings(t *testing.T) {
	m := playReadyMatch()
	m.Innings[0] = InningsScore{Runs: 17, Wickets: 2, Balls: 9, Boundaries: 2, Sixes: 1}
	m.ThisOver = []string{"4", "W", "2"}
	m.OverScores = map[int]int{0: 11, 1: 6}
	batsman, bowler := m.Batsman, m.Bowler

	BeginSecondInnings(m)

	if m.Target != 18 {
		t.Fatalf("target = %d, want 18", m.Target)
	}
	if m.CurrentInnings != 2 {
		t.Fatalf("current innings = %d, want 2", m.CurrentInnings)
	}
	if got := m.ActiveInnings(); got.Balls != 0 || got.Wickets != 0 || got.Runs != 0 {
		t.Fatalf("second innings counters not zeroed: %+v", got)
	}
	if len(m.ThisOver) != 0 {
		t.Fatalf("this over should reset, got %v", m.ThisOver)
	}
	if len(m.OverScores) != 0 {
		t.Fatalf("over scores should reset, got %v", m.OverScores)
	}
	if m.BestOverRuns != 11 {
		t.Fatalf("best over = %d, want 11", m.BestOverRuns)
	}
	if m.Batsman != bowler || m.Bowler != batsman {
		t.Fatalf("batsman and bowler should swap, got %+v / %+v", m.Batsman, m.Bowler)
	}
	// First-innings counters survive untouched.
	if m.Innings[0].Runs != 17 || m.Innings[0].Wickets != 2 {
		t.Fatalf("first innings mutated: %+v", m.Innings[0])
	}
}

func TestRequiredRate(t *testing.T) {
	m := playReadyMatch()
	m.MaxOvers = FiniteLimit(2)
	m.CurrentInnings = 2
	m.Target = 13
	m.Innings[1].Runs = 7
	m.Innings[1].Balls = 9

	rate, ok := m.RequiredRate()
	if !ok {
		t.Fatalf("expected a defined required rate")
	}
	// 6 needed from 3 balls = 12 per over.
	if rate != 12 {
		t.Fatalf("required rate = %v, want 12", rate)
	}

	m.MaxOvers = NoLimit
	if _, ok := m.RequiredRate(); ok {
		t.Fatalf("rate should be undefined with unbounded overs")
	}

	m.MaxOvers = FiniteLimit(2)
	m.Innings[1].Balls = 12
	if _, ok := m.RequiredRate(); ok {
		t.Fatalf("rate should be undefined with no balls left")
	}
}

func TestApplyModeDefaults(t *testing.T) {
	tests := []struct {
		mode        Mode
		wantWickets Limit
		wantOvers   Limit
	}{
		{mode: ModeSurvival, wantWickets: FiniteLimit(1), wantOvers: NoLimit},
		{mode: ModeQuick, wantWickets: NoLimit, wantOvers: NoLimit},
		{mode: ModeClassic, wantWickets: NoLimit, wantOvers: NoLimit},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			m := NewMatch("m1", "M100", Player{ID: "u1"}, time.Unix(0, 0))
			ApplyModeDefaults(m, tt.mode)
			if m.Mode != tt.mode {
				t.Fatalf("mode = %s, want %s", m.Mode, tt.mode)
			}
			if m.MaxWickets != tt.wantWickets {
				t.Fatalf("max wickets = %v, want %v", m.MaxWickets, tt.wantWickets)
			}
			if m.MaxOvers != tt.wantOvers {
				t.Fatalf("max overs = %v, want %v", m.MaxOvers, tt.wantOvers)
			}
		})
	}
}
