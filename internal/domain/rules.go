package domain

import "strconv"

// BallOutcome describes the effect of one resolved delivery.
type BallOutcome struct {
	Wicket bool
	Runs   int
	// Symbol is the over-sequence entry: "0".."6" or "W".
	Symbol string
	// OverComplete is true when this ball closed an over.
	OverComplete bool
	// CompletedOver carries the closed over's sequence for display.
	CompletedOver []string
}

// ResolveBall applies one delivery to the active innings. The bowler's number
// scores the runs when the two numbers differ; equal numbers take a wicket.
// The caller is responsible for guard checks; ResolveBall always applies.
func ResolveBall(m *Match, batNum, bowlNum int) BallOutcome {
	score := m.ActiveInnings()
	out := BallOutcome{}

	overIdx := score.Balls / 6
	if bowlNum == batNum {
		score.Wickets++
		out.Wicket = true
		out.Symbol = "W"
	} else {
		score.Runs += bowlNum
		out.Runs = bowlNum
		out.Symbol = strconv.Itoa(bowlNum)
		switch bowlNum {
		case 0:
			m.DotBalls++
		case 4:
			score.Boundaries++
		case 6:
			score.Sixes++
		}
		m.OverScores[overIdx] += bowlNum
	}

	m.ThisOver = append(m.ThisOver, out.Symbol)
	score.Balls++
	m.PendingBat = nil

	if score.Balls%6 == 0 {
		out.OverComplete = true
		out.CompletedOver = m.ThisOver
		m.ThisOver = []string{}
	}

	return out
}

// ShouldEndInnings evaluates the termination condition after a resolved ball.
func ShouldEndInnings(m *Match) bool {
	score := m.ActiveInnings()
	if m.MaxWickets.Finite && score.Wickets >= m.MaxWickets.N {
		return true
	}
	if m.MaxOvers.Finite && score.Balls >= m.MaxOvers.N*6 {
		return true
	}
	if m.CurrentInnings == 2 && m.Target > 0 && score.Runs >= m.Target {
		return true
	}
	return false
}

// BeginSecondInnings snapshots the first innings into the target, resets the
// per-innings counters and swaps batsman and bowler.
func BeginSecondInnings(m *Match) {
	m.Target = m.Innings[0].Runs + 1
	m.CurrentInnings = 2
	m.ThisOver = []string{}
	m.foldOverScores()
	m.Batsman, m.Bowler = m.Bowler, m.Batsman
}

// foldOverScores rolls the tracked per-over totals into BestOverRuns and
// clears the map. Over indices restart at zero each innings.
func (m *Match) foldOverScores() {
	for _, runs := range m.OverScores {
		if runs > m.BestOverRuns {
			m.BestOverRuns = runs
		}
	}
	m.OverScores = map[int]int{}
}

// RunsNeeded returns the runs still required to reach the target. Meaningful
// only during innings 2.
func (m *Match) RunsNeeded() int {
	return m.Target - m.Innings[1].Runs
}

// BallsRemaining returns the deliveries left in the active innings and whether
// the over limit is finite at all.
func (m *Match) BallsRemaining() (int, bool) {
	if !m.MaxOvers.Finite {
		return 0, false
	}
	return m.MaxOvers.N*6 - m.ActiveInnings().Balls, true
}

// RequiredRate computes the runs-per-over rate the chase needs. The second
// return is false when the rate is undefined (unbounded overs or no balls left).
func (m *Match) RequiredRate() (float64, bool) {
	if m.CurrentInnings != 2 {
		return 0, false
	}
	ballsLeft, finite := m.BallsRemaining()
	if !finite || ballsLeft <= 0 {
		return 0, false
	}
	return float64(m.RunsNeeded()) * 6 / float64(ballsLeft), true
}

// ApplyModeDefaults sets the wicket/over bounds a mode mandates.
// Survival fixes one wicket with unbounded overs; Quick unbounds wickets;
// Classic leaves both for explicit selection.
func ApplyModeDefaults(m *Match, mode Mode) {
	m.Mode = mode
	switch mode {
	case ModeSurvival:
		m.MaxWickets = FiniteLimit(1)
		m.MaxOvers = NoLimit
	case ModeQuick:
		m.MaxWickets = NoLimit
	case ModeClassic:
		m.MaxWickets = NoLimit
		m.MaxOvers = NoLimit
	}
}
