package domain

import (
	"fmt"
	"time"
)

// Phase represents the lifecycle stage of a cricket match.
type Phase string

const (
	// PhaseConfiguring is the initial state where the creator picks mode and limits.
	PhaseConfiguring Phase = "configuring"
	// PhaseAwaitingOpponent is the joinable state after configuration completes.
	PhaseAwaitingOpponent Phase = "awaiting_opponent"
	// PhaseToss is the state where the designated player calls odd or even.
	PhaseToss Phase = "toss"
	// PhaseChoosingInnings is the state where the toss winner picks bat or bowl.
	PhaseChoosingInnings Phase = "choosing_innings"
	// PhaseInningsInProgress is the active play state.
	PhaseInningsInProgress Phase = "innings_in_progress"
	// PhaseInningsBreak is the transitional state between the two innings.
	PhaseInningsBreak Phase = "innings_break"
	// PhaseCompleted is the terminal state after the second innings closes.
	PhaseCompleted Phase = "completed"
)

// Mode identifies the match format, fixed at configuration time.
type Mode string

const (
	// ModeClassic has finite wickets and overs.
	ModeClassic Mode = "classic"
	// ModeQuick has unbounded wickets and finite overs.
	ModeQuick Mode = "quick"
	// ModeSurvival has exactly one wicket and unbounded overs.
	ModeSurvival Mode = "survival"
)

// ValidMode reports whether m names a known match mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModeClassic, ModeQuick, ModeSurvival:
		return true
	}
	return false
}

// Limit is a wicket or over bound that is either finite or unbounded.
// The zero value is unbounded.
type Limit struct {
	N      int  `json:"n"`
	Finite bool `json:"finite"`
}

// FiniteLimit returns a bounded limit of n.
func FiniteLimit(n int) Limit { return Limit{N: n, Finite: true} }

// NoLimit is the unbounded limit.
var NoLimit = Limit{}

// String renders the limit for display, using the infinity symbol when unbounded.
func (l Limit) String() string {
	if !l.Finite {
		return "∞"
	}
	return fmt.Sprintf("%d", l.N)
}

// Player identifies a match participant.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InningsScore holds the counters tracked separately per innings.
type InningsScore struct {
	Runs       int `json:"runs"`
	Wickets    int `json:"wickets"`
	Balls      int `json:"balls"`
	Boundaries int `json:"boundaries"`
	Sixes      int `json:"sixes"`
}

// Overs renders balls bowled as the conventional "overs.balls" form.
func (s InningsScore) Overs() string {
	return fmt.Sprintf("%d.%d", s.Balls/6, s.Balls%6)
}

// Line renders the innings as "runs/wickets (overs.balls)".
func (s InningsScore) Line() string {
	return fmt.Sprintf("%d/%d (%s)", s.Runs, s.Wickets, s.Overs())
}

// Match holds authoritative state for a single match instance.
type Match struct {
	ID        string `json:"id"`         // opaque instance id, unique among live matches
	DisplayID string `json:"display_id"` // human-facing id shown on scorecards

	Phase Phase `json:"phase"`
	Mode  Mode  `json:"mode"`

	MaxWickets Limit `json:"max_wickets"`
	MaxOvers   Limit `json:"max_overs"`

	Creator Player  `json:"creator"`
	Joiner  *Player `json:"joiner,omitempty"`

	// ChoosingPlayer is the id entitled to call odd/even at the toss.
	ChoosingPlayer string `json:"choosing_player,omitempty"`
	TossWinner     string `json:"toss_winner,omitempty"`

	CurrentInnings int             `json:"current_innings"` // 1 or 2
	Innings        [2]InningsScore `json:"innings"`
	DotBalls       int             `json:"dot_balls"`

	// ThisOver is the outcome sequence of the over in progress, reset every 6 balls.
	ThisOver []string `json:"this_over"`
	// OverScores maps over index within the active innings to runs conceded in it.
	OverScores map[int]int `json:"over_scores"`
	// BestOverRuns is the highest single-over total seen across both innings.
	BestOverRuns int `json:"best_over_runs"`

	// Target is set only on entry to innings 2: first-innings runs + 1.
	Target int `json:"target,omitempty"`

	// PendingBat is the batsman's submitted number awaiting the bowler, nil otherwise.
	PendingBat *int `json:"pending_bat,omitempty"`

	Batsman Player `json:"batsman"`
	Bowler  Player `json:"bowler"`

	CreatedAt    time.Time `json:"created_at"`
	LastActionAt time.Time `json:"last_action_at"`
}

// ActiveInnings returns the counters for the innings currently in play.
func (m *Match) ActiveInnings() *InningsScore {
	if m.CurrentInnings == 2 {
		return &m.Innings[1]
	}
	return &m.Innings[0]
}

// PlayerByID resolves a participant id to its Player record.
func (m *Match) PlayerByID(id string) (Player, bool) {
	if m.Creator.ID == id {
		return m.Creator, true
	}
	if m.Joiner != nil && m.Joiner.ID == id {
		return *m.Joiner, true
	}
	return Player{}, false
}

// Opponent returns whichever of the two participants id is not.
func (m *Match) Opponent(id string) Player {
	if m.Creator.ID == id && m.Joiner != nil {
		return *m.Joiner
	}
	return m.Creator
}

// NewMatch initializes a zeroed match in the configuring phase.
func NewMatch(id, displayID string, creator Player, now time.Time) *Match {
	return &Match{
		ID:             id,
		DisplayID:      displayID,
		Phase:          PhaseConfiguring,
		Creator:        creator,
		CurrentInnings: 1,
		ThisOver:       []string{},
		OverScores:     map[int]int{},
		CreatedAt:      now,
		LastActionAt:   now,
	}
}
