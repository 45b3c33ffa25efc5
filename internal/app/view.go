package app

import "cricsaga/internal/domain"

// Prompt names the input the next actor owes. Presentation of prompts is the
// notifier's concern; the core only states which one applies.
type Prompt string

const (
	PromptSelectMode    Prompt = "select_mode"
	PromptSelectWickets Prompt = "select_wickets"
	PromptSelectOvers   Prompt = "select_overs"
	PromptJoin          Prompt = "join"
	PromptCallToss      Prompt = "call_toss"
	PromptChooseInnings Prompt = "choose_innings"
	PromptBat           Prompt = "bat"
	PromptBowl          Prompt = "bowl"
	PromptNone          Prompt = ""
)

// View is the read-only status snapshot produced after each successful
// action. It is plain data; the notifier owns formatting and delivery.
type View struct {
	MatchID   string       `json:"match_id"`
	DisplayID string       `json:"display_id"`
	Phase     domain.Phase `json:"phase"`
	Mode      domain.Mode  `json:"mode"`

	MaxWickets string `json:"max_wickets"`
	MaxOvers   string `json:"max_overs"`

	Creator domain.Player  `json:"creator"`
	Joiner  *domain.Player `json:"joiner,omitempty"`

	CurrentInnings int                    `json:"current_innings"`
	Innings        [2]domain.InningsScore `json:"innings"`
	ThisOver       []string               `json:"this_over"`

	Batsman domain.Player `json:"batsman"`
	Bowler  domain.Player `json:"bowler"`

	Target       int     `json:"target,omitempty"`
	RunsNeeded   int     `json:"runs_needed,omitempty"`
	BallsLeft    int     `json:"balls_left,omitempty"`
	RequiredRate float64 `json:"required_rate,omitempty"`
	RateDefined  bool    `json:"rate_defined,omitempty"`

	// AwaitingBowler is true when a batting number is pending resolution.
	AwaitingBowler bool `json:"awaiting_bowler"`

	NextActorID   string `json:"next_actor_id,omitempty"`
	NextActorName string `json:"next_actor_name,omitempty"`
	Prompt        Prompt `json:"prompt,omitempty"`
}

// NewView snapshots a match for delivery. The pending batsman number is never
// included; only its presence is observable.
func NewView(m *domain.Match) View {
	v := View{
		MatchID:        m.ID,
		DisplayID:      m.DisplayID,
		Phase:          m.Phase,
		Mode:           m.Mode,
		MaxWickets:     m.MaxWickets.String(),
		MaxOvers:       m.MaxOvers.String(),
		Creator:        m.Creator,
		Joiner:         m.Joiner,
		CurrentInnings: m.CurrentInnings,
		Innings:        m.Innings,
		ThisOver:       append([]string{}, m.ThisOver...),
		Batsman:        m.Batsman,
		Bowler:         m.Bowler,
		Target:         m.Target,
		AwaitingBowler: m.PendingBat != nil,
	}

	if m.CurrentInnings == 2 && m.Phase == domain.PhaseInningsInProgress {
		v.RunsNeeded = m.RunsNeeded()
		v.BallsLeft, _ = m.BallsRemaining()
		v.RequiredRate, v.RateDefined = m.RequiredRate()
	}

	v.NextActorID, v.NextActorName, v.Prompt = nextActor(m)
	return v
}

func nextActor(m *domain.Match) (string, string, Prompt) {
	switch m.Phase {
	case domain.PhaseConfiguring:
		prompt := PromptSelectMode
		if m.Mode == domain.ModeClassic {
			prompt = PromptSelectWickets
			if m.MaxWickets.Finite {
				prompt = PromptSelectOvers
			}
		} else if m.Mode == domain.ModeQuick {
			prompt = PromptSelectOvers
		}
		return m.Creator.ID, m.Creator.Name, prompt
	case domain.PhaseAwaitingOpponent:
		return "", "", PromptJoin
	case domain.PhaseToss:
		p, _ := m.PlayerByID(m.ChoosingPlayer)
		return p.ID, p.Name, PromptCallToss
	case domain.PhaseChoosingInnings:
		p, _ := m.PlayerByID(m.TossWinner)
		return p.ID, p.Name, PromptChooseInnings
	case domain.PhaseInningsInProgress:
		if m.PendingBat != nil {
			return m.Bowler.ID, m.Bowler.Name, PromptBowl
		}
		return m.Batsman.ID, m.Batsman.Name, PromptBat
	default:
		return "", "", PromptNone
	}
}
