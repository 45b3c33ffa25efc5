package app

import (
	"fmt"
	"math/rand"
	"time"

	"cricsaga/internal/config"
	"cricsaga/internal/domain"
)

// Service contains the match use-cases operating on domain state. Every
// method either fully applies to the match or fails a guard and leaves the
// match untouched.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// GenerateDisplayID produces the human-facing match id shown on scorecards.
func (s *Service) GenerateDisplayID(now time.Time) string {
	return fmt.Sprintf("M%d%04d", now.Unix(), s.rng.Intn(9000)+1000)
}

// CreateMatch initializes a zeroed match in the configuring phase.
func (s *Service) CreateMatch(id string, creator domain.Player, now time.Time) (*domain.Match, []Event) {
	m := domain.NewMatch(id, s.GenerateDisplayID(now), creator, now)
	events := []Event{{
		Kind: EventMatchCreated,
		Payload: MatchCreatedPayload{
			MatchID:     m.ID,
			DisplayID:   m.DisplayID,
			CreatorName: creator.Name,
		},
	}}
	return m, events
}

// SelectMode fixes the match format and applies its default bounds.
// Survival needs no further settings and becomes joinable immediately.
func (s *Service) SelectMode(m *domain.Match, actorID string, mode domain.Mode) ([]Event, error) {
	if m.Phase != domain.PhaseConfiguring {
		return nil, ErrPhaseViolation
	}
	if actorID != m.Creator.ID {
		return nil, ErrTurnViolation
	}
	if !domain.ValidMode(mode) {
		return nil, ErrRangeViolation
	}

	domain.ApplyModeDefaults(m, mode)

	joinable := mode == domain.ModeSurvival
	if joinable {
		m.Phase = domain.PhaseAwaitingOpponent
	}

	return []Event{{
		Kind: EventModeSelected,
		Payload: ModeSelectedPayload{
			Mode:       mode,
			MaxWickets: m.MaxWickets.String(),
			MaxOvers:   m.MaxOvers.String(),
			Joinable:   joinable,
		},
	}}, nil
}

// SelectWickets sets the wicket bound. Classic mode only.
func (s *Service) SelectWickets(m *domain.Match, actorID string, n int) ([]Event, error) {
	if m.Phase != domain.PhaseConfiguring || m.Mode != domain.ModeClassic {
		return nil, ErrPhaseViolation
	}
	if actorID != m.Creator.ID {
		return nil, ErrTurnViolation
	}
	if n < 1 || n > config.WicketCap() {
		return nil, ErrRangeViolation
	}

	m.MaxWickets = domain.FiniteLimit(n)

	return []Event{{
		Kind: EventSettingsSet,
		Payload: SettingsSetPayload{
			MaxWickets: m.MaxWickets.String(),
			MaxOvers:   m.MaxOvers.String(),
		},
	}}, nil
}

// SelectOvers sets the over bound and marks the match joinable. Classic mode
// requires wickets to have been chosen first.
func (s *Service) SelectOvers(m *domain.Match, actorID string, n int) ([]Event, error) {
	if m.Phase != domain.PhaseConfiguring || m.Mode == domain.ModeSurvival || m.Mode == "" {
		return nil, ErrPhaseViolation
	}
	if m.Mode == domain.ModeClassic && !m.MaxWickets.Finite {
		return nil, ErrPhaseViolation
	}
	if actorID != m.Creator.ID {
		return nil, ErrTurnViolation
	}
	if n < 1 || n > config.OverCap() {
		return nil, ErrRangeViolation
	}

	m.MaxOvers = domain.FiniteLimit(n)
	m.Phase = domain.PhaseAwaitingOpponent

	return []Event{{
		Kind: EventSettingsSet,
		Payload: SettingsSetPayload{
			MaxWickets: m.MaxWickets.String(),
			MaxOvers:   m.MaxOvers.String(),
			Joinable:   true,
		},
	}}, nil
}

// Join adds the second participant and designates them as the toss caller.
func (s *Service) Join(m *domain.Match, joiner domain.Player) ([]Event, error) {
	if m.Phase != domain.PhaseAwaitingOpponent {
		return nil, ErrPhaseViolation
	}
	if joiner.ID == m.Creator.ID || m.Joiner != nil {
		return nil, ErrDuplicateJoin
	}

	m.Joiner = &joiner
	m.ChoosingPlayer = joiner.ID
	m.Phase = domain.PhaseToss

	return []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			JoinerName:  joiner.Name,
			ChooserName: joiner.Name,
		},
	}}, nil
}

// CallToss rolls two dice and resolves the toss winner from the sum's parity.
func (s *Service) CallToss(m *domain.Match, actorID string, call domain.TossCall) ([]Event, error) {
	if m.Phase != domain.PhaseToss {
		return nil, ErrPhaseViolation
	}
	if actorID != m.ChoosingPlayer {
		return nil, ErrTurnViolation
	}
	if !domain.ValidTossCall(call) {
		return nil, ErrRangeViolation
	}

	result := domain.RollToss(s.rng, call)
	winner, _ := m.PlayerByID(actorID)
	if !result.CallCorrect {
		winner = m.Opponent(actorID)
	}

	m.TossWinner = winner.ID
	m.Phase = domain.PhaseChoosingInnings

	caller, _ := m.PlayerByID(actorID)
	return []Event{{
		Kind: EventTossResult,
		Payload: TossResultPayload{
			Result:     result,
			Call:       call,
			CallerName: caller.Name,
			WinnerID:   winner.ID,
			WinnerName: winner.Name,
		},
	}}, nil
}

// ChooseInnings assigns batsman and bowler from the toss winner's choice and
// starts the first innings.
func (s *Service) ChooseInnings(m *domain.Match, actorID, choice string) ([]Event, error) {
	if m.Phase != domain.PhaseChoosingInnings {
		return nil, ErrPhaseViolation
	}
	if actorID != m.TossWinner {
		return nil, ErrTurnViolation
	}
	if choice != "bat" && choice != "bowl" {
		return nil, ErrRangeViolation
	}

	winner, _ := m.PlayerByID(m.TossWinner)
	other := m.Opponent(m.TossWinner)
	if choice == "bat" {
		m.Batsman, m.Bowler = winner, other
	} else {
		m.Batsman, m.Bowler = other, winner
	}
	m.Phase = domain.PhaseInningsInProgress

	return []Event{{
		Kind: EventInningsStarted,
		Payload: InningsStartedPayload{
			Innings:     1,
			BatsmanName: m.Batsman.Name,
			BowlerName:  m.Bowler.Name,
		},
	}}, nil
}

// SubmitBatsmanNumber records the batsman's hidden pick for the next ball.
func (s *Service) SubmitBatsmanNumber(m *domain.Match, actorID string, n int) ([]Event, error) {
	if m.Phase != domain.PhaseInningsInProgress {
		return nil, ErrPhaseViolation
	}
	if actorID != m.Batsman.ID {
		return nil, ErrTurnViolation
	}
	if m.PendingBat != nil {
		return nil, ErrPhaseViolation
	}
	if n < MinBallNumber || n > MaxBallNumber {
		return nil, ErrRangeViolation
	}

	m.PendingBat = &n

	// The pick stays hidden from the bowler: the event carries names only.
	return []Event{{
		Kind: EventBatsmanReady,
		Payload: BatsmanReadyPayload{
			BatsmanName: m.Batsman.Name,
			BowlerName:  m.Bowler.Name,
		},
	}}, nil
}

// SubmitBowlerNumber resolves the pending ball and runs the termination
// check, possibly closing the innings or the match.
func (s *Service) SubmitBowlerNumber(m *domain.Match, actorID string, n int) ([]Event, error) {
	if m.Phase != domain.PhaseInningsInProgress {
		return nil, ErrPhaseViolation
	}
	if actorID != m.Bowler.ID {
		return nil, ErrTurnViolation
	}
	if m.PendingBat == nil {
		return nil, ErrPhaseViolation
	}
	if n < MinBallNumber || n > MaxBallNumber {
		return nil, ErrRangeViolation
	}

	batNum := *m.PendingBat
	out := domain.ResolveBall(m, batNum, n)

	score := *m.ActiveInnings()
	ball := BallResolvedPayload{
		Symbol:   out.Symbol,
		Wicket:   out.Wicket,
		Runs:     out.Runs,
		BatNum:   batNum,
		BowlNum:  n,
		Score:    score,
		ThisOver: append([]string{}, m.ThisOver...),
	}
	if m.CurrentInnings == 2 {
		ball.RunsNeeded = m.RunsNeeded()
		ball.BallsLeft, _ = m.BallsRemaining()
		ball.RequiredRate, ball.RateDefined = m.RequiredRate()
	}
	events := []Event{{Kind: EventBallResolved, Payload: ball}}

	if out.OverComplete {
		events = append(events, Event{
			Kind:    EventOverComplete,
			Payload: OverCompletePayload{Sequence: out.CompletedOver, Score: score},
		})
	}

	if !domain.ShouldEndInnings(m) {
		return events, nil
	}

	if m.CurrentInnings == 1 {
		m.Phase = domain.PhaseInningsBreak
		firstInnings := m.Innings[0].Line()
		domain.BeginSecondInnings(m)
		m.Phase = domain.PhaseInningsInProgress
		events = append(events, Event{
			Kind: EventInningsBreak,
			Payload: InningsBreakPayload{
				FirstInnings: firstInnings,
				Target:       m.Target,
				BatsmanName:  m.Batsman.Name,
				BowlerName:   m.Bowler.Name,
			},
		})
		return events, nil
	}

	m.Phase = domain.PhaseCompleted
	events = append(events, Event{
		Kind:    EventMatchCompleted,
		Payload: MatchCompletedPayload{Summary: domain.ComputeSummary(m)},
	})
	return events, nil
}
