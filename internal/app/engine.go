package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cricsaga/internal/domain"
	"cricsaga/internal/ports"
)

// Notifier delivers a rendered status snapshot to the match's participants
// after every state transition. Delivery, retries and formatting are the
// implementation's concern.
type Notifier interface {
	Deliver(ctx context.Context, v View, events []Event) error
}

// NoopNotifier discards all deliveries.
type NoopNotifier struct{}

func (NoopNotifier) Deliver(context.Context, View, []Event) error { return nil }

// Engine owns the lifecycle of match instances from creation to disposal.
// It fronts the Service with the session directory, notifier and archive
// collaborators: every action is looked up, applied atomically, persisted,
// and announced.
type Engine struct {
	svc      *Service
	dir      ports.SessionDirectory
	archive  ports.MatchArchive
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewEngine wires the engine with its collaborators. A nil notifier is
// replaced with NoopNotifier.
func NewEngine(svc *Service, dir ports.SessionDirectory, archive ports.MatchArchive, notifier Notifier, log zerolog.Logger) *Engine {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Engine{
		svc:      svc,
		dir:      dir,
		archive:  archive,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// CreateMatch registers a new match in the configuring phase.
func (e *Engine) CreateMatch(ctx context.Context, creatorID, creatorName string) (View, error) {
	now := e.now()
	m, events := e.svc.CreateMatch(uuid.NewString(), domain.Player{ID: creatorID, Name: creatorName}, now)

	if err := e.dir.Create(ctx, m); err != nil {
		return View{}, err
	}

	v := NewView(m)
	e.deliver(ctx, v, events)
	return v, nil
}

// SelectMode fixes the match format.
func (e *Engine) SelectMode(ctx context.Context, matchID, actorID string, mode domain.Mode) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.SelectMode(m, actorID, mode)
	})
}

// SelectWickets sets the wicket bound for classic mode.
func (e *Engine) SelectWickets(ctx context.Context, matchID, actorID string, n int) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.SelectWickets(m, actorID, n)
	})
}

// SelectOvers sets the over bound and opens the match for joining.
func (e *Engine) SelectOvers(ctx context.Context, matchID, actorID string, n int) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.SelectOvers(m, actorID, n)
	})
}

// Join adds the second participant.
func (e *Engine) Join(ctx context.Context, matchID, joinerID, joinerName string) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.Join(m, domain.Player{ID: joinerID, Name: joinerName})
	})
}

// CallToss resolves the toss from the caller's parity guess.
func (e *Engine) CallToss(ctx context.Context, matchID, actorID string, call domain.TossCall) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.CallToss(m, actorID, call)
	})
}

// ChooseInnings applies the toss winner's bat-or-bowl choice.
func (e *Engine) ChooseInnings(ctx context.Context, matchID, actorID, choice string) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.ChooseInnings(m, actorID, choice)
	})
}

// SubmitBatsmanNumber records the batsman's pick for the next ball.
func (e *Engine) SubmitBatsmanNumber(ctx context.Context, matchID, actorID string, n int) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.SubmitBatsmanNumber(m, actorID, n)
	})
}

// SubmitBowlerNumber resolves the pending ball.
func (e *Engine) SubmitBowlerNumber(ctx context.Context, matchID, actorID string, n int) (View, error) {
	return e.apply(ctx, matchID, func(m *domain.Match) ([]Event, error) {
		return e.svc.SubmitBowlerNumber(m, actorID, n)
	})
}

// apply runs one action as an indivisible step: guard failures return the
// error with the match untouched; successes are saved, announced, and, on
// completion, archived and removed from the directory.
func (e *Engine) apply(ctx context.Context, matchID string, fn func(*domain.Match) ([]Event, error)) (View, error) {
	m, err := e.dir.Lookup(ctx, matchID)
	if err != nil {
		return View{}, ErrMatchNotFound
	}

	events, err := fn(m)
	if err != nil {
		return View{}, err
	}

	m.LastActionAt = e.now()
	if err := e.dir.Save(ctx, m); err != nil {
		e.log.Error().Err(err).Str("match_id", m.ID).Msg("directory save failed")
	}

	v := NewView(m)
	e.deliver(ctx, v, events)

	if m.Phase == domain.PhaseCompleted {
		e.finish(ctx, m, events)
	}

	return v, nil
}

// finish archives the completed match and disposes of the live instance.
// The instance is removed even when the archive write fails.
func (e *Engine) finish(ctx context.Context, m *domain.Match, events []Event) {
	for _, ev := range events {
		if ev.Kind != EventMatchCompleted {
			continue
		}
		p := ev.Payload.(MatchCompletedPayload)
		rec := ports.NewMatchRecord(p.Summary, e.now())
		if err := e.archive.Save(ctx, rec); err != nil {
			e.log.Error().Err(err).Str("match_id", m.ID).Msg("archive save failed")
		}
	}

	if err := e.dir.Remove(ctx, m.ID); err != nil {
		e.log.Error().Err(err).Str("match_id", m.ID).Msg("directory remove failed")
	}
}

func (e *Engine) deliver(ctx context.Context, v View, events []Event) {
	if err := e.notifier.Deliver(ctx, v, events); err != nil {
		e.log.Warn().Err(err).Str("match_id", v.MatchID).Msg("notifier delivery failed")
	}
}

// Stats summarizes the live directory for admin inspection.
type Stats struct {
	ActiveMatches int
	ByPhase       map[domain.Phase]int
}

// Stats reports active-match counts grouped by phase.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	matches, err := e.dir.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{ActiveMatches: len(matches), ByPhase: make(map[domain.Phase]int)}
	for _, m := range matches {
		s.ByPhase[m.Phase]++
	}
	return s, nil
}

// StopMatches clears every live match and returns how many were removed.
func (e *Engine) StopMatches(ctx context.Context) (int, error) {
	matches, err := e.dir.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, m := range matches {
		if err := e.dir.Remove(ctx, m.ID); err != nil {
			e.log.Error().Err(err).Str("match_id", m.ID).Msg("stop: remove failed")
			continue
		}
		removed++
	}
	return removed, nil
}

// SweepIdle removes matches whose last action is older than ttl. It backs the
// optional janitor; the core itself imposes no timeout policy.
func (e *Engine) SweepIdle(ctx context.Context, ttl time.Duration) (int, error) {
	matches, err := e.dir.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := e.now().Add(-ttl)
	removed := 0
	for _, m := range matches {
		if m.LastActionAt.After(cutoff) {
			continue
		}
		if err := e.dir.Remove(ctx, m.ID); err != nil {
			e.log.Error().Err(err).Str("match_id", m.ID).Msg("sweep: remove failed")
			continue
		}
		removed++
	}
	return removed, nil
}
