package app

import "cricsaga/internal/domain"

// EventKind identifies emitted match events for notifier dispatch.
type EventKind string

const (
	EventMatchCreated   EventKind = "match_created"
	EventModeSelected   EventKind = "mode_selected"
	EventSettingsSet    EventKind = "settings_set"
	EventPlayerJoined   EventKind = "player_joined"
	EventTossResult     EventKind = "toss_result"
	EventInningsStarted EventKind = "innings_started"
	EventBatsmanReady   EventKind = "batsman_ready"
	EventBallResolved   EventKind = "ball_resolved"
	EventOverComplete   EventKind = "over_complete"
	EventInningsBreak   EventKind = "innings_break"
	EventMatchCompleted EventKind = "match_completed"
)

// Event is a match event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user ids; empty means broadcast
}

type MatchCreatedPayload struct {
	MatchID     string
	DisplayID   string
	CreatorName string
}

type ModeSelectedPayload struct {
	Mode       domain.Mode
	MaxWickets string
	MaxOvers   string
	// Joinable is true when the mode needs no further settings.
	Joinable bool
}

type SettingsSetPayload struct {
	MaxWickets string
	MaxOvers   string
	Joinable   bool
}

type PlayerJoinedPayload struct {
	JoinerName string
	// ChooserName is the player who now calls odd or even.
	ChooserName string
}

type TossResultPayload struct {
	Result     domain.TossResult
	Call       domain.TossCall
	CallerName string
	WinnerID   string
	WinnerName string
}

type InningsStartedPayload struct {
	Innings     int
	BatsmanName string
	BowlerName  string
}

type BatsmanReadyPayload struct {
	BatsmanName string
	BowlerName  string
}

type BallResolvedPayload struct {
	Symbol  string
	Wicket  bool
	Runs    int
	BatNum  int
	BowlNum int
	Score   domain.InningsScore
	// ThisOver is the sequence after this ball (empty right after a rollover).
	ThisOver []string
	// Chase fields are meaningful during innings 2 only.
	RunsNeeded   int
	BallsLeft    int
	RequiredRate float64
	RateDefined  bool
}

type OverCompletePayload struct {
	Sequence []string
	Score    domain.InningsScore
}

type InningsBreakPayload struct {
	FirstInnings string
	Target       int
	BatsmanName  string
	BowlerName   string
}

type MatchCompletedPayload struct {
	Summary domain.Summary
}
