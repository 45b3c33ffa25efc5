package nakama

import (
	"context"
	"database/sql"
	"time"

	json "github.com/goccy/go-json"
	"github.com/heroiclabs/nakama-common/runtime"

	"cricsaga/internal/app"
	"cricsaga/internal/config"
	"cricsaga/internal/domain"
	"cricsaga/internal/ports"
)

// MatchLabel is the JSON label indexed by Nakama's match listing.
type MatchLabel struct {
	Open  int    `json:"open"` // 1 when a second player can join
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"` // Cricket app service with game logic
	Match     *domain.Match               `json:"-"` // Authoritative match state (nil until the creator joins)
	Archive   ports.MatchArchive          `json:"-"` // Finished-match sink
	Done      bool                        `json:"done"`
}

// Client payloads. Every opcode carries a small JSON body.
type selectModeMsg struct {
	Mode string `json:"mode"`
}

type selectWicketsMsg struct {
	Wickets int `json:"wickets"`
}

type selectOversMsg struct {
	Overs int `json:"overs"`
}

type callTossMsg struct {
	Call string `json:"call"`
}

type chooseInningsMsg struct {
	Choice string `json:"choice"`
}

type ballNumberMsg struct {
	Number int `json:"number"`
}

type errorMsg struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newMatchHandler(archive ports.MatchArchive) *matchHandler {
	return &matchHandler{archive: archive}
}

type matchHandler struct {
	archive ports.MatchArchive
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if path, ok := envValue(ctx, "cricsaga_tuning_file"); ok {
		if err := config.LoadGameTuning(path); err != nil {
			logger.Warn("MatchInit: Could not load game tuning: %v", err)
		}
	}

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		Archive:   mh.archive,
	}

	labelBytes, err := json.Marshal(MatchLabel{Open: 0, Game: "cricsaga", Phase: string(domain.PhaseConfiguring)})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func envValue(ctx context.Context, key string) (string, bool) {
	env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if !ok {
		return "", false
	}
	val, ok := env[key]
	return val, ok
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Done {
		return state, false, "Match over"
	}

	// No match yet means the creator is arriving.
	if matchState.Match == nil {
		return state, true, ""
	}

	// Participants may always reconnect.
	if _, isPlayer := matchState.Match.PlayerByID(presence.GetUserId()); isPlayer {
		return state, true, ""
	}

	if matchState.Match.Phase != domain.PhaseAwaitingOpponent {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.Match == nil {
			matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
			creator := domain.Player{ID: p.GetUserId(), Name: p.GetUsername()}
			m, events := matchState.App.CreateMatch(matchID, creator, time.Now())
			matchState.Match = m
			logger.Info("MatchJoin: Match %s created by %s", m.DisplayID, creator.Name)
			mh.broadcastEvents(matchState, dispatcher, logger, events)
			continue
		}

		if _, isPlayer := matchState.Match.PlayerByID(p.GetUserId()); isPlayer {
			// Reconnect, resend the current view below.
			continue
		}

		joiner := domain.Player{ID: p.GetUserId(), Name: p.GetUsername()}
		events, err := matchState.App.Join(matchState.Match, joiner)
		if err != nil {
			logger.Warn("MatchJoin: User %s could not join: %v", p.GetUserId(), err)
			continue
		}
		logger.Info("MatchJoin: %s joined match %s", joiner.Name, matchState.Match.DisplayID)
		mh.broadcastEvents(matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastView(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		logger.Debug("MatchLeave: User %s left.", p.GetUserId())
	}

	// Keep the match alive for reconnects while anyone remains connected.
	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected players.")
		return nil
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpSelectMode:
			mh.handleSelectMode(ctx, matchState, dispatcher, logger, msg)
		case OpSelectWickets:
			mh.handleSelectWickets(ctx, matchState, dispatcher, logger, msg)
		case OpSelectOvers:
			mh.handleSelectOvers(ctx, matchState, dispatcher, logger, msg)
		case OpCallToss:
			mh.handleCallToss(ctx, matchState, dispatcher, logger, msg)
		case OpChooseInnings:
			mh.handleChooseInnings(ctx, matchState, dispatcher, logger, msg)
		case OpBat:
			mh.handleBat(ctx, matchState, dispatcher, logger, msg)
		case OpBowl:
			mh.handleBowl(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.Done {
		logger.Info("MatchLoop: Match complete, shutting down handler.")
		return nil
	}

	return matchState
}

func (mh *matchHandler) handleSelectMode(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req selectModeMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("SelectMode: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.SelectMode(state.Match, msg.GetUserId(), domain.Mode(req.Mode))
	})
}

func (mh *matchHandler) handleSelectWickets(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req selectWicketsMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("SelectWickets: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.SelectWickets(state.Match, msg.GetUserId(), req.Wickets)
	})
}

func (mh *matchHandler) handleSelectOvers(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req selectOversMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("SelectOvers: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.SelectOvers(state.Match, msg.GetUserId(), req.Overs)
	})
}

func (mh *matchHandler) handleCallToss(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req callTossMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("CallToss: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.CallToss(state.Match, msg.GetUserId(), domain.TossCall(req.Call))
	})
}

func (mh *matchHandler) handleChooseInnings(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req chooseInningsMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("ChooseInnings: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.ChooseInnings(state.Match, msg.GetUserId(), req.Choice)
	})
}

func (mh *matchHandler) handleBat(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req ballNumberMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("Bat: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.SubmitBatsmanNumber(state.Match, msg.GetUserId(), req.Number)
	})
}

func (mh *matchHandler) handleBowl(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var req ballNumberMsg
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("Bowl: Invalid payload from %s: %v", msg.GetUserId(), err)
		return
	}
	mh.applyAction(ctx, state, dispatcher, logger, msg.GetUserId(), func() ([]app.Event, error) {
		return state.App.SubmitBowlerNumber(state.Match, msg.GetUserId(), req.Number)
	})
}

// applyAction runs one app use-case and handles the shared aftermath: error
// reply on a rejected action, event fan-out, label and view refresh.
func (mh *matchHandler) applyAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, fn func() ([]app.Event, error)) {
	if state.Match == nil {
		logger.Warn("applyAction: No match in progress.")
		return
	}

	events, err := fn()
	if err != nil {
		logger.Warn("applyAction: User %s action rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Match.LastActionAt = time.Now()
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastView(state, dispatcher, logger)

	if state.Match.Phase == domain.PhaseCompleted {
		mh.archiveResult(ctx, state, logger, events)
		state.Done = true
	}
}

// archiveResult persists the finished match so scorecards survive the handler.
func (mh *matchHandler) archiveResult(ctx context.Context, state *MatchState, logger runtime.Logger, events []app.Event) {
	if state.Archive == nil {
		return
	}
	for _, ev := range events {
		if ev.Kind != app.EventMatchCompleted {
			continue
		}
		p := ev.Payload.(app.MatchCompletedPayload)
		rec := ports.NewMatchRecord(p.Summary, time.Now())
		if err := state.Archive.Save(ctx, rec); err != nil {
			logger.Error("archiveResult: Failed to save match record: %v", err)
		}
	}
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts one app event to its opcode and dispatches it.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64

	switch ev.Kind {
	case app.EventMatchCreated, app.EventModeSelected, app.EventSettingsSet, app.EventInningsStarted:
		opCode = OpStateUpdate
	case app.EventPlayerJoined:
		opCode = OpPlayerJoined
	case app.EventTossResult:
		opCode = OpTossResult
	case app.EventBatsmanReady:
		opCode = OpBatsmanReady
	case app.EventBallResolved:
		opCode = OpBallResolved
	case app.EventOverComplete:
		opCode = OpOverComplete
	case app.EventInningsBreak:
		opCode = OpInningsBreak
	case app.EventMatchCompleted:
		opCode = OpMatchCompleted
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// broadcastView sends the full state snapshot every player renders from.
func (mh *matchHandler) broadcastView(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Match == nil {
		return
	}

	bytes, err := json.Marshal(app.NewView(state.Match))
	if err != nil {
		logger.Error("Failed to marshal view: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateUpdate, bytes, nil, nil, true)
}

// sendError sends an error payload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(errorMsg{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error message: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label := MatchLabel{Game: "cricsaga", Phase: string(domain.PhaseConfiguring)}
	if state.Match != nil {
		label.Phase = string(state.Match.Phase)
		if state.Match.Phase == domain.PhaseAwaitingOpponent {
			label.Open = 1
		}
	}

	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
