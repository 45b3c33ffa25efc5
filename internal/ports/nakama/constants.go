package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a joinable match.
	RpcQuickMatch = "quick_match"

	// RPC ids for the scorecard archive.
	RpcScorecardList   = "scorecard_list"
	RpcScorecardGet    = "scorecard_get"
	RpcScorecardDelete = "scorecard_delete"

	// MatchNameCricket is the authoritative match handler name registered with Nakama.
	MatchNameCricket = "cricsaga_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSelectMode    int64 = 1
	OpSelectWickets int64 = 2
	OpSelectOvers   int64 = 3
	OpCallToss      int64 = 4
	OpChooseInnings int64 = 5
	OpBat           int64 = 6
	OpBowl          int64 = 7

	// Server -> Client events
	OpPlayerJoined   int64 = 101
	OpStateUpdate    int64 = 102
	OpTossResult     int64 = 103
	OpBatsmanReady   int64 = 104
	OpBallResolved   int64 = 105
	OpOverComplete   int64 = 106
	OpInningsBreak   int64 = 107
	OpMatchCompleted int64 = 108
	OpGameError      int64 = 109
)
