package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an open table.
	RpcQuickMatch = "quick_match"

	// RpcListRooms returns the tables currently advertised by the server.
	RpcListRooms = "list_rooms"

	// MatchNameMighty is the authoritative match handler name registered with Nakama.
	MatchNameMighty = "mighty_match"

	// gameLabel identifies Mighty tables in match labels.
	gameLabel = "mighty"

	// gameConfigPath is read once by the first match.
	gameConfigPath = "data/game_config.json"

	// tickRate is the number of MatchLoop calls per second.
	tickRate = 5
)

// Match label keys.
const (
	labelKeyOpen   = "open"
	labelKeyGame   = "game"
	labelKeyPhase  = "phase"
	labelKeySeated = "seated"

	labelPhaseLobby = "lobby"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpReady        int64 = 1
	OpBid          int64 = 2
	OpDiscard      int64 = 3
	OpModifyBid    int64 = 4
	OpSelectFriend int64 = 5
	OpPlayCard     int64 = 6
	OpNextDeal     int64 = 7

	// Server -> Client events
	OpLobbyState      int64 = 100
	OpStateSnapshot   int64 = 101 // per seat, redacted
	OpSeatToken       int64 = 102 // send privately
	OpError           int64 = 103 // send privately
	OpGameStarted     int64 = 110
	OpHandDealt       int64 = 111 // send privately
	OpBidPlaced       int64 = 112
	OpBiddingResolved int64 = 113
	OpKittyRevealed   int64 = 114 // send privately
	OpCardsDiscarded  int64 = 115
	OpBidFinalized    int64 = 116
	OpFriendSelected  int64 = 117
	OpCardPlayed      int64 = 118
	OpFriendRevealed  int64 = 119
	OpTrickCompleted  int64 = 120
	OpGameEnded       int64 = 121
)

// Settlement storage and wallet settings.
const (
	settlementCollection = "mighty_settlements"
	walletCurrency       = "gold"
	seatTokenMetadataKey = "seat_token"
)
