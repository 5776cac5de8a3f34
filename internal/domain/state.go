package domain

// Phase represents the lifecycle stage of a deal.
type Phase string

const (
	// PhaseBidding is the contract auction.
	PhaseBidding Phase = "bidding"
	// PhaseDiscarding is the president's kitty exchange.
	PhaseDiscarding Phase = "discarding"
	// PhaseModifyBid lets the president raise the final contract.
	PhaseModifyBid Phase = "modify_bid"
	// PhaseFriendSelection is where the president names a friend card.
	PhaseFriendSelection Phase = "friend_selection"
	// PhasePlaying is trick play.
	PhasePlaying Phase = "playing"
	// PhaseGameOver follows the last trick; scores are settled.
	PhaseGameOver Phase = "game_over"
)

const (
	// NumPlayers is the fixed table size.
	NumPlayers = 5
	// MinBid is the lowest contract score.
	MinBid = 13
	// MaxBid is the highest contract score.
	MaxBid = 20
	// ModifyBidStep is the minimum raise when revising the final bid.
	ModifyBidStep = 2
	// NoSeat marks an unset seat reference.
	NoSeat = -1
)

// Player holds per-seat state.
type Player struct {
	Name   string
	Hand   []Card
	Points int // trick points this deal
	Score  int // cumulative score across deals
}

// Bid is one entry of the bidding history. A pass has Score 0 and NoSuit.
type Bid struct {
	Seat  int
	Score int
	Suit  Suit
}

// IsPass reports whether b records a pass.
func (b Bid) IsPass() bool { return b.Suit == NoSuit }

// PlayOptions carries the optional choices attached to a play.
type PlayOptions struct {
	// JokerSuit is the suit called when leading the joker.
	JokerSuit Suit
	// CallJoker triggers a joker call when leading the Clover 3.
	CallJoker bool
}

// PlayedCard is a card in a trick together with its seat.
type PlayedCard struct {
	Seat int
	Card Card
}

// Trick is a completed trick.
type Trick struct {
	Leader     int
	Cards      []PlayedCard
	LeadSuit   Suit
	JokerCall  bool
	Winner     int
	PointCards int
}

// Settlement is the end-of-deal scoring outcome.
type Settlement struct {
	President   int
	Friend      int // NoSeat when the president played alone
	BidScore    int
	TeamScore   int
	DeclarerWon bool
	Base        int
	Deltas      [NumPlayers]int
}

// SeatState is the per-seat part of a snapshot.
type SeatState struct {
	Name      string
	Hand      []Card
	HandCount int
	Points    int
	Score     int
}

// GameState is a read-only snapshot of a Game.
type GameState struct {
	Phase        Phase
	CurrentTurn  int
	FirstPlayer  int
	President    int
	Trump        Suit
	CurrentBid   *Bid
	CurrentTrick []Card
	TrickLeader  int
	JokerSuit    Suit
	JokerCall    bool
	FriendCard   *Card
	Friend       int
	Seats        []SeatState
	Kitty        []Card // Discarding phase only
	Discarded    []Card // Discarding phase only
	LastTrick    *Trick
	TricksPlayed int
	Settlement   *Settlement
}

// BidState summarizes the auction.
type BidState struct {
	CurrentTurn int
	CurrentBid  *Bid
	PassCount   int
	Passed      []int
	History     []Bid
}
