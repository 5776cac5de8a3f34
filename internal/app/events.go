package app

import "mighty/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted     EventKind = "game_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventBidPlaced       EventKind = "bid_placed"
	EventBiddingResolved EventKind = "bidding_resolved"
	EventKittyRevealed   EventKind = "kitty_revealed"
	EventCardsDiscarded  EventKind = "cards_discarded"
	EventBidFinalized    EventKind = "bid_finalized"
	EventFriendSelected  EventKind = "friend_selected"
	EventCardPlayed      EventKind = "card_played"
	EventFriendRevealed  EventKind = "friend_revealed"
	EventTrickCompleted  EventKind = "trick_completed"
	EventGameEnded       EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // seats; empty means broadcast
}

// Private reports whether the event must only reach its recipients.
func (e Event) Private() bool { return len(e.Recipients) > 0 }

type GameStartedPayload struct {
	DealID      string
	FirstPlayer int
	Phase       domain.Phase
}

type HandDealtPayload struct {
	Seat int
	Hand []domain.Card
}

type BidPlacedPayload struct {
	Seat     int
	Score    int // 0 is a pass
	Suit     domain.Suit
	NextTurn int
}

type BiddingResolvedPayload struct {
	President int
	Bid       domain.Bid
}

type KittyRevealedPayload struct {
	Seat  int
	Kitty []domain.Card
}

type CardsDiscardedPayload struct {
	Seat int
}

type BidFinalizedPayload struct {
	President int
	Bid       domain.Bid
}

type FriendSelectedPayload struct {
	President  int
	FriendCard *domain.Card // nil when playing alone
}

type CardPlayedPayload struct {
	Seat      int
	Card      domain.Card
	JokerSuit domain.Suit
	JokerCall bool
	NextTurn  int
}

type FriendRevealedPayload struct {
	Seat int
}

type TrickCompletedPayload struct {
	Trick  domain.Trick
	Number int
}

type GameEndedPayload struct {
	Settlement domain.Settlement
	Scores     [domain.NumPlayers]int
}
