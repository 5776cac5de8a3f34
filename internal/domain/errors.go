package domain

import "errors"

var (
	ErrWrongPhase     = errors.New("action not allowed in current phase")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNotPresident   = errors.New("only the president may do this")
	ErrInvalidSeat    = errors.New("invalid seat")
	ErrTableFull      = errors.New("table already has five players")
	ErrTableNotFull   = errors.New("table needs five players")
	ErrDealExhausted  = errors.New("no playable deal found within retry limit")
	ErrBiddingStarted = errors.New("bidding already started")

	ErrBidOutOfRange = errors.New("bid must be between 13 and 20")
	ErrBidTooLow     = errors.New("bid must exceed the current bid")
	ErrSuitRequired  = errors.New("a trump suit is required")

	ErrDiscardCount     = errors.New("exactly three cards must be discarded")
	ErrDiscardNotOwned  = errors.New("discarded card not in hand or kitty")
	ErrDuplicateDiscard = errors.New("same card discarded twice")
	ErrModifyIncrement  = errors.New("revised bid must be at least two higher or exactly 20")

	ErrInvalidFriendCard     = errors.New("invalid friend card")
	ErrFriendCardUnavailable = errors.New("friend card is held by the president or discarded")

	ErrCardNotOwned      = errors.New("card not in hand")
	ErrMustFollowSuit    = errors.New("must follow the leading suit")
	ErrMustPlayJoker     = errors.New("joker was called and must be played")
	ErrJokerSuitRequired = errors.New("leading joker must name a suit")
)
