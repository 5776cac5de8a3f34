package domain

import (
	"math/rand"
)

// DefaultMaxDealAttempts bounds the reshuffle-and-redeal loop.
const DefaultMaxDealAttempts = 10000

// GameParams parameterizes engine limits. Rules themselves are fixed.
type GameParams struct {
	MaxDealAttempts int
}

// Game is the authoritative state of one Mighty table. It is not safe for
// concurrent use; the owning room must serialize calls.
type Game struct {
	params  GameParams
	players []*Player

	phase       Phase
	deck        []Card
	kitty       []Card
	discarded   []Card
	currentTurn int
	firstPlayer int

	// bidding
	trump      Suit
	president  int
	currentBid *Bid
	bidHistory []Bid
	passed     [NumPlayers]bool
	passCount  int

	// friend
	friendCard *Card
	friend     int

	// trick in progress
	trick       []PlayedCard
	trickLeader int
	jokerSuit   Suit
	jokerCall   bool
	tricks      []Trick

	settlement *Settlement
}

// NewGame returns an empty table in the bidding phase.
func NewGame(params GameParams) *Game {
	if params.MaxDealAttempts <= 0 {
		params.MaxDealAttempts = DefaultMaxDealAttempts
	}
	g := &Game{params: params}
	g.clearDeal()
	return g
}

// AddPlayer seats a new player and returns the seat index.
func (g *Game) AddPlayer(name string) (int, error) {
	if len(g.players) >= NumPlayers {
		return NoSeat, ErrTableFull
	}
	g.players = append(g.players, &Player{Name: name})
	return len(g.players) - 1, nil
}

// Players returns the seated players in seat order.
func (g *Game) Players() []*Player { return g.players }

// Player returns the player at seat or nil.
func (g *Game) Player(seat int) *Player {
	if seat < 0 || seat >= len(g.players) {
		return nil
	}
	return g.players[seat]
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// CurrentTurn returns the seat expected to act.
func (g *Game) CurrentTurn() int { return g.currentTurn }

// President returns the declarer seat or NoSeat.
func (g *Game) President() int { return g.president }

// Trump returns the trump suit or NoSuit.
func (g *Game) Trump() Suit { return g.trump }

// Friend returns the revealed friend seat or NoSeat.
func (g *Game) Friend() int { return g.friend }

// Settlement returns the last deal's scoring, nil until GameOver.
func (g *Game) Settlement() *Settlement { return g.settlement }

// InitializeDeck rebuilds the ordered 53-card deck.
func (g *Game) InitializeDeck() {
	g.deck = NewDeck()
}

// DealCards shuffles and deals ten cards to every seat and three to the
// kitty, redealing until every hand holds a non-mighty point card.
func (g *Game) DealCards(rng *rand.Rand) error {
	if len(g.players) != NumPlayers {
		return ErrTableNotFull
	}
	if g.phase != PhaseBidding || len(g.bidHistory) > 0 {
		return ErrBiddingStarted
	}
	if len(g.deck) != DeckSize {
		g.InitializeDeck()
	}

	for attempt := 0; attempt < g.params.MaxDealAttempts; attempt++ {
		ShuffleDeck(rng, g.deck)
		if !g.playableDeal() {
			continue
		}
		for seat, p := range g.players {
			hand := copyCards(g.deck[seat*HandSize : (seat+1)*HandSize])
			SortHand(hand, g.trump)
			p.Hand = hand
		}
		g.kitty = copyCards(g.deck[NumPlayers*HandSize:])
		return nil
	}
	return ErrDealExhausted
}

func (g *Game) playableDeal() bool {
	for seat := 0; seat < NumPlayers; seat++ {
		if !IsPlayableHand(g.deck[seat*HandSize:(seat+1)*HandSize], g.trump) {
			return false
		}
	}
	return true
}

// SetFirstPlayer picks the seat that opens bidding. Only valid before the
// first bid of a deal.
func (g *Game) SetFirstPlayer(seat int) error {
	if !validSeat(seat) {
		return ErrInvalidSeat
	}
	if g.phase != PhaseBidding || len(g.bidHistory) > 0 {
		return ErrBiddingStarted
	}
	g.firstPlayer = seat
	g.currentTurn = seat
	return nil
}

// Reset prepares the table for the next deal. Player identities and
// cumulative scores are kept.
func (g *Game) Reset() {
	g.clearDeal()
	for _, p := range g.players {
		p.Hand = nil
		p.Points = 0
	}
}

func (g *Game) clearDeal() {
	g.phase = PhaseBidding
	g.deck = nil
	g.kitty = nil
	g.discarded = nil
	g.currentTurn = 0
	g.firstPlayer = 0
	g.trump = NoSuit
	g.president = NoSeat
	g.currentBid = nil
	g.bidHistory = nil
	g.passed = [NumPlayers]bool{}
	g.passCount = 0
	g.friendCard = nil
	g.friend = NoSeat
	g.trick = nil
	g.trickLeader = NoSeat
	g.jokerSuit = NoSuit
	g.jokerCall = false
	g.tricks = nil
	g.settlement = nil
}

// Kitty returns the kitty for the president during Discarding, nil otherwise.
func (g *Game) Kitty(seat int) []Card {
	if g.phase != PhaseDiscarding || seat != g.president {
		return nil
	}
	return copyCards(g.kitty)
}

// State returns an unredacted snapshot of the table.
func (g *Game) State() GameState {
	st := GameState{
		Phase:        g.phase,
		CurrentTurn:  g.currentTurn,
		FirstPlayer:  g.firstPlayer,
		President:    g.president,
		Trump:        g.trump,
		TrickLeader:  g.trickLeader,
		JokerSuit:    g.jokerSuit,
		JokerCall:    g.jokerCall,
		Friend:       g.friend,
		TricksPlayed: len(g.tricks),
	}
	if g.currentBid != nil {
		b := *g.currentBid
		st.CurrentBid = &b
	}
	st.CurrentTrick = make([]Card, 0, len(g.trick))
	for _, pc := range g.trick {
		st.CurrentTrick = append(st.CurrentTrick, pc.Card)
	}
	if g.friendCard != nil {
		c := *g.friendCard
		st.FriendCard = &c
	}
	st.Seats = make([]SeatState, 0, len(g.players))
	for _, p := range g.players {
		st.Seats = append(st.Seats, SeatState{
			Name:      p.Name,
			Hand:      copyCards(p.Hand),
			HandCount: len(p.Hand),
			Points:    p.Points,
			Score:     p.Score,
		})
	}
	if g.phase == PhaseDiscarding && g.president != NoSeat {
		st.Kitty = copyCards(g.kitty)
		st.Discarded = copyCards(g.discarded)
	}
	if n := len(g.tricks); n > 0 {
		last := g.tricks[n-1]
		last.Cards = append([]PlayedCard(nil), last.Cards...)
		st.LastTrick = &last
	}
	if g.settlement != nil {
		s := *g.settlement
		st.Settlement = &s
	}
	return st
}
