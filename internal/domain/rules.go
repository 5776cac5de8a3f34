package domain

// Card power tiers used to rank the cards of a single trick.
const (
	powerMighty      = 1000
	powerJoker       = 900
	powerTrump       = 800
	powerLeadSuit    = 700
	powerCalledJoker = 0
)

// PlayCard plays card for seat into the current trick.
func (g *Game) PlayCard(seat int, card Card, opts PlayOptions) error {
	if g.phase != PhasePlaying {
		return ErrWrongPhase
	}
	if seat != g.currentTurn {
		return ErrNotYourTurn
	}
	player := g.players[seat]
	idx := indexOfCard(player.Hand, card)
	if idx < 0 {
		return ErrCardNotOwned
	}

	leading := len(g.trick) == 0
	if leading {
		if card.IsJoker() && !opts.JokerSuit.IsRegular() {
			return ErrJokerSuitRequired
		}
	} else if err := g.checkFollow(player.Hand, card); err != nil {
		return err
	}

	// Validation done; mutate.
	if leading {
		g.trickLeader = seat
		g.jokerCall = card == JokerCallCard && opts.CallJoker
		g.jokerSuit = NoSuit
		if card.IsJoker() {
			g.jokerSuit = opts.JokerSuit
		}
	}
	player.Hand = append(player.Hand[:idx:idx], player.Hand[idx+1:]...)
	g.trick = append(g.trick, PlayedCard{Seat: seat, Card: card})
	g.currentTurn = nextSeat(seat)

	if g.friendCard != nil && g.friend == NoSeat && card.Matches(*g.friendCard) {
		g.friend = seat
	}

	if len(g.trick) == NumPlayers {
		g.completeTrick()
	}

	if g.handsEmpty() {
		g.phase = PhaseGameOver
		g.settle()
	}
	return nil
}

// checkFollow enforces joker-call and follow-suit for a non-leading card.
func (g *Game) checkFollow(hand []Card, card Card) error {
	if g.jokerCall && !card.IsJoker() && ContainsCard(hand, JokerCard) {
		return ErrMustPlayJoker
	}
	if card.IsJoker() || card.IsMighty(g.trump) {
		return nil
	}
	lead := g.leadSuit()
	if card.Suit == lead {
		return nil
	}
	for _, c := range hand {
		if c.Suit == lead && !c.IsMighty(g.trump) {
			return ErrMustFollowSuit
		}
	}
	return nil
}

// leadSuit is the effective suit of the trick in progress: the called suit
// when the joker led, otherwise the suit of the first card.
func (g *Game) leadSuit() Suit {
	if len(g.trick) == 0 {
		return NoSuit
	}
	if first := g.trick[0].Card; !first.IsJoker() {
		return first.Suit
	}
	return g.jokerSuit
}

// CurrentTrick returns the cards played so far in the trick in progress.
func (g *Game) CurrentTrick() []PlayedCard {
	return append([]PlayedCard(nil), g.trick...)
}

// JokerSuit returns the suit called by a leading joker, NoSuit otherwise.
func (g *Game) JokerSuit() Suit { return g.jokerSuit }

// JokerCall reports whether the current trick was led with a joker call.
func (g *Game) JokerCall() bool { return g.jokerCall }

// LegalPlays returns the cards seat may play right now.
func (g *Game) LegalPlays(seat int) []Card {
	if g.phase != PhasePlaying || seat != g.currentTurn {
		return nil
	}
	hand := g.players[seat].Hand
	if len(g.trick) == 0 {
		return copyCards(hand)
	}
	var out []Card
	for _, c := range hand {
		if g.checkFollow(hand, c) == nil {
			out = append(out, c)
		}
	}
	return out
}

// CardPower ranks card within a trick led in leadSuit.
func CardPower(card Card, trump, leadSuit Suit, jokerCall bool) int {
	switch {
	case card.IsMighty(trump):
		return powerMighty
	case card.IsJoker() && jokerCall:
		return powerCalledJoker
	case card.IsJoker():
		return powerJoker
	case card.Suit == trump:
		return powerTrump + card.Rank
	case card.Suit == leadSuit:
		return powerLeadSuit + card.Rank
	}
	return card.Rank
}

// TrickWinner returns the index into cards of the winning card.
func TrickWinner(cards []Card, trump, leadSuit Suit, jokerCall bool) int {
	best, bestPower := 0, -1
	for i, c := range cards {
		if p := CardPower(c, trump, leadSuit, jokerCall); p > bestPower {
			best, bestPower = i, p
		}
	}
	return best
}

func (g *Game) completeTrick() {
	lead := g.leadSuit()
	cards := make([]Card, len(g.trick))
	for i, pc := range g.trick {
		cards[i] = pc.Card
	}
	winner := g.trick[TrickWinner(cards, g.trump, lead, g.jokerCall)].Seat
	points := CountPointCards(cards)
	g.players[winner].Points += points

	g.tricks = append(g.tricks, Trick{
		Leader:     g.trickLeader,
		Cards:      g.trick,
		LeadSuit:   lead,
		JokerCall:  g.jokerCall,
		Winner:     winner,
		PointCards: points,
	})
	g.trick = nil
	g.jokerSuit = NoSuit
	g.jokerCall = false
	g.trickLeader = winner
	g.currentTurn = winner
}

func (g *Game) handsEmpty() bool {
	for _, p := range g.players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// Tricks returns the tricks completed this deal.
func (g *Game) Tricks() []Trick {
	return append([]Trick(nil), g.tricks...)
}
