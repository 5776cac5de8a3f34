package domain

// SubmitBid records a bid for seat. A score of 0 is a pass; any other score
// must lie in [MinBid, MaxBid], beat the current bid and name a trump suit.
func (g *Game) SubmitBid(seat int, score int, suit Suit) error {
	if g.phase != PhaseBidding {
		return ErrWrongPhase
	}
	if len(g.players) != NumPlayers {
		return ErrTableNotFull
	}
	if seat != g.currentTurn {
		return ErrNotYourTurn
	}

	// Stale retries from a seat that already passed just move the turn on.
	if g.passed[seat] {
		g.currentTurn = nextSeat(g.currentTurn)
		return nil
	}

	if score == 0 {
		g.passCount++
		g.passed[seat] = true
		g.bidHistory = append(g.bidHistory, Bid{Seat: seat})

		switch {
		case g.passCount == NumPlayers:
			// Nobody bid: the opening seat takes the minimum contract in spades.
			bid := Bid{Seat: g.firstPlayer, Score: MinBid, Suit: Spade}
			g.bidHistory = append(g.bidHistory, bid)
			g.currentBid = &bid
			g.resolveBidding()
			return nil
		case g.passCount == NumPlayers-1 && g.currentBid != nil:
			g.resolveBidding()
			return nil
		}
		g.advanceBidTurn()
		return nil
	}

	if score < MinBid || score > MaxBid {
		return ErrBidOutOfRange
	}
	if g.currentBid != nil && score <= g.currentBid.Score {
		return ErrBidTooLow
	}
	if !suit.IsRegular() {
		return ErrSuitRequired
	}

	bid := Bid{Seat: seat, Score: score, Suit: suit}
	g.bidHistory = append(g.bidHistory, bid)
	g.currentBid = &bid
	if score == MaxBid || g.passCount == NumPlayers-1 {
		g.resolveBidding()
		return nil
	}
	g.advanceBidTurn()
	return nil
}

// Pass is SubmitBid with no offer.
func (g *Game) Pass(seat int) error {
	return g.SubmitBid(seat, 0, NoSuit)
}

func (g *Game) advanceBidTurn() {
	for i := 0; i < NumPlayers; i++ {
		g.currentTurn = nextSeat(g.currentTurn)
		if !g.passed[g.currentTurn] {
			return
		}
	}
}

func (g *Game) resolveBidding() {
	g.president = g.currentBid.Seat
	g.trump = g.currentBid.Suit
	g.phase = PhaseDiscarding
	g.currentTurn = g.president
}

// BidState returns the auction summary.
func (g *Game) BidState() BidState {
	st := BidState{
		CurrentTurn: g.currentTurn,
		PassCount:   g.passCount,
		History:     append([]Bid(nil), g.bidHistory...),
	}
	if g.currentBid != nil {
		b := *g.currentBid
		st.CurrentBid = &b
	}
	for seat, p := range g.passed {
		if p {
			st.Passed = append(st.Passed, seat)
		}
	}
	return st
}
