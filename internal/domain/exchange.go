package domain

// DiscardCards lets the president bury three cards from hand plus kitty.
// Point cards among them are credited to the president immediately.
func (g *Game) DiscardCards(seat int, cards []Card) error {
	if g.phase != PhaseDiscarding {
		return ErrWrongPhase
	}
	if seat != g.president {
		return ErrNotPresident
	}
	if len(cards) != KittySize {
		return ErrDiscardCount
	}

	president := g.players[seat]
	pool := append(copyCards(president.Hand), g.kitty...)
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return ErrDuplicateDiscard
		}
		seen[c] = true
		if !ContainsCard(pool, c) {
			return ErrDiscardNotOwned
		}
	}

	hand := RemoveCards(pool, cards)
	SortHand(hand, g.trump)
	president.Hand = hand
	president.Points += CountPointCards(cards)
	g.discarded = copyCards(cards)
	g.kitty = nil
	g.phase = PhaseModifyBid
	return nil
}

// ModifyFinalBid lets the president revise the contract after seeing the
// kitty. A score of 0, or a repeat of the current bid, keeps it.
func (g *Game) ModifyFinalBid(seat int, score int, suit Suit) error {
	if g.phase != PhaseModifyBid {
		return ErrWrongPhase
	}
	if seat != g.president {
		return ErrNotPresident
	}
	if score == 0 || (score == g.currentBid.Score && suit == g.currentBid.Suit) {
		g.phase = PhaseFriendSelection
		return nil
	}

	if score > MaxBid {
		return ErrBidOutOfRange
	}
	if score < g.currentBid.Score+ModifyBidStep && score != MaxBid {
		return ErrModifyIncrement
	}
	if !suit.IsRegular() {
		return ErrSuitRequired
	}

	bid := Bid{Seat: seat, Score: score, Suit: suit}
	g.bidHistory = append(g.bidHistory, bid)
	g.currentBid = &bid
	g.trump = suit
	g.phase = PhaseFriendSelection
	return nil
}

// SelectFriend names the friend card. suit == NoSuit plays without a friend.
// The friend seat stays hidden until the card is played.
func (g *Game) SelectFriend(seat int, suit Suit, rank int) error {
	if g.phase != PhaseFriendSelection {
		return ErrWrongPhase
	}
	if seat != g.president {
		return ErrNotPresident
	}

	if suit == NoSuit {
		g.friendCard = nil
		g.friend = NoSeat
		g.startPlay()
		return nil
	}

	if !ValidCard(suit, rank) {
		return ErrInvalidFriendCard
	}
	target := Card{Suit: suit, Rank: rank}
	if ContainsCard(g.players[seat].Hand, target) || ContainsCard(g.discarded, target) {
		return ErrFriendCardUnavailable
	}

	g.friendCard = &target
	g.friend = NoSeat
	g.startPlay()
	return nil
}

func (g *Game) startPlay() {
	g.phase = PhasePlaying
	g.currentTurn = g.president
	g.trickLeader = g.president
}
