package domain

import (
	"reflect"
	"testing"
)

// discardingTable returns a table where seat 0 won the bidding with 15 hearts.
func discardingTable(t *testing.T) *Game {
	t.Helper()
	g := newTable(t)
	g.players[0].Hand = []Card{
		c(Spade, RankAce), c(Heart, RankKing), c(Heart, 10), c(Heart, 5), c(Heart, 4),
		c(Clover, 2), c(Clover, 3), c(Diamond, 4), c(Diamond, 6), c(Spade, 7),
	}
	g.players[1].Hand = []Card{c(Heart, RankAce), c(Diamond, RankAce)}
	g.kitty = []Card{c(Clover, RankQueen), c(Diamond, 10), c(Spade, 2)}

	if err := g.SubmitBid(0, 15, Heart); err != nil {
		t.Fatalf("SubmitBid error: %v", err)
	}
	for seat := 1; seat <= 4; seat++ {
		if err := g.Pass(seat); err != nil {
			t.Fatalf("Pass(%d) error: %v", seat, err)
		}
	}
	if g.Phase() != PhaseDiscarding {
		t.Fatalf("phase = %s, want %s", g.Phase(), PhaseDiscarding)
	}
	return g
}

func TestDiscardCreditsPointCards(t *testing.T) {
	g := discardingTable(t)
	discard := []Card{c(Clover, RankQueen), c(Diamond, 10), c(Clover, 2)}

	if err := g.DiscardCards(0, discard); err != nil {
		t.Fatalf("DiscardCards error: %v", err)
	}

	p := g.Player(0)
	if p.Points != 2 {
		t.Fatalf("president points = %d, want 2", p.Points)
	}
	if len(p.Hand) != HandSize {
		t.Fatalf("hand size = %d, want %d", len(p.Hand), HandSize)
	}
	for _, card := range discard {
		if ContainsCard(p.Hand, card) {
			t.Fatalf("discarded %v still in hand", card)
		}
	}
	if !ContainsCard(p.Hand, c(Spade, 2)) {
		t.Fatalf("kitty card not moved into hand: %v", p.Hand)
	}
	if g.Phase() != PhaseModifyBid {
		t.Fatalf("phase = %s, want %s", g.Phase(), PhaseModifyBid)
	}
	if st := g.State(); st.Kitty != nil || st.Discarded != nil {
		t.Fatalf("kitty/discards leaked outside discarding: %+v %+v", st.Kitty, st.Discarded)
	}
}

func TestDiscardRejections(t *testing.T) {
	tests := []struct {
		name  string
		seat  int
		cards []Card
		want  error
	}{
		{"not president", 1, []Card{c(Clover, 2), c(Clover, 3), c(Diamond, 4)}, ErrNotPresident},
		{"two cards", 0, []Card{c(Clover, 2), c(Clover, 3)}, ErrDiscardCount},
		{"not owned", 0, []Card{c(Clover, 2), c(Clover, 3), c(Heart, RankAce)}, ErrDiscardNotOwned},
		{"duplicate", 0, []Card{c(Clover, 2), c(Clover, 2), c(Clover, 3)}, ErrDuplicateDiscard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := discardingTable(t)
			before := g.State()
			assertErr(t, g.DiscardCards(tt.seat, tt.cards), tt.want)
			if after := g.State(); !reflect.DeepEqual(before, after) {
				t.Fatalf("state changed on rejection")
			}
		})
	}
}

func TestKittyVisibleToPresidentOnly(t *testing.T) {
	g := discardingTable(t)
	if got := g.Kitty(0); len(got) != KittySize {
		t.Fatalf("president kitty = %v", got)
	}
	if got := g.Kitty(1); got != nil {
		t.Fatalf("non-president kitty = %v, want nil", got)
	}
	if st := g.State(); len(st.Kitty) != KittySize {
		t.Fatalf("snapshot kitty = %v", st.Kitty)
	}
}

func modifyTable(t *testing.T) *Game {
	t.Helper()
	g := discardingTable(t)
	if err := g.DiscardCards(0, []Card{c(Clover, 2), c(Clover, 3), c(Spade, 2)}); err != nil {
		t.Fatalf("DiscardCards error: %v", err)
	}
	return g
}

func TestModifyFinalBid(t *testing.T) {
	tests := []struct {
		name      string
		seat      int
		score     int
		suit      Suit
		want      error
		wantBid   int
		wantTrump Suit
	}{
		{"keep", 0, 0, NoSuit, nil, 15, Heart},
		{"same bid", 0, 15, Heart, nil, 15, Heart},
		{"plus two", 0, 17, Spade, nil, 17, Spade},
		{"straight to twenty", 0, 20, Clover, nil, 20, Clover},
		{"plus one", 0, 16, Heart, ErrModifyIncrement, 15, Heart},
		{"same score new suit", 0, 15, Spade, ErrModifyIncrement, 15, Heart},
		{"over twenty", 0, 21, Heart, ErrBidOutOfRange, 15, Heart},
		{"missing suit", 0, 18, NoSuit, ErrSuitRequired, 15, Heart},
		{"not president", 2, 18, Heart, ErrNotPresident, 15, Heart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := modifyTable(t)
			err := g.ModifyFinalBid(tt.seat, tt.score, tt.suit)
			if tt.want != nil {
				assertErr(t, err, tt.want)
				if g.Phase() != PhaseModifyBid {
					t.Fatalf("phase = %s after rejection", g.Phase())
				}
			} else {
				if err != nil {
					t.Fatalf("ModifyFinalBid error: %v", err)
				}
				if g.Phase() != PhaseFriendSelection {
					t.Fatalf("phase = %s, want %s", g.Phase(), PhaseFriendSelection)
				}
			}
			st := g.State()
			if st.CurrentBid.Score != tt.wantBid || st.Trump != tt.wantTrump {
				t.Fatalf("bid = %+v trump = %v, want %d %v", st.CurrentBid, st.Trump, tt.wantBid, tt.wantTrump)
			}
		})
	}
}

func friendTable(t *testing.T) *Game {
	t.Helper()
	g := modifyTable(t)
	if err := g.ModifyFinalBid(0, 0, NoSuit); err != nil {
		t.Fatalf("ModifyFinalBid error: %v", err)
	}
	return g
}

func TestSelectFriend(t *testing.T) {
	tests := []struct {
		name string
		seat int
		suit Suit
		rank int
		want error
	}{
		{"other seat card", 0, Heart, RankAce, nil},
		{"joker", 0, Joker, 0, nil},
		{"no friend", 0, NoSuit, 0, nil},
		{"own card", 0, Heart, RankKing, ErrFriendCardUnavailable},
		{"discarded card", 0, Clover, 3, ErrFriendCardUnavailable},
		{"invalid rank", 0, Heart, 15, ErrInvalidFriendCard},
		{"joker with rank", 0, Joker, 5, ErrInvalidFriendCard},
		{"not president", 1, Heart, RankAce, ErrNotPresident},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := friendTable(t)
			err := g.SelectFriend(tt.seat, tt.suit, tt.rank)
			if tt.want != nil {
				assertErr(t, err, tt.want)
				if g.Phase() != PhaseFriendSelection {
					t.Fatalf("phase = %s after rejection", g.Phase())
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectFriend error: %v", err)
			}
			st := g.State()
			if st.Phase != PhasePlaying || st.CurrentTurn != 0 {
				t.Fatalf("phase = %s, turn = %d", st.Phase, st.CurrentTurn)
			}
			if st.Friend != NoSeat {
				t.Fatalf("friend revealed early: seat %d", st.Friend)
			}
			if tt.suit == NoSuit && st.FriendCard != nil {
				t.Fatalf("friend card = %v, want none", st.FriendCard)
			}
		})
	}
}

func TestExchangeActionsOutsidePhase(t *testing.T) {
	g := newTable(t)
	assertErr(t, g.DiscardCards(0, nil), ErrWrongPhase)
	assertErr(t, g.ModifyFinalBid(0, 0, NoSuit), ErrWrongPhase)
	assertErr(t, g.SelectFriend(0, NoSuit, 0), ErrWrongPhase)
	assertErr(t, g.PlayCard(0, c(Spade, 2), PlayOptions{}), ErrWrongPhase)
}
