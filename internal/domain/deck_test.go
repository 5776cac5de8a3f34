package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool)
	points := 0
	for _, card := range deck {
		if seen[card] {
			t.Fatalf("duplicate card found: %v", card)
		}
		seen[card] = true
		if !ValidCard(card.Suit, card.Rank) {
			t.Fatalf("invalid card in deck: %+v", card)
		}
		if card.IsPointCard() {
			points++
		}
	}
	if points != 20 {
		t.Fatalf("point cards = %d, want 20", points)
	}
}

func TestDealCardsPartitionsDeck(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := newTable(t)
		g.InitializeDeck()
		if err := g.DealCards(rand.New(rand.NewSource(seed))); err != nil {
			t.Fatalf("seed %d: DealCards error: %v", seed, err)
		}

		seen := make(map[Card]bool)
		add := func(cards []Card) {
			for _, card := range cards {
				if seen[card] {
					t.Fatalf("seed %d: card dealt twice: %v", seed, card)
				}
				seen[card] = true
			}
		}
		for seat, p := range g.Players() {
			if len(p.Hand) != HandSize {
				t.Fatalf("seed %d: seat %d hand size = %d, want %d", seed, seat, len(p.Hand), HandSize)
			}
			if !IsPlayableHand(p.Hand, NoSuit) {
				t.Fatalf("seed %d: seat %d has no non-mighty point card: %v", seed, seat, p.Hand)
			}
			add(p.Hand)
		}
		if len(g.kitty) != KittySize {
			t.Fatalf("seed %d: kitty size = %d, want %d", seed, len(g.kitty), KittySize)
		}
		add(g.kitty)
		if len(seen) != DeckSize {
			t.Fatalf("seed %d: dealt %d distinct cards, want %d", seed, len(seen), DeckSize)
		}
	}
}

func TestDealCardsRequiresFullTable(t *testing.T) {
	g := NewGame(GameParams{})
	if _, err := g.AddPlayer("solo"); err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	assertErr(t, g.DealCards(rand.New(rand.NewSource(1))), ErrTableNotFull)
}

func TestIsPlayableHand(t *testing.T) {
	tests := []struct {
		name  string
		hand  []Card
		trump Suit
		want  bool
	}{
		{"only mighty", []Card{c(Spade, RankAce), c(Heart, 2)}, NoSuit, false},
		{"mighty and ten", []Card{c(Spade, RankAce), c(Heart, 10)}, NoSuit, true},
		{"no points", []Card{c(Spade, 9), JokerCard}, NoSuit, false},
		{"spade ace under spade trump", []Card{c(Spade, RankAce)}, Spade, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlayableHand(tt.hand, tt.trump); got != tt.want {
				t.Fatalf("IsPlayableHand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{
		c(Clover, 5), c(Heart, RankKing), JokerCard, c(Spade, 3),
		c(Heart, 2), c(Diamond, RankAce), c(Clover, RankAce), c(Spade, RankAce),
	}
	SortHand(hand, Heart)

	want := []Card{
		c(Spade, RankAce), JokerCard, c(Heart, RankKing), c(Heart, 2),
		c(Spade, 3), c(Diamond, RankAce), c(Clover, RankAce), c(Clover, 5),
	}
	if !reflect.DeepEqual(hand, want) {
		t.Fatalf("SortHand() = %v, want %v", hand, want)
	}
}

func TestResetKeepsIdentitiesAndScores(t *testing.T) {
	g := newTable(t)
	if err := g.DealCards(rand.New(rand.NewSource(7))); err != nil {
		t.Fatalf("DealCards error: %v", err)
	}
	g.players[1].Score = 12
	g.players[1].Points = 4
	if err := g.Pass(0); err != nil {
		t.Fatalf("Pass error: %v", err)
	}

	g.Reset()

	if g.Phase() != PhaseBidding {
		t.Fatalf("phase = %s, want %s", g.Phase(), PhaseBidding)
	}
	if len(g.Players()) != NumPlayers || g.Player(1).Name != "p1" {
		t.Fatalf("players not preserved: %+v", g.Players())
	}
	if g.Player(1).Score != 12 || g.Player(1).Points != 0 || g.Player(1).Hand != nil {
		t.Fatalf("seat 1 after reset = %+v", g.Player(1))
	}
	if bs := g.BidState(); bs.PassCount != 0 || len(bs.History) != 0 {
		t.Fatalf("bid state not cleared: %+v", bs)
	}
	if g.President() != NoSeat || g.Trump() != NoSuit {
		t.Fatalf("president/trump not cleared")
	}
}

// unplayableSeed returns a seed whose first shuffle of a fresh deck leaves
// some hand without a non-mighty point card.
func unplayableSeed(t *testing.T) int64 {
	t.Helper()
	for seed := int64(1); seed <= 1000; seed++ {
		deck := NewDeck()
		ShuffleDeck(rand.New(rand.NewSource(seed)), deck)
		for seat := 0; seat < NumPlayers; seat++ {
			if !IsPlayableHand(deck[seat*HandSize:(seat+1)*HandSize], NoSuit) {
				return seed
			}
		}
	}
	t.Fatal("no seed with an unplayable first shuffle")
	return 0
}

func TestDealCardsExhausted(t *testing.T) {
	seed := unplayableSeed(t)

	g := NewGame(GameParams{MaxDealAttempts: 1})
	for _, name := range []string{"p0", "p1", "p2", "p3", "p4"} {
		if _, err := g.AddPlayer(name); err != nil {
			t.Fatalf("AddPlayer(%s) error: %v", name, err)
		}
	}
	g.InitializeDeck()

	assertErr(t, g.DealCards(rand.New(rand.NewSource(seed))), ErrDealExhausted)
	for seat, p := range g.Players() {
		if len(p.Hand) != 0 {
			t.Fatalf("seat %d holds %d cards after failed deal", seat, len(p.Hand))
		}
	}
	if len(g.kitty) != 0 {
		t.Fatalf("kitty = %v after failed deal", g.kitty)
	}
	if g.Phase() != PhaseBidding {
		t.Fatalf("phase = %s, want %s", g.Phase(), PhaseBidding)
	}
}
