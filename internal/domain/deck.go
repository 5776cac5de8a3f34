package domain

import (
	"math/rand"
	"sort"
)

const (
	// DeckSize is the number of cards in a Mighty deck (52 + joker).
	DeckSize = 53
	// HandSize is the number of cards dealt to each seat.
	HandSize = 10
	// KittySize is the number of cards set aside for the president.
	KittySize = 3
)

// NewDeck returns the ordered 53-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := minRank; r <= maxRank; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return append(deck, JokerCard)
}

// ShuffleDeck shuffles deck in place using rng.
func ShuffleDeck(rng *rand.Rand, deck []Card) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// IsPlayableHand reports whether a dealt hand holds at least one point card
// other than the mighty.
func IsPlayableHand(hand []Card, trump Suit) bool {
	for _, c := range hand {
		if c.IsPointCard() && !c.IsMighty(trump) {
			return true
		}
	}
	return false
}

// SortHand orders cards for display: mighty, joker, trump suit, then the
// remaining suits in Spade, Diamond, Heart, Clover order, ranks descending.
func SortHand(cards []Card, trump Suit) {
	sort.SliceStable(cards, func(i, j int) bool {
		gi, si, ri := handOrder(cards[i], trump)
		gj, sj, rj := handOrder(cards[j], trump)
		if gi != gj {
			return gi < gj
		}
		if si != sj {
			return si < sj
		}
		return ri > rj
	})
}

func handOrder(c Card, trump Suit) (group int, suit Suit, rank int) {
	switch {
	case c.IsMighty(trump):
		return 0, 0, 0
	case c.IsJoker():
		return 1, 0, 0
	case trump != NoSuit && c.Suit == trump:
		return 2, c.Suit, c.Rank
	}
	return 3, c.Suit, c.Rank
}
