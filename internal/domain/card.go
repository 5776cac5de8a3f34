package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is a card suit. The zero value NoSuit stands for "unset" (no trump
// yet, a pass, no friend).
type Suit int

const (
	NoSuit Suit = iota
	Spade
	Diamond
	Heart
	Clover
	Joker
)

// Suits lists the four regular suits in display order.
var Suits = [4]Suit{Spade, Diamond, Heart, Clover}

const (
	// JokerRank is the fixed rank carried by the joker.
	JokerRank = 0

	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14

	minRank = 2
	maxRank = RankAce
)

// String returns the wire abbreviation of the suit.
func (s Suit) String() string {
	switch s {
	case Spade:
		return "S"
	case Diamond:
		return "D"
	case Heart:
		return "H"
	case Clover:
		return "C"
	case Joker:
		return "JK"
	default:
		return ""
	}
}

// Symbol returns the printable suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Spade:
		return "♠"
	case Diamond:
		return "♦"
	case Heart:
		return "♥"
	case Clover:
		return "♣"
	case Joker:
		return "🃏"
	default:
		return ""
	}
}

// IsRegular reports whether s is one of the four playable trump suits.
func (s Suit) IsRegular() bool {
	return s >= Spade && s <= Clover
}

// ParseSuit maps a wire abbreviation (or glyph) back to a Suit. The empty
// string decodes to NoSuit.
func ParseSuit(v string) (Suit, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "":
		return NoSuit, nil
	case "S", "♠":
		return Spade, nil
	case "D", "♦":
		return Diamond, nil
	case "H", "♥":
		return Heart, nil
	case "C", "♣":
		return Clover, nil
	case "JK", "J", "JOKER", "🃏":
		return Joker, nil
	}
	return NoSuit, fmt.Errorf("unknown suit %q", v)
}

// Card is one of the 53 cards of a Mighty deck.
type Card struct {
	Suit Suit
	Rank int // 2..14 (11=J, 12=Q, 13=K, 14=A); 0 for the joker
}

// JokerCard is the single joker of the deck.
var JokerCard = Card{Suit: Joker, Rank: JokerRank}

// JokerCallCard is the lead that triggers a joker call.
var JokerCallCard = Card{Suit: Clover, Rank: 3}

// IsJoker reports whether c is the joker.
func (c Card) IsJoker() bool { return c.Suit == Joker }

// IsPointCard reports whether c scores a trick point (10, J, Q, K, A).
func (c Card) IsPointCard() bool {
	return !c.IsJoker() && c.Rank >= 10
}

// IsMighty reports whether c is the mighty card under the given trump.
func (c Card) IsMighty(trump Suit) bool {
	return c == MightyCard(trump)
}

// Matches compares c against a friend target; the joker matches by suit alone.
func (c Card) Matches(target Card) bool {
	if target.IsJoker() {
		return c.IsJoker()
	}
	return c == target
}

func (c Card) String() string {
	if c.IsJoker() {
		return Joker.Symbol()
	}
	return c.Suit.Symbol() + rankLabel(c.Rank)
}

func rankLabel(rank int) string {
	switch rank {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	}
	return strconv.Itoa(rank)
}

// MightyCard returns the mighty for a trump: the Diamond Ace when trump is
// Spade, the Spade Ace otherwise (including before trump is known).
func MightyCard(trump Suit) Card {
	if trump == Spade {
		return Card{Suit: Diamond, Rank: RankAce}
	}
	return Card{Suit: Spade, Rank: RankAce}
}

// ValidCard reports whether (suit, rank) names one of the 53 deck cards.
func ValidCard(suit Suit, rank int) bool {
	if suit == Joker {
		return rank == JokerRank
	}
	return suit.IsRegular() && rank >= minRank && rank <= maxRank
}
