package domain

// ContainsCard reports whether cards holds c.
func ContainsCard(cards []Card, c Card) bool {
	return indexOfCard(cards, c) >= 0
}

func indexOfCard(cards []Card, target Card) int {
	for i, c := range cards {
		if c == target {
			return i
		}
	}
	return -1
}

// RemoveCards returns a new slice with one occurrence of each card in
// toRemove dropped from hand. hand is never modified.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count := removeCounts[card]; count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}
	return updated
}

// CountPointCards returns how many point cards are in cards.
func CountPointCards(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsPointCard() {
			n++
		}
	}
	return n
}

func nextSeat(seat int) int {
	return (seat + 1) % NumPlayers
}

func validSeat(seat int) bool {
	return seat >= 0 && seat < NumPlayers
}

func copyCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return append([]Card(nil), cards...)
}
