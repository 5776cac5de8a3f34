package domain

// Payout multipliers applied to the base score.
const (
	presidentShareWithFriend = 2
	presidentShareAlone      = 4
	friendShare              = 1
	opponentShare            = 1
)

// CalculateSettlement scores a finished deal. friend is NoSeat when no
// friend was revealed.
func CalculateSettlement(points [NumPlayers]int, president, friend, bidScore int) Settlement {
	s := Settlement{
		President: president,
		Friend:    friend,
		BidScore:  bidScore,
		TeamScore: points[president],
	}
	if friend != NoSeat {
		s.TeamScore += points[friend]
	}

	// sign is +1 for the declaring side when it makes the contract.
	sign := -1
	if s.TeamScore >= bidScore {
		s.DeclarerWon = true
		s.Base = (s.TeamScore - bidScore) + (bidScore-MinBid)*2
		sign = 1
	} else {
		s.Base = bidScore - s.TeamScore
	}

	for seat := 0; seat < NumPlayers; seat++ {
		switch {
		case seat == president && friend != NoSeat:
			s.Deltas[seat] = sign * presidentShareWithFriend * s.Base
		case seat == president:
			s.Deltas[seat] = sign * presidentShareAlone * s.Base
		case seat == friend:
			s.Deltas[seat] = sign * friendShare * s.Base
		default:
			s.Deltas[seat] = -sign * opponentShare * s.Base
		}
	}
	return s
}

func (g *Game) settle() {
	var points [NumPlayers]int
	for seat, p := range g.players {
		points[seat] = p.Points
	}
	s := CalculateSettlement(points, g.president, g.friend, g.currentBid.Score)
	for seat, p := range g.players {
		p.Score += s.Deltas[seat]
	}
	g.settlement = &s
}
