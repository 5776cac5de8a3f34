package nakama

import (
	"encoding/json"
	"fmt"

	"mighty/internal/app"
	"mighty/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// cardJSON is the wire form of a card: {"suit":"H","rank":14}. The joker is
// {"suit":"JK","rank":0}.
type cardJSON struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

type bidRequest struct {
	Score int    `json:"score"`
	Suit  string `json:"suit"`
}

type discardRequest struct {
	Cards []cardJSON `json:"cards"`
}

type friendRequest struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

type playRequest struct {
	Card      cardJSON `json:"card"`
	JokerSuit string   `json:"joker_suit"`
	CallJoker bool     `json:"call_joker"`
}

func decodeRequest(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("empty payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func decodeCard(c cardJSON) (domain.Card, error) {
	suit, err := domain.ParseSuit(c.Suit)
	if err != nil {
		return domain.Card{}, err
	}
	if !domain.ValidCard(suit, c.Rank) {
		return domain.Card{}, fmt.Errorf("invalid card %s/%d", c.Suit, c.Rank)
	}
	return domain.Card{Suit: suit, Rank: c.Rank}, nil
}

func decodeCards(cards []cardJSON) ([]domain.Card, error) {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		card, err := decodeCard(c)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	return out, nil
}

func cardValue(c domain.Card) map[string]interface{} {
	return map[string]interface{}{
		"suit": c.Suit.String(),
		"rank": c.Rank,
	}
}

func cardsValue(cards []domain.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardValue(c))
	}
	return out
}

func bidValue(b domain.Bid) map[string]interface{} {
	return map[string]interface{}{
		"seat":  b.Seat,
		"score": b.Score,
		"suit":  b.Suit.String(),
	}
}

func trickValue(t domain.Trick) map[string]interface{} {
	played := make([]interface{}, 0, len(t.Cards))
	for _, pc := range t.Cards {
		played = append(played, map[string]interface{}{
			"seat": pc.Seat,
			"card": cardValue(pc.Card),
		})
	}
	return map[string]interface{}{
		"leader":      t.Leader,
		"cards":       played,
		"lead_suit":   t.LeadSuit.String(),
		"joker_call":  t.JokerCall,
		"winner":      t.Winner,
		"point_cards": t.PointCards,
	}
}

func settlementValue(s domain.Settlement) map[string]interface{} {
	deltas := make([]interface{}, 0, len(s.Deltas))
	for _, d := range s.Deltas {
		deltas = append(deltas, d)
	}
	return map[string]interface{}{
		"president":    s.President,
		"friend":       s.Friend,
		"bid_score":    s.BidScore,
		"team_score":   s.TeamScore,
		"declarer_won": s.DeclarerWon,
		"base":         s.Base,
		"deltas":       deltas,
	}
}

// stateValue flattens a (redacted) snapshot for the wire.
func stateValue(st domain.GameState, viewerSeat int) map[string]interface{} {
	seats := make([]interface{}, 0, len(st.Seats))
	for _, s := range st.Seats {
		seats = append(seats, map[string]interface{}{
			"name":       s.Name,
			"hand":       cardsValue(s.Hand),
			"hand_count": s.HandCount,
			"points":     s.Points,
			"score":      s.Score,
		})
	}

	trick := make([]interface{}, 0, len(st.CurrentTrick))
	for i, c := range st.CurrentTrick {
		trick = append(trick, map[string]interface{}{
			"seat": (st.TrickLeader + i) % domain.NumPlayers,
			"card": cardValue(c),
		})
	}

	m := map[string]interface{}{
		"viewer":        viewerSeat,
		"phase":         string(st.Phase),
		"current_turn":  st.CurrentTurn,
		"first_player":  st.FirstPlayer,
		"president":     st.President,
		"trump":         st.Trump.String(),
		"trick_leader":  st.TrickLeader,
		"current_trick": trick,
		"joker_suit":    st.JokerSuit.String(),
		"joker_call":    st.JokerCall,
		"friend":        st.Friend,
		"seats":         seats,
		"tricks_played": st.TricksPlayed,
	}
	if st.CurrentBid != nil {
		m["current_bid"] = bidValue(*st.CurrentBid)
	}
	if st.FriendCard != nil {
		m["friend_card"] = cardValue(*st.FriendCard)
	}
	if st.Kitty != nil {
		m["kitty"] = cardsValue(st.Kitty)
	}
	if st.LastTrick != nil {
		m["last_trick"] = trickValue(*st.LastTrick)
	}
	if st.Settlement != nil {
		m["settlement"] = settlementValue(*st.Settlement)
	}
	return m
}

// eventOpCodes maps app events to their outbound op code.
var eventOpCodes = map[app.EventKind]int64{
	app.EventGameStarted:     OpGameStarted,
	app.EventHandDealt:       OpHandDealt,
	app.EventBidPlaced:       OpBidPlaced,
	app.EventBiddingResolved: OpBiddingResolved,
	app.EventKittyRevealed:   OpKittyRevealed,
	app.EventCardsDiscarded:  OpCardsDiscarded,
	app.EventBidFinalized:    OpBidFinalized,
	app.EventFriendSelected:  OpFriendSelected,
	app.EventCardPlayed:      OpCardPlayed,
	app.EventFriendRevealed:  OpFriendRevealed,
	app.EventTrickCompleted:  OpTrickCompleted,
	app.EventGameEnded:       OpGameEnded,
}

// eventValue converts an app event payload to its wire map.
func eventValue(ev app.Event) (map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		return map[string]interface{}{
			"deal_id":      p.DealID,
			"first_player": p.FirstPlayer,
			"phase":        string(p.Phase),
		}, nil
	case app.HandDealtPayload:
		return map[string]interface{}{"seat": p.Seat, "hand": cardsValue(p.Hand)}, nil
	case app.BidPlacedPayload:
		return map[string]interface{}{
			"seat":      p.Seat,
			"score":     p.Score,
			"suit":      p.Suit.String(),
			"next_turn": p.NextTurn,
		}, nil
	case app.BiddingResolvedPayload:
		return map[string]interface{}{"president": p.President, "bid": bidValue(p.Bid)}, nil
	case app.KittyRevealedPayload:
		return map[string]interface{}{"seat": p.Seat, "kitty": cardsValue(p.Kitty)}, nil
	case app.CardsDiscardedPayload:
		return map[string]interface{}{"seat": p.Seat}, nil
	case app.BidFinalizedPayload:
		return map[string]interface{}{"president": p.President, "bid": bidValue(p.Bid)}, nil
	case app.FriendSelectedPayload:
		m := map[string]interface{}{"president": p.President, "friend_card": nil}
		if p.FriendCard != nil {
			m["friend_card"] = cardValue(*p.FriendCard)
		}
		return m, nil
	case app.CardPlayedPayload:
		return map[string]interface{}{
			"seat":       p.Seat,
			"card":       cardValue(p.Card),
			"joker_suit": p.JokerSuit.String(),
			"joker_call": p.JokerCall,
			"next_turn":  p.NextTurn,
		}, nil
	case app.FriendRevealedPayload:
		return map[string]interface{}{"seat": p.Seat}, nil
	case app.TrickCompletedPayload:
		return map[string]interface{}{"number": p.Number, "trick": trickValue(p.Trick)}, nil
	case app.GameEndedPayload:
		scores := make([]interface{}, 0, len(p.Scores))
		for _, s := range p.Scores {
			scores = append(scores, s)
		}
		return map[string]interface{}{"settlement": settlementValue(p.Settlement), "scores": scores}, nil
	}
	return nil, fmt.Errorf("unsupported event payload %T", ev.Payload)
}

// marshalStruct encodes m as a google.protobuf.Struct in JSON form.
func marshalStruct(m map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(s)
}
