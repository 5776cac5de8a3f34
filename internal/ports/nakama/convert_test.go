package nakama

import (
	"encoding/json"
	"testing"

	"mighty/internal/app"
	"mighty/internal/domain"
)

func TestDecodeCard(t *testing.T) {
	tests := []struct {
		in      cardJSON
		want    domain.Card
		wantErr bool
	}{
		{cardJSON{Suit: "S", Rank: 14}, domain.Card{Suit: domain.Spade, Rank: domain.RankAce}, false},
		{cardJSON{Suit: "c", Rank: 3}, domain.JokerCallCard, false},
		{cardJSON{Suit: "JK", Rank: 0}, domain.JokerCard, false},
		{cardJSON{Suit: "H", Rank: 1}, domain.Card{}, true},
		{cardJSON{Suit: "H", Rank: 15}, domain.Card{}, true},
		{cardJSON{Suit: "JK", Rank: 5}, domain.Card{}, true},
		{cardJSON{Suit: "", Rank: 5}, domain.Card{}, true},
		{cardJSON{Suit: "X", Rank: 5}, domain.Card{}, true},
	}
	for _, tt := range tests {
		got, err := decodeCard(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("decodeCard(%+v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("decodeCard(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeRequest(t *testing.T) {
	var req playRequest
	if err := decodeRequest([]byte(`{"card":{"suit":"JK","rank":0},"joker_suit":"H"}`), &req); err != nil {
		t.Fatalf("decodeRequest error: %v", err)
	}
	if req.Card.Suit != "JK" || req.JokerSuit != "H" || req.CallJoker {
		t.Fatalf("request = %+v", req)
	}
	if err := decodeRequest(nil, &req); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestEventValue(t *testing.T) {
	friend := domain.Card{Suit: domain.Heart, Rank: domain.RankKing}
	tests := []struct {
		name string
		ev   app.Event
		want string
	}{
		{
			"bid placed",
			app.Event{Kind: app.EventBidPlaced, Payload: app.BidPlacedPayload{Seat: 2, Score: 14, Suit: domain.Heart, NextTurn: 3}},
			`{"next_turn":3,"score":14,"seat":2,"suit":"H"}`,
		},
		{
			"pass",
			app.Event{Kind: app.EventBidPlaced, Payload: app.BidPlacedPayload{Seat: 0, NextTurn: 1}},
			`{"next_turn":1,"score":0,"seat":0,"suit":""}`,
		},
		{
			"friend selected",
			app.Event{Kind: app.EventFriendSelected, Payload: app.FriendSelectedPayload{President: 1, FriendCard: &friend}},
			`{"friend_card":{"rank":13,"suit":"H"},"president":1}`,
		},
		{
			"no friend",
			app.Event{Kind: app.EventFriendSelected, Payload: app.FriendSelectedPayload{President: 1}},
			`{"friend_card":null,"president":1}`,
		},
		{
			"joker lead",
			app.Event{Kind: app.EventCardPlayed, Payload: app.CardPlayedPayload{Seat: 4, Card: domain.JokerCard, JokerSuit: domain.Clover, NextTurn: 0}},
			`{"card":{"rank":0,"suit":"JK"},"joker_call":false,"joker_suit":"C","next_turn":0,"seat":4}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := eventValue(tt.ev)
			if err != nil {
				t.Fatalf("eventValue error: %v", err)
			}
			data, err := marshalStruct(value)
			if err != nil {
				t.Fatalf("marshalStruct error: %v", err)
			}
			assertSameJSON(t, data, []byte(tt.want))
		})
	}

	if _, err := eventValue(app.Event{Kind: app.EventGameEnded, Payload: "bogus"}); err == nil {
		t.Fatal("expected error for unknown payload")
	}
}

func TestEveryEventKindHasOpCode(t *testing.T) {
	kinds := []app.EventKind{
		app.EventGameStarted, app.EventHandDealt, app.EventBidPlaced, app.EventBiddingResolved,
		app.EventKittyRevealed, app.EventCardsDiscarded, app.EventBidFinalized, app.EventFriendSelected,
		app.EventCardPlayed, app.EventFriendRevealed, app.EventTrickCompleted, app.EventGameEnded,
	}
	seen := make(map[int64]bool)
	for _, k := range kinds {
		op, ok := eventOpCodes[k]
		if !ok {
			t.Fatalf("event %v has no op code", k)
		}
		if seen[op] {
			t.Fatalf("op code %d used twice", op)
		}
		seen[op] = true
	}
}

func TestStateValueCurrentTrickSeats(t *testing.T) {
	st := domain.GameState{
		Phase:        domain.PhasePlaying,
		TrickLeader:  3,
		CurrentTrick: []domain.Card{{Suit: domain.Spade, Rank: 9}, {Suit: domain.Spade, Rank: 12}, {Suit: domain.Heart, Rank: 2}},
		Seats:        make([]domain.SeatState, domain.NumPlayers),
	}
	data, err := marshalStruct(stateValue(st, 0))
	if err != nil {
		t.Fatalf("marshalStruct error: %v", err)
	}
	var got struct {
		CurrentTrick []struct {
			Seat int `json:"seat"`
		} `json:"current_trick"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	wantSeats := []int{3, 4, 0}
	for i, pc := range got.CurrentTrick {
		if pc.Seat != wantSeats[i] {
			t.Fatalf("trick card %d seat = %d, want %d", i, pc.Seat, wantSeats[i])
		}
	}
}

func assertSameJSON(t *testing.T, got, want []byte) {
	t.Helper()
	var g, w interface{}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("invalid JSON %s: %v", got, err)
	}
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("invalid JSON %s: %v", want, err)
	}
	gb, _ := json.Marshal(g)
	wb, _ := json.Marshal(w)
	if string(gb) != string(wb) {
		t.Fatalf("JSON = %s, want %s", gb, wb)
	}
}
