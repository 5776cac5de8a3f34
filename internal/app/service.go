package app

import (
	"errors"
	"math/rand"
	"time"

	"mighty/internal/domain"

	"github.com/google/uuid"
)

// Service contains Mighty use-cases operating on domain state.
type Service struct {
	rng    *rand.Rand
	params domain.GameParams
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, params domain.GameParams) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, params: params}
}

var (
	ErrPlayerCount = errors.New("a table needs exactly five players")
	ErrNoGame      = errors.New("no game in progress")
)

// StartGame seats the five named players in order and deals the first hand
// with firstSeat opening the bidding.
func (s *Service) StartGame(names []string, firstSeat int) (*domain.Game, []Event, error) {
	if len(names) != domain.NumPlayers {
		return nil, nil, ErrPlayerCount
	}
	game := domain.NewGame(s.params)
	for _, name := range names {
		if _, err := game.AddPlayer(name); err != nil {
			return nil, nil, err
		}
	}
	events, err := s.deal(game, firstSeat)
	if err != nil {
		return nil, nil, err
	}
	return game, events, nil
}

// NextDeal resets the table, keeping seats and scores, and deals again.
func (s *Service) NextDeal(game *domain.Game, firstSeat int) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	game.Reset()
	return s.deal(game, firstSeat)
}

func (s *Service) deal(game *domain.Game, firstSeat int) ([]Event, error) {
	if err := game.SetFirstPlayer(firstSeat); err != nil {
		return nil, err
	}
	game.InitializeDeck()
	if err := game.DealCards(s.rng); err != nil {
		return nil, err
	}

	events := make([]Event, 0, domain.NumPlayers+1)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			DealID:      uuid.NewString(),
			FirstPlayer: firstSeat,
			Phase:       game.Phase(),
		},
	})
	for seat, p := range game.Players() {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat: seat,
				Hand: append([]domain.Card(nil), p.Hand...),
			},
			Recipients: []int{seat},
		})
	}
	return events, nil
}

// SubmitBid places a bid (score 0 passes) and reports the bidding outcome.
func (s *Service) SubmitBid(game *domain.Game, seat, score int, suit domain.Suit) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if err := game.SubmitBid(seat, score, suit); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventBidPlaced,
		Payload: BidPlacedPayload{
			Seat:     seat,
			Score:    score,
			Suit:     suit,
			NextTurn: game.CurrentTurn(),
		},
	}}
	if game.Phase() != domain.PhaseDiscarding {
		return events, nil
	}

	president := game.President()
	events = append(events,
		Event{
			Kind: EventBiddingResolved,
			Payload: BiddingResolvedPayload{
				President: president,
				Bid:       *game.BidState().CurrentBid,
			},
		},
		Event{
			Kind:       EventKittyRevealed,
			Payload:    KittyRevealedPayload{Seat: president, Kitty: game.Kitty(president)},
			Recipients: []int{president},
		},
	)
	return events, nil
}

// Discard returns three cards from the president's hand plus kitty.
func (s *Service) Discard(game *domain.Game, seat int, cards []domain.Card) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if err := game.DiscardCards(seat, cards); err != nil {
		return nil, err
	}
	return []Event{
		{Kind: EventCardsDiscarded, Payload: CardsDiscardedPayload{Seat: seat}},
		{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: append([]domain.Card(nil), game.Player(seat).Hand...)},
			Recipients: []int{seat},
		},
	}, nil
}

// ModifyBid raises or keeps the final contract. score 0 keeps it.
func (s *Service) ModifyBid(game *domain.Game, seat, score int, suit domain.Suit) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if err := game.ModifyFinalBid(seat, score, suit); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventBidFinalized,
		Payload: BidFinalizedPayload{
			President: seat,
			Bid:       *game.BidState().CurrentBid,
		},
	}}, nil
}

// SelectFriend names the friend card. NoSuit plays alone.
func (s *Service) SelectFriend(game *domain.Game, seat int, suit domain.Suit, rank int) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if err := game.SelectFriend(seat, suit, rank); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventFriendSelected,
		Payload: FriendSelectedPayload{
			President:  seat,
			FriendCard: game.State().FriendCard,
		},
	}}, nil
}

// PlayCard plays one card and reports reveals, trick completion and the
// end of the deal.
func (s *Service) PlayCard(game *domain.Game, seat int, card domain.Card, opts domain.PlayOptions) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	leading := len(game.CurrentTrick()) == 0
	tricksBefore := len(game.Tricks())
	friendBefore := game.Friend()

	if err := game.PlayCard(seat, card, opts); err != nil {
		return nil, err
	}

	played := CardPlayedPayload{
		Seat:     seat,
		Card:     card,
		NextTurn: game.CurrentTurn(),
	}
	if leading {
		played.JokerSuit = game.JokerSuit()
		played.JokerCall = game.JokerCall()
	}
	events := []Event{{Kind: EventCardPlayed, Payload: played}}

	if friend := game.Friend(); friend != friendBefore {
		events = append(events, Event{Kind: EventFriendRevealed, Payload: FriendRevealedPayload{Seat: friend}})
	}
	if tricks := game.Tricks(); len(tricks) > tricksBefore {
		events = append(events, Event{
			Kind:    EventTrickCompleted,
			Payload: TrickCompletedPayload{Trick: tricks[len(tricks)-1], Number: len(tricks)},
		})
	}
	if game.Phase() == domain.PhaseGameOver {
		ended := GameEndedPayload{Settlement: *game.Settlement()}
		for i, p := range game.Players() {
			ended.Scores[i] = p.Score
		}
		events = append(events, Event{Kind: EventGameEnded, Payload: ended})
	}
	return events, nil
}
