package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mighty/internal/app"
	"mighty/internal/config"
	"mighty/internal/domain"
	"mighty/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	errNotSeated    = errors.New("player has no seat at this table")
	errGameRunning  = errors.New("a deal is already in progress")
	errSeatTokenUse = errors.New("seat token does not match a free seat")
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	MatchID   string
	Seats     [domain.NumPlayers]string   // user IDs, empty string means seat is empty
	Names     [domain.NumPlayers]string   // display names captured on join
	Ready     [domain.NumPlayers]bool     // lobby ready flags
	Presences map[string]runtime.Presence // user ID -> presence for targeted messaging
	FirstSeat int                         // seat opening the next deal's bidding
	DealID    string                      // id of the current deal, used for settlement
	StakeTier string
	Tick      int64

	App        *app.Service
	Game       *domain.Game // nil while in lobby
	Tokens     *app.SeatTokenService
	Settlement ports.SettlementPort // nil when settlement is disabled
	Accounts   ports.AccountPort

	reclaims map[string]reclaim // joining user ID -> seat reclaimed by token
}

// reclaim is a seat token accepted in MatchJoinAttempt, pending MatchJoin.
type reclaim struct {
	seat   int
	holder string // user the seat belonged to when the token was checked
	tick   int64
}

// reclaimTicks is how long an accepted reclaim holds its seat against
// other token holders.
const reclaimTicks = 10 * tickRate

func (ms *MatchState) seatOf(userID string) int {
	if userID == "" {
		return domain.NoSeat
	}
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return domain.NoSeat
}

func (ms *MatchState) firstOpenSeat() int {
	for i, seat := range ms.Seats {
		if seat == "" {
			return i
		}
	}
	return domain.NoSeat
}

func (ms *MatchState) occupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) allReady() bool {
	for i, seat := range ms.Seats {
		if seat == "" || !ms.Ready[i] {
			return false
		}
	}
	return true
}

// presenceAt returns the connected presence at seat, or nil.
func (ms *MatchState) presenceAt(seat int) runtime.Presence {
	if seat < 0 || seat >= len(ms.Seats) || ms.Seats[seat] == "" {
		return nil
	}
	return ms.Presences[ms.Seats[seat]]
}

func (ms *MatchState) label() (string, error) {
	phase := labelPhaseLobby
	if ms.Game != nil {
		phase = string(ms.Game.Phase())
	}
	b, err := marshalStruct(map[string]interface{}{
		labelKeyOpen:   ms.Game == nil && ms.firstOpenSeat() != domain.NoSeat,
		labelKeyGame:   gameLabel,
		labelKeyPhase:  phase,
		labelKeySeated: ms.occupiedSeatCount(),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	settings := config.FromEnv(env)
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	tier, _ := params["tier"].(string)

	state := &MatchState{
		MatchID:   matchID,
		Presences: make(map[string]runtime.Presence),
		StakeTier: tier,
		App:       app.NewService(nil, domain.GameParams{MaxDealAttempts: config.GetMaxDealAttempts()}),
		reclaims:  make(map[string]reclaim),
	}
	if nk != nil {
		state.Accounts = NewNakamaAccountAdapter(nk)
		if settings.SettlementEnabled {
			state.Settlement = NewNakamaSettlementAdapter(nk)
		}
	}
	if settings.SeatTokenSecret != "" {
		state.Tokens = app.NewSeatTokenService(settings.SeatTokenSecret, settings.SeatTokenIssuer, config.GetSeatTokenTTL())
	} else {
		logger.Warn("MatchInit: %s not set, seat tokens disabled.", config.EnvSeatTokenSecret)
	}

	label, err := state.label()
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	s, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if s.seatOf(userID) != domain.NoSeat {
		return s, true, ""
	}

	if token := metadata[seatTokenMetadataKey]; token != "" {
		seat, err := s.verifySeatToken(token, userID, tick)
		if err == nil {
			s.reclaims[userID] = reclaim{seat: seat, holder: s.Seats[seat], tick: tick}
			return s, true, ""
		}
		logger.Warn("MatchJoinAttempt: User %s presented a bad seat token: %v", userID, err)
		if s.Game != nil {
			return s, false, "invalid seat token"
		}
	}

	if s.Game != nil {
		return s, false, "match in progress"
	}
	if s.firstOpenSeat() == domain.NoSeat {
		return s, false, "match full"
	}
	return s, true, ""
}

// verifySeatToken returns the seat a token may reclaim: the token must be
// for this match, its seat must still belong to the disconnected user it
// was issued to, and no other joiner may have a live reclaim on that seat.
func (ms *MatchState) verifySeatToken(token, joiner string, tick int64) (int, error) {
	claims, err := ms.Tokens.Verify(token)
	if err != nil {
		return domain.NoSeat, err
	}
	if claims.MatchID != ms.MatchID || claims.Seat < 0 || claims.Seat >= domain.NumPlayers {
		return domain.NoSeat, errSeatTokenUse
	}
	if ms.Seats[claims.Seat] != claims.UserID {
		return domain.NoSeat, errSeatTokenUse
	}
	if _, online := ms.Presences[claims.UserID]; online {
		return domain.NoSeat, errSeatTokenUse
	}
	for userID, r := range ms.reclaims {
		if tick-r.tick >= reclaimTicks {
			delete(ms.reclaims, userID)
			continue
		}
		if userID != joiner && r.seat == claims.Seat {
			return domain.NoSeat, errSeatTokenUse
		}
	}
	return claims.Seat, nil
}

// takeReclaim removes the pending reclaim for userID and reports the seat
// if it is still held by the same offline user.
func (ms *MatchState) takeReclaim(userID string) (int, bool) {
	r, ok := ms.reclaims[userID]
	if !ok {
		return domain.NoSeat, false
	}
	delete(ms.reclaims, userID)
	if r.holder == "" || ms.Seats[r.seat] != r.holder {
		return domain.NoSeat, false
	}
	if _, online := ms.Presences[r.holder]; online {
		return domain.NoSeat, false
	}
	return r.seat, true
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	var kicked []runtime.Presence
	for _, p := range presences {
		userID := p.GetUserId()
		seat := s.seatOf(userID)

		if reclaimed, ok := s.takeReclaim(userID); ok && seat == domain.NoSeat {
			logger.Info("MatchJoin: User %s reclaimed seat %d from %s", userID, reclaimed, s.Seats[reclaimed])
			s.Seats[reclaimed] = userID
			seat = reclaimed
		}
		if seat == domain.NoSeat && s.Game != nil {
			logger.Warn("MatchJoin: User %s has no seat to reclaim, removing.", userID)
			kicked = append(kicked, p)
			continue
		}
		s.Presences[userID] = p

		if seat == domain.NoSeat {
			seat = s.firstOpenSeat()
			if seat == domain.NoSeat {
				logger.Warn("MatchJoin: User %s joined but no seat was available.", userID)
				continue
			}
			s.Seats[seat] = userID
			s.Names[seat] = mh.displayName(ctx, s, logger, p)
			logger.Debug("MatchJoin: User %s took seat %d.", userID, seat)
		}

		mh.sendSeatToken(s, dispatcher, logger, p, seat)
	}

	if len(kicked) > 0 {
		if err := dispatcher.MatchKick(kicked); err != nil {
			logger.Error("MatchJoin: Failed to kick: %v", err)
		}
	}
	mh.updateLabel(s, dispatcher, logger)
	mh.broadcastState(s, dispatcher, logger)
	return s
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(s.Presences, userID)
		delete(s.reclaims, userID)

		seat := s.seatOf(userID)
		if seat == domain.NoSeat {
			continue
		}
		if s.Game == nil {
			s.Seats[seat] = ""
			s.Names[seat] = ""
			s.Ready[seat] = false
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
		} else {
			logger.Info("MatchLeave: User %s disconnected, seat %d held.", userID, seat)
		}
	}

	if len(s.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected players.")
		return nil
	}

	mh.updateLabel(s, dispatcher, logger)
	mh.broadcastState(s, dispatcher, logger)
	return s
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		return state
	}

	s.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpReady:
			mh.handleReady(ctx, s, dispatcher, logger, msg)
		case OpBid, OpDiscard, OpModifyBid, OpSelectFriend, OpPlayCard, OpNextDeal:
			mh.handleAction(ctx, s, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return s
}

func (mh *matchHandler) handleReady(ctx context.Context, s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	seat := s.seatOf(userID)
	if seat == domain.NoSeat {
		mh.sendError(s, dispatcher, logger, userID, errNotSeated)
		return
	}
	if s.Game != nil {
		mh.sendError(s, dispatcher, logger, userID, errGameRunning)
		return
	}

	s.Ready[seat] = true
	if s.occupiedSeatCount() == domain.NumPlayers && s.allReady() {
		mh.startGame(ctx, s, dispatcher, logger)
		return
	}
	mh.broadcastState(s, dispatcher, logger)
}

func (mh *matchHandler) startGame(ctx context.Context, s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	names := make([]string, domain.NumPlayers)
	for i := range names {
		names[i] = s.Names[i]
		if names[i] == "" {
			names[i] = s.Seats[i]
		}
	}

	game, events, err := s.App.StartGame(names, s.FirstSeat)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	s.Game = game
	s.Ready = [domain.NumPlayers]bool{}

	mh.dispatchEvents(ctx, s, dispatcher, logger, events)
	mh.updateLabel(s, dispatcher, logger)
	mh.broadcastState(s, dispatcher, logger)

	logger.Info("StartGame: Deal %s started, seat %d opens bidding.", s.DealID, s.FirstSeat)
}

func (mh *matchHandler) handleAction(ctx context.Context, s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	seat := s.seatOf(userID)
	log := logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"seat":    seat,
		"op_code": msg.GetOpCode(),
	})

	if seat == domain.NoSeat {
		mh.sendError(s, dispatcher, log, userID, errNotSeated)
		return
	}

	events, err := applyAction(s, seat, msg.GetOpCode(), msg.GetData())
	if err != nil {
		log.Warn("handleAction: rejected: %v", err)
		mh.sendError(s, dispatcher, log, userID, err)
		return
	}

	mh.dispatchEvents(ctx, s, dispatcher, log, events)
	mh.updateLabel(s, dispatcher, log)
	mh.broadcastState(s, dispatcher, log)
}

// applyAction decodes an action payload and runs it against the game.
func applyAction(s *MatchState, seat int, opCode int64, data []byte) ([]app.Event, error) {
	if s.Game == nil {
		return nil, app.ErrNoGame
	}

	switch opCode {
	case OpBid, OpModifyBid:
		var req bidRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		suit, err := domain.ParseSuit(req.Suit)
		if err != nil {
			return nil, err
		}
		if opCode == OpBid {
			return s.App.SubmitBid(s.Game, seat, req.Score, suit)
		}
		return s.App.ModifyBid(s.Game, seat, req.Score, suit)

	case OpDiscard:
		var req discardRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		cards, err := decodeCards(req.Cards)
		if err != nil {
			return nil, err
		}
		return s.App.Discard(s.Game, seat, cards)

	case OpSelectFriend:
		var req friendRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		suit, err := domain.ParseSuit(req.Suit)
		if err != nil {
			return nil, err
		}
		return s.App.SelectFriend(s.Game, seat, suit, req.Rank)

	case OpPlayCard:
		var req playRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		card, err := decodeCard(req.Card)
		if err != nil {
			return nil, err
		}
		jokerSuit, err := domain.ParseSuit(req.JokerSuit)
		if err != nil {
			return nil, err
		}
		return s.App.PlayCard(s.Game, seat, card, domain.PlayOptions{JokerSuit: jokerSuit, CallJoker: req.CallJoker})

	case OpNextDeal:
		if s.Game.Phase() != domain.PhaseGameOver {
			return nil, domain.ErrWrongPhase
		}
		return s.App.NextDeal(s.Game, s.FirstSeat)
	}
	return nil, fmt.Errorf("unsupported op code %d", opCode)
}

// dispatchEvents converts app events to Nakama messages. Private events only
// reach their connected recipients.
func (mh *matchHandler) dispatchEvents(ctx context.Context, s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.GameStartedPayload:
			s.DealID = p.DealID
		case app.GameEndedPayload:
			s.FirstSeat = p.Settlement.President
			mh.settle(ctx, s, logger, p.Settlement)
		}

		opCode, ok := eventOpCodes[ev.Kind]
		if !ok {
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}
		value, err := eventValue(ev)
		if err != nil {
			logger.Error("Failed to convert event %v: %v", ev.Kind, err)
			continue
		}
		data, err := marshalStruct(value)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if ev.Private() {
			for _, seat := range ev.Recipients {
				if p := s.presenceAt(seat); p != nil {
					recipients = append(recipients, p)
				}
			}
			// Never fall back to a broadcast for private events.
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Error("Failed to send event %v: %v", ev.Kind, err)
		}
	}
}

// settle pays out the finished deal through the settlement port.
func (mh *matchHandler) settle(ctx context.Context, s *MatchState, logger runtime.Logger, result domain.Settlement) {
	if s.Settlement == nil {
		return
	}

	stake := config.GetStake(s.StakeTier)
	updates := make([]ports.WalletUpdate, 0, domain.NumPlayers)
	for seat, delta := range result.Deltas {
		updates = append(updates, ports.WalletUpdate{
			UserID: s.Seats[seat],
			Amount: int64(delta) * stake,
			Metadata: map[string]interface{}{
				"match_id": s.MatchID,
				"deal_id":  s.DealID,
				"seat":     seat,
				"reason":   "deal_settlement",
			},
		})
	}

	applied, err := s.Settlement.SettleDeal(ctx, s.DealID, updates)
	if err != nil {
		logger.Error("Failed to settle deal %s: %v", s.DealID, err)
		return
	}
	if !applied {
		logger.Warn("Deal %s was already settled.", s.DealID)
	}
}

// broadcastState sends the lobby to everyone, or during a deal each
// connected seat its own redacted view.
func (mh *matchHandler) broadcastState(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if s.Game == nil {
		seats := make([]interface{}, 0, domain.NumPlayers)
		for i, userID := range s.Seats {
			_, connected := s.Presences[userID]
			seats = append(seats, map[string]interface{}{
				"seat":      i,
				"user_id":   userID,
				"name":      s.Names[i],
				"ready":     s.Ready[i],
				"connected": userID != "" && connected,
			})
		}
		data, err := marshalStruct(map[string]interface{}{"seats": seats, "tick": s.Tick})
		if err != nil {
			logger.Error("Failed to marshal lobby state: %v", err)
			return
		}
		dispatcher.BroadcastMessage(OpLobbyState, data, nil, nil, true)
		return
	}

	for seat := range s.Seats {
		p := s.presenceAt(seat)
		if p == nil {
			continue
		}
		data, err := marshalStruct(stateValue(app.View(s.Game, seat), seat))
		if err != nil {
			logger.Error("Failed to marshal snapshot for seat %d: %v", seat, err)
			continue
		}
		dispatcher.BroadcastMessage(OpStateSnapshot, data, []runtime.Presence{p}, nil, true)
	}
}

// sendError reports a rejected action to the acting user only.
func (mh *matchHandler) sendError(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	presence, ok := s.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	data, err := marshalStruct(map[string]interface{}{"message": cause.Error()})
	if err != nil {
		logger.Error("Failed to marshal error: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) sendSeatToken(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p runtime.Presence, seat int) {
	if s.Tokens == nil {
		return
	}
	token, err := s.Tokens.Issue(s.MatchID, p.GetUserId(), seat)
	if err != nil {
		logger.Error("Failed to issue seat token for %s: %v", p.GetUserId(), err)
		return
	}
	data, err := marshalStruct(map[string]interface{}{"seat": seat, "token": token})
	if err != nil {
		logger.Error("Failed to marshal seat token: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpSeatToken, data, []runtime.Presence{p}, nil, true)
}

func (mh *matchHandler) displayName(ctx context.Context, s *MatchState, logger runtime.Logger, p runtime.Presence) string {
	if s.Accounts != nil {
		name, err := s.Accounts.DisplayName(ctx, p.GetUserId())
		if err == nil && name != "" {
			return name
		}
		if err != nil {
			logger.Warn("Could not resolve display name for %s: %v", p.GetUserId(), err)
		}
	}
	if name := p.GetUsername(); name != "" {
		return name
	}
	return p.GetUserId()
}

func (mh *matchHandler) updateLabel(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := s.label()
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
