package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"mighty/internal/domain"
	"mighty/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// matchLister is the slice of runtime.NakamaModule the room directory needs.
type matchLister interface {
	MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error)
	MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error)
}

// NakamaRoomDirectory implements ports.RoomDirectory over Nakama's match listing.
type NakamaRoomDirectory struct {
	nk matchLister
}

// NewNakamaRoomDirectory creates a new room directory.
func NewNakamaRoomDirectory(nk matchLister) *NakamaRoomDirectory {
	return &NakamaRoomDirectory{nk: nk}
}

// FindOpen returns a lobby with at least one free seat.
func (d *NakamaRoomDirectory) FindOpen(ctx context.Context) (string, error) {
	query := fmt.Sprintf("+label.%s:T +label.%s:%s", labelKeyOpen, labelKeyGame, gameLabel)
	minSize := 0
	maxSize := domain.NumPlayers - 1

	matches, err := d.nk.MatchList(ctx, 1, true, "", &minSize, &maxSize, query)
	if err != nil {
		return "", fmt.Errorf("failed to list matches: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].GetMatchId(), nil
}

// Create starts a new table; seats are assigned in MatchJoin.
func (d *NakamaRoomDirectory) Create(ctx context.Context) (string, error) {
	matchID, err := d.nk.MatchCreate(ctx, MatchNameMighty, map[string]interface{}{})
	if err != nil {
		return "", fmt.Errorf("failed to create match: %w", err)
	}
	return matchID, nil
}

// List returns Mighty tables with their advertised state.
func (d *NakamaRoomDirectory) List(ctx context.Context, limit int) ([]ports.RoomInfo, error) {
	query := fmt.Sprintf("+label.%s:%s", labelKeyGame, gameLabel)
	matches, err := d.nk.MatchList(ctx, limit, true, "", nil, nil, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	rooms := make([]ports.RoomInfo, 0, len(matches))
	for _, m := range matches {
		room := ports.RoomInfo{MatchID: m.GetMatchId(), Seated: int(m.GetSize())}
		var label struct {
			Open  bool   `json:"open"`
			Phase string `json:"phase"`
		}
		if raw := m.GetLabel().GetValue(); raw != "" {
			if err := json.Unmarshal([]byte(raw), &label); err == nil {
				room.Open = label.Open
				room.Phase = label.Phase
			}
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

var _ ports.RoomDirectory = (*NakamaRoomDirectory)(nil)
