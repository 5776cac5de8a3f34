package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	defaultRoomListLimit = 20
	maxRoomListLimit     = 100
)

type listRoomsRequest struct {
	Limit int `json:"limit"`
}

type roomJSON struct {
	MatchID string `json:"match_id"`
	Seated  int    `json:"seated"`
	Open    bool   `json:"open"`
	Phase   string `json:"phase"`
}

// ListRoomsResponse is the payload of the list_rooms RPC.
type ListRoomsResponse struct {
	Rooms []roomJSON `json:"rooms"`
}

// rpcListRooms returns the advertised tables.
// Payload: (Optional) {"limit": n}
func rpcListRooms(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req := listRoomsRequest{Limit: defaultRoomListLimit}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("Invalid payload", codeInvalidArgument)
		}
	}
	if req.Limit <= 0 || req.Limit > maxRoomListLimit {
		req.Limit = defaultRoomListLimit
	}

	rooms, err := newRoomDirectory(nk).List(ctx, req.Limit)
	if err != nil {
		logger.Error("rpcListRooms: %v", err)
		return "", runtime.NewError("failed to list rooms", codeInternal)
	}

	resp := ListRoomsResponse{Rooms: make([]roomJSON, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, roomJSON{MatchID: r.MatchID, Seated: r.Seated, Open: r.Open, Phase: r.Phase})
	}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
