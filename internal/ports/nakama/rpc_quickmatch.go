package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"mighty/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used for RPC errors.
const (
	codeInvalidArgument = 3
	codeInternal        = 13
)

// newRoomDirectory is swapped in tests.
var newRoomDirectory = func(nk runtime.NakamaModule) ports.RoomDirectory {
	return NewNakamaRoomDirectory(nk)
}

// QuickMatchResponse is the payload returned to clients when requesting an open table.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcListRooms, rpcListRooms)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	rooms := newRoomDirectory(nk)

	matchID, err := rooms.FindOpen(ctx)
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: %v", userID, err)
		return "", runtime.NewError("failed to find match", codeInternal)
	}

	resp := QuickMatchResponse{MatchID: matchID}
	if matchID == "" {
		matchID, err = rooms.Create(ctx)
		if err != nil {
			logger.Error("rpcQuickMatch [User:%s]: %v", userID, err)
			return "", runtime.NewError("failed to create match", codeInternal)
		}
		resp = QuickMatchResponse{MatchID: matchID, IsNew: true}
		logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, matchID)
	}

	b, _ := json.Marshal(resp)
	return string(b), nil
}
