package nakama

import (
	"context"
	"fmt"

	"mighty/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// accountGetter is the slice of runtime.NakamaModule the account adapter needs.
type accountGetter interface {
	AccountGetId(ctx context.Context, userID string) (*api.Account, error)
}

// NakamaAccountAdapter implements ports.AccountPort using Nakama's account API.
type NakamaAccountAdapter struct {
	nk accountGetter
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk accountGetter) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// DisplayName returns the account display name, or the username when unset.
func (a *NakamaAccountAdapter) DisplayName(ctx context.Context, userID string) (string, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get account: %w", err)
	}
	user := account.GetUser()
	if name := user.GetDisplayName(); name != "" {
		return name, nil
	}
	return user.GetUsername(), nil
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
