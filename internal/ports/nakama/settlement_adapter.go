package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mighty/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// multiUpdater is the slice of runtime.NakamaModule the settlement adapter needs.
type multiUpdater interface {
	MultiUpdate(ctx context.Context, accountUpdates []*runtime.AccountUpdate, storageWrites []*runtime.StorageWrite, storageDeletes []*runtime.StorageDelete, walletUpdates []*runtime.WalletUpdate, updateLedger bool) ([]*api.StorageObjectAck, []*runtime.WalletUpdateResult, error)
}

// walletStore reads balances and applies settlements.
type walletStore interface {
	multiUpdater
	accountGetter
}

// NakamaSettlementAdapter pays out deals using Nakama storage + wallet updates.
type NakamaSettlementAdapter struct {
	nk walletStore
}

// NewNakamaSettlementAdapter creates a new settlement adapter.
func NewNakamaSettlementAdapter(nk walletStore) *NakamaSettlementAdapter {
	return &NakamaSettlementAdapter{nk: nk}
}

// SettleDeal writes a settlement marker keyed by dealID together with the
// wallet changes. A second call for the same deal is rejected by the
// storage version check and reported as applied=false. Debits are capped at
// the loser's balance and credits shrink to what was collected.
func (a *NakamaSettlementAdapter) SettleDeal(ctx context.Context, dealID string, updates []ports.WalletUpdate) (bool, error) {
	if dealID == "" {
		return false, fmt.Errorf("dealID is required")
	}

	balances := make(map[string]int64)
	for _, u := range updates {
		if u.Amount >= 0 || u.UserID == "" {
			continue
		}
		balance, err := a.balance(ctx, u.UserID)
		if err != nil {
			return false, err
		}
		balances[u.UserID] = balance
	}
	updates = fitToBalances(updates, balances)

	walletUpdates := make([]*runtime.WalletUpdate, 0, len(updates))
	for _, u := range updates {
		if u.Amount == 0 || u.UserID == "" {
			continue
		}
		walletUpdates = append(walletUpdates, &runtime.WalletUpdate{
			UserID:    u.UserID,
			Changeset: map[string]int64{walletCurrency: u.Amount},
			Metadata:  u.Metadata,
		})
	}

	marker := map[string]interface{}{
		"deal_id":    dealID,
		"updates":    len(walletUpdates),
		"settled_at": time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settlement marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      settlementCollection,
			Key:             dealID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	_, _, err = a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to settle deal %s: %w", dealID, err)
	}
	return true, nil
}

// balance returns the user's gold, as the economy adapter reads it.
func (a *NakamaSettlementAdapter) balance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account.GetWallet() == "" {
		return 0, nil
	}
	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.GetWallet()), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return wallet[walletCurrency], nil
}

// fitToBalances caps every debit at the payer's balance and, when less was
// collected than is owed, scales the credits down so the changes still sum
// to zero. Changed updates record the original amount as "requested".
func fitToBalances(updates []ports.WalletUpdate, balances map[string]int64) []ports.WalletUpdate {
	out := make([]ports.WalletUpdate, len(updates))
	copy(out, updates)

	var collected, owed int64
	for i, u := range out {
		if u.Amount >= 0 {
			owed += u.Amount
			continue
		}
		available := balances[u.UserID]
		if available < 0 {
			available = 0
		}
		if -u.Amount > available {
			out[i] = withAmount(u, -available)
		}
		collected -= out[i].Amount
	}
	if collected >= owed {
		return out
	}

	var paid int64
	for i, u := range out {
		if u.Amount <= 0 {
			continue
		}
		share := u.Amount * collected / owed
		out[i] = withAmount(u, share)
		paid += share
	}
	for i := range out {
		if paid == collected {
			break
		}
		if updates[i].Amount > 0 {
			out[i].Amount++
			paid++
		}
	}
	return out
}

func withAmount(u ports.WalletUpdate, amount int64) ports.WalletUpdate {
	metadata := make(map[string]interface{}, len(u.Metadata)+1)
	for k, v := range u.Metadata {
		metadata[k] = v
	}
	metadata["requested"] = u.Amount
	return ports.WalletUpdate{UserID: u.UserID, Amount: amount, Metadata: metadata}
}

var _ ports.SettlementPort = (*NakamaSettlementAdapter)(nil)
