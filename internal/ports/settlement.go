package ports

import "context"

// WalletUpdate represents a single currency change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// SettlementPort pays out a finished deal.
type SettlementPort interface {
	// SettleDeal applies the wallet changes of one deal atomically, at most
	// once per dealID. Returns applied=false when the deal was already settled.
	SettleDeal(ctx context.Context, dealID string, updates []WalletUpdate) (applied bool, err error)
}
