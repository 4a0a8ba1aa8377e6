package ports

import "context"

// WalletUpdate is a single coin balance change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort manages the virtual-currency wallet. Reward amounts are
// external policy; the core only forwards settled updates.
type EconomyPort interface {
	// GetBalance retrieves the current coin balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies the end-of-match wallet changes.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
