package ports

import "github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"

// RewardPolicy maps final standings to coin deltas. Amounts are external
// policy, never core logic.
type RewardPolicy interface {
	// Rewards returns the per-seat coin delta, indexed by seat, for the
	// given standings (seat indexes ordered best first).
	Rewards(gt domain.GameType, standings []int) [4]int64
}
