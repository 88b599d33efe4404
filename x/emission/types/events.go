package types

import (
	"cosmossdk.io/math"
)

// EmissionEvent is the immutable per-height record of a block's emission.
// Events are keyed by height and never rewritten, so replaying a height is
// a no-op. Σ Pools always equals TotalEmitted exactly.
type EmissionEvent struct {
	Height            uint64              `json:"height"`
	Timestamp         uint64              `json:"timestamp"`
	TotalEmitted      math.Int            `json:"total_emitted"`
	Pools             map[string]math.Int `json:"pools"`
	CirculatingSupply math.Int            `json:"circulating_supply"`
	RewardIndexAfter  math.Int            `json:"reward_index_after"`
}

// SupplyInfo is a point-in-time view of token issuance.
type SupplyInfo struct {
	InitialSupply     math.Int `json:"initial_supply"`
	CirculatingSupply math.Int `json:"circulating_supply"`
	LastHeight        uint64   `json:"last_height"`
}
