package types

import "cosmossdk.io/math"

const (
	// ModuleName is the name of the staking module
	ModuleName = "staking"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// BondedPoolName holds tokens backing active delegations
	BondedPoolName = "bonded_tokens_pool"

	// NotBondedPoolName holds tokens in the unbonding queue
	NotBondedPoolName = "not_bonded_tokens_pool"

	// RewardsPoolName is the emission pool rewards are paid from
	RewardsPoolName = "staking_rewards"
)

var (
	ParamsKey            = []byte{0x01} // key for staking params
	TotalBondedKey       = []byte{0x02} // key for total bonded tokens
	GlobalRewardIndexKey = []byte{0x03} // key for the global reward index
	PendingRewardsKey    = []byte{0x04} // key for rewards held while nothing is bonded

	ValidatorsPrefix            = []byte{0x11} // prefix for validators by address
	DelegationsPrefix           = []byte{0x21} // prefix for delegations by (delegator, validator)
	DelegationsByValIndexPrefix = []byte{0x22} // prefix for the validator-first delegation index
	UnbondingQueuePrefix        = []byte{0x31} // prefix for unbonding entries by (completion time, id)
	NextUnbondingIDKey          = []byte{0x32} // key for the unbonding entry id sequence
	SlashEventsPrefix           = []byte{0x41} // prefix for slash events by id
	NextSlashEventIDKey         = []byte{0x42} // key for the slash event id sequence
)

// RewardScale is the fixed-point precision of reward indexes. Index deltas
// are computed as inflow * RewardScale / stake and applied back with the
// inverse division, carrying the truncation residual per validator.
var RewardScale = math.NewInt(1_000_000_000_000)
