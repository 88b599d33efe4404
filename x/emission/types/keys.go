package types

const (
	// module name
	ModuleName = "emission"

	// StoreKey is the default store key for emission
	StoreKey = ModuleName
)

var (
	ParamsKey            = []byte{0x01} // Prefix for params key
	LastHeightKey        = []byte{0x02} // Key to store the last applied height
	CirculatingSupplyKey = []byte{0x03} // Key to store the circulating supply

	EmissionEventsPrefix = []byte{0x11} // prefix for per-height emission events
)

// Pool-holding module accounts. The emission split is configurable, but
// the genesis breakdown uses these four pools.
const (
	PoolBlockRewards     = "block_rewards"
	PoolStakingRewards   = "staking_rewards"
	PoolModuleIncentives = "ai_module_incentives"
	PoolBridgeOperations = "bridge_operations"
)
