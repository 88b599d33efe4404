package types

import (
	"cosmossdk.io/math"
)

// ValidatorStatus is the lifecycle state of a validator.
type ValidatorStatus string

const (
	// Pending validators are registered but have never met activation
	// requirements.
	StatusPending ValidatorStatus = "pending"

	// Active validators are bonded: they earn rewards and carry voting
	// power.
	StatusActive ValidatorStatus = "active"

	// Jailed validators were removed for a slashable offense and must
	// unjail before rejoining.
	StatusJailed ValidatorStatus = "jailed"

	// Inactive validators dropped below requirements or unjailed and are
	// waiting to re-activate.
	StatusInactive ValidatorStatus = "inactive"
)

// Validator is the on-chain record of a staking participant. TotalStake is
// always SelfStake plus the sum of delegations to the validator.
type Validator struct {
	Address        []byte          `json:"address"`
	SelfStake      math.Int        `json:"self_stake"`
	TotalStake     math.Int        `json:"total_stake"`
	CommissionRate uint64          `json:"commission_rate"` // basis points
	Status         ValidatorStatus `json:"status"`

	// RewardIndex accumulates reward per staked token, scaled by
	// RewardScale. RewardResidual carries the truncation remainder of the
	// last index update. SelfRewardCursor is the index at the last self
	// stake settlement, playing the role a delegation cursor plays for
	// delegators.
	RewardIndex           math.Int `json:"reward_index"`
	RewardResidual        math.Int `json:"reward_residual"`
	SelfRewardCursor      math.Int `json:"self_reward_cursor"`
	AccumulatedCommission math.Int `json:"accumulated_commission"`

	PenaltyCount uint32   `json:"penalty_count"`
	TotalSlashed math.Int `json:"total_slashed"`
}

// NewValidator creates a pending validator with zero reward state.
func NewValidator(address []byte, selfStake math.Int, commissionRateBps uint64) Validator {
	return Validator{
		Address:               address,
		SelfStake:             selfStake,
		TotalStake:            selfStake,
		CommissionRate:        commissionRateBps,
		Status:                StatusPending,
		RewardIndex:           math.ZeroInt(),
		RewardResidual:        math.ZeroInt(),
		SelfRewardCursor:      math.ZeroInt(),
		AccumulatedCommission: math.ZeroInt(),
		TotalSlashed:          math.ZeroInt(),
	}
}

// IsBonded reports whether the validator participates in rewards and
// consensus power.
func (v Validator) IsBonded() bool {
	return v.Status == StatusActive
}
