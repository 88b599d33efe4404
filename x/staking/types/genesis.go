package types

import (
	"cosmossdk.io/math"
	"github.com/pkg/errors"
)

type GenesisState struct {
	Params            Params           `json:"params"`
	TotalBonded       math.Int         `json:"total_bonded"`
	GlobalRewardIndex math.Int         `json:"global_reward_index"`
	PendingRewards    math.Int         `json:"pending_rewards"`
	Validators        []Validator      `json:"validators,omitempty"`
	Delegations       []Delegation     `json:"delegations,omitempty"`
	UnbondingEntries  []UnbondingEntry `json:"unbonding_entries,omitempty"`
	NextUnbondingID   uint64           `json:"next_unbonding_id"`
	SlashEvents       []SlashEvent     `json:"slash_events,omitempty"`
	NextSlashEventID  uint64           `json:"next_slash_event_id"`
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params:            DefaultParams(),
		TotalBonded:       math.ZeroInt(),
		GlobalRewardIndex: math.ZeroInt(),
		PendingRewards:    math.ZeroInt(),
	}
}

// ValidateGenesis performs basic validation of staking genesis data
func ValidateGenesis(data *GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}

	if data.TotalBonded.IsNil() || data.TotalBonded.IsNegative() {
		return errors.New("total bonded must be non-negative")
	}

	if data.PendingRewards.IsNil() || data.PendingRewards.IsNegative() {
		return errors.New("pending rewards must be non-negative")
	}

	validators := make(map[string]bool, len(data.Validators))
	for _, val := range data.Validators {
		if len(val.Address) == 0 {
			return errors.New("validator with empty address")
		}

		key := string(val.Address)
		if validators[key] {
			return errors.Errorf("duplicate validator %x", val.Address)
		}
		validators[key] = true

		if val.TotalStake.LT(val.SelfStake) {
			return errors.Errorf("validator %x total stake below self stake", val.Address)
		}
	}

	for _, del := range data.Delegations {
		if !validators[string(del.Validator)] {
			return errors.Errorf("delegation to unknown validator %x", del.Validator)
		}

		if del.Amount.IsNil() || !del.Amount.IsPositive() {
			return errors.New("delegation amount must be positive")
		}
	}

	return nil
}
