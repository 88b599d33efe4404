package types

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"cosmossdk.io/math"
)

// Default parameter values
const (
	DefaultBondDenom   = "udgt"
	DefaultRewardDenom = "udrt"

	DefaultMaxValidators = 100

	DefaultSlashFractionDoubleSignBps = 500 // 5%
	DefaultSlashFractionDowntimeBps   = 100 // 1%
	DefaultSlashFractionGovernanceBps = 500 // 5%

	DefaultMaxCommissionRateBps = 10_000
)

var (
	// DefaultMinSelfStake is the self stake required for activation.
	DefaultMinSelfStake = math.NewInt(1_000_000_000_000)

	// DefaultUnbondingPeriod is three weeks.
	DefaultUnbondingPeriod = 21 * 24 * time.Hour
)

type Params struct {
	BondDenom   string `json:"bond_denom" yaml:"bond_denom"`
	RewardDenom string `json:"reward_denom" yaml:"reward_denom"`

	MinSelfStake    math.Int      `json:"min_self_stake" yaml:"min_self_stake"`
	UnbondingPeriod time.Duration `json:"unbonding_period" yaml:"unbonding_period"`
	MaxValidators   uint32        `json:"max_validators" yaml:"max_validators"`

	SlashFractionDoubleSignBps uint64 `json:"slash_fraction_double_sign_bps" yaml:"slash_fraction_double_sign_bps"`
	SlashFractionDowntimeBps   uint64 `json:"slash_fraction_downtime_bps" yaml:"slash_fraction_downtime_bps"`
	SlashFractionGovernanceBps uint64 `json:"slash_fraction_governance_bps" yaml:"slash_fraction_governance_bps"`
}

// DefaultParams returns the default staking parameters.
func DefaultParams() Params {
	return Params{
		BondDenom:                  DefaultBondDenom,
		RewardDenom:                DefaultRewardDenom,
		MinSelfStake:               DefaultMinSelfStake,
		UnbondingPeriod:            DefaultUnbondingPeriod,
		MaxValidators:              DefaultMaxValidators,
		SlashFractionDoubleSignBps: DefaultSlashFractionDoubleSignBps,
		SlashFractionDowntimeBps:   DefaultSlashFractionDowntimeBps,
		SlashFractionGovernanceBps: DefaultSlashFractionGovernanceBps,
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// SlashFractionBps returns the basis-point penalty for the given reason.
func (p Params) SlashFractionBps(reason SlashReason) (uint64, error) {
	switch reason {
	case SlashReasonDoubleSigning:
		return p.SlashFractionDoubleSignBps, nil
	case SlashReasonDowntime:
		return p.SlashFractionDowntimeBps, nil
	case SlashReasonGovernanceViolation:
		return p.SlashFractionGovernanceBps, nil
	default:
		return 0, errors.Errorf("unknown slash reason %q", reason)
	}
}

// Validate performs basic validation on staking parameters
func (p Params) Validate() error {
	if p.BondDenom == "" {
		return errors.New("empty bond denom")
	}

	if p.RewardDenom == "" {
		return errors.New("empty reward denom")
	}

	if p.MinSelfStake.IsNil() || !p.MinSelfStake.IsPositive() {
		return errors.New("minimum self stake must be positive")
	}

	if p.UnbondingPeriod <= 0 {
		return errors.New("unbonding period must be positive")
	}

	if p.MaxValidators == 0 {
		return errors.New("max validators must be positive")
	}

	for _, bps := range []uint64{
		p.SlashFractionDoubleSignBps,
		p.SlashFractionDowntimeBps,
		p.SlashFractionGovernanceBps,
	} {
		if bps > 10_000 {
			return errors.Errorf("slash fraction %d exceeds 10000 bps", bps)
		}
	}

	return nil
}
