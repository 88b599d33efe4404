package types

import (
	"cosmossdk.io/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Schedule modes
const (
	ScheduleStatic     = "static"
	SchedulePhased     = "phased"
	SchedulePercentage = "percentage"
)

// Default parameter values
const (
	DefaultRewardDenom   = "udrt"
	DefaultAnnualRateBps = 500 // 5% annual inflation
	DefaultBlocksPerYear = 5_256_000
)

var (
	// DefaultBootstrapAmount is emitted per block while supply is zero, since
	// a percentage of zero cannot be computed.
	DefaultBootstrapAmount = math.NewInt(1_000_000)

	// DefaultMinPerBlock keeps pools progressing at very low supply levels
	// where the truncated per-block amount would round to zero.
	DefaultMinPerBlock = math.NewInt(100)
)

// Phase is a half-open slice of heights with its own per-block amount.
// A nil EndHeight means the phase is open-ended.
type Phase struct {
	StartHeight uint64   `json:"start_height" yaml:"start_height"`
	EndHeight   *uint64  `json:"end_height,omitempty" yaml:"end_height,omitempty"`
	PerBlock    math.Int `json:"per_block" yaml:"per_block"`
}

// Schedule selects how the per-block emission amount is computed.
type Schedule struct {
	Mode string `json:"mode" yaml:"mode"`

	// static
	PerBlock math.Int `json:"per_block" yaml:"per_block"`

	// phased
	Phases []Phase `json:"phases,omitempty" yaml:"phases,omitempty"`

	// percentage
	AnnualRateBps   uint64   `json:"annual_rate_bps" yaml:"annual_rate_bps"`
	BlocksPerYear   uint64   `json:"blocks_per_year" yaml:"blocks_per_year"`
	BootstrapAmount math.Int `json:"bootstrap_amount" yaml:"bootstrap_amount"`
	MinPerBlock     math.Int `json:"min_per_block" yaml:"min_per_block"`
}

// PoolWeight assigns an integer percentage of each block's emission to a
// named pool account. The last pool absorbs the truncation remainder.
type PoolWeight struct {
	Name    string `json:"name" yaml:"name"`
	Percent uint64 `json:"percent" yaml:"percent"`
}

type Params struct {
	RewardDenom   string       `json:"reward_denom" yaml:"reward_denom"`
	Schedule      Schedule     `json:"schedule" yaml:"schedule"`
	PoolSplit     []PoolWeight `json:"pool_split" yaml:"pool_split"`
	InitialSupply math.Int     `json:"initial_supply" yaml:"initial_supply"`
}

func NewParams(rewardDenom string, schedule Schedule, poolSplit []PoolWeight, initialSupply math.Int) Params {
	return Params{
		RewardDenom:   rewardDenom,
		Schedule:      schedule,
		PoolSplit:     poolSplit,
		InitialSupply: initialSupply,
	}
}

// DefaultParams returns default emission parameters: percentage schedule at
// 5% annual inflation with the genesis 60/25/10/5 pool breakdown.
func DefaultParams() Params {
	return Params{
		RewardDenom: DefaultRewardDenom,
		Schedule: Schedule{
			Mode:            SchedulePercentage,
			PerBlock:        math.ZeroInt(),
			AnnualRateBps:   DefaultAnnualRateBps,
			BlocksPerYear:   DefaultBlocksPerYear,
			BootstrapAmount: DefaultBootstrapAmount,
			MinPerBlock:     DefaultMinPerBlock,
		},
		PoolSplit: []PoolWeight{
			{Name: PoolBlockRewards, Percent: 60},
			{Name: PoolStakingRewards, Percent: 25},
			{Name: PoolModuleIncentives, Percent: 10},
			{Name: PoolBridgeOperations, Percent: 5},
		},
		InitialSupply: math.ZeroInt(),
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate performs basic validation on emission parameters
func (p Params) Validate() error {
	if p.RewardDenom == "" {
		return errors.New("empty reward denom")
	}

	if p.InitialSupply.IsNil() || p.InitialSupply.IsNegative() {
		return errors.New("initial supply must be non-negative")
	}

	if err := p.Schedule.Validate(); err != nil {
		return errors.Wrap(err, "invalid schedule")
	}

	if err := validatePoolSplit(p.PoolSplit); err != nil {
		return errors.Wrap(err, "invalid pool split")
	}

	return nil
}

func (s Schedule) Validate() error {
	switch s.Mode {
	case ScheduleStatic:
		if s.PerBlock.IsNil() || s.PerBlock.IsNegative() {
			return errors.New("static per-block amount must be non-negative")
		}

	case SchedulePhased:
		if len(s.Phases) == 0 {
			return errors.New("phased schedule requires at least one phase")
		}

		for i, phase := range s.Phases {
			if phase.PerBlock.IsNil() || phase.PerBlock.IsNegative() {
				return errors.Errorf("phase %d per-block amount must be non-negative", i)
			}

			if phase.EndHeight != nil && *phase.EndHeight < phase.StartHeight {
				return errors.Errorf("phase %d ends before it starts", i)
			}
		}

		// phases must be sorted and disjoint; an open-ended phase covers every
		// later height, so it is only allowed in the last position
		for i := 0; i < len(s.Phases)-1; i++ {
			cur, next := s.Phases[i], s.Phases[i+1]
			if cur.EndHeight == nil {
				return errors.Errorf("open-ended phase %d must be the last phase", i)
			}

			if next.StartHeight <= *cur.EndHeight {
				return errors.Errorf("phases %d and %d overlap", i, i+1)
			}
		}

	case SchedulePercentage:
		if s.AnnualRateBps > 10_000 {
			return errors.New("annual rate cannot exceed 10000 bps")
		}

		if s.BlocksPerYear == 0 {
			return errors.New("blocks per year must be positive")
		}

		if s.BootstrapAmount.IsNil() || s.BootstrapAmount.IsNegative() {
			return errors.New("bootstrap amount must be non-negative")
		}

		if s.MinPerBlock.IsNil() || s.MinPerBlock.IsNegative() {
			return errors.New("minimum per-block amount must be non-negative")
		}

	default:
		return errors.Errorf("unknown schedule mode %q", s.Mode)
	}

	return nil
}

func validatePoolSplit(split []PoolWeight) error {
	if len(split) == 0 {
		return errors.New("pool split must not be empty")
	}

	seen := make(map[string]bool, len(split))
	total := uint64(0)
	for _, w := range split {
		if w.Name == "" {
			return errors.New("empty pool name")
		}

		if seen[w.Name] {
			return errors.Errorf("duplicate pool %q", w.Name)
		}

		seen[w.Name] = true
		total += w.Percent
	}

	if total != 100 {
		return errors.Errorf("pool percentages sum to %d, want 100", total)
	}

	return nil
}
