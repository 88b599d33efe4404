package types

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"cosmossdk.io/math"
)

// Default parameter values
const (
	DefaultDepositDenom = "udgt"

	DefaultQuorumBps        = 3_333 // 33.33%
	DefaultThresholdBps     = 5_000 // 50%
	DefaultVetoThresholdBps = 3_333 // 33.33%

	DefaultVotingPeriod   = 5 * 24 * time.Hour
	DefaultTimelockPeriod = 24 * time.Hour
)

// DefaultMinDeposit is the deposit required to put a proposal to a vote.
var DefaultMinDeposit = math.NewInt(1_000_000_000)

type Params struct {
	DepositDenom string   `json:"deposit_denom" yaml:"deposit_denom"`
	MinDeposit   math.Int `json:"min_deposit" yaml:"min_deposit"`

	VotingPeriod   time.Duration `json:"voting_period" yaml:"voting_period"`
	TimelockPeriod time.Duration `json:"timelock_period" yaml:"timelock_period"`

	QuorumBps        uint64 `json:"quorum_bps" yaml:"quorum_bps"`
	ThresholdBps     uint64 `json:"threshold_bps" yaml:"threshold_bps"`
	VetoThresholdBps uint64 `json:"veto_threshold_bps" yaml:"veto_threshold_bps"`
}

// DefaultParams returns the default governance parameters.
func DefaultParams() Params {
	return Params{
		DepositDenom:     DefaultDepositDenom,
		MinDeposit:       DefaultMinDeposit,
		VotingPeriod:     DefaultVotingPeriod,
		TimelockPeriod:   DefaultTimelockPeriod,
		QuorumBps:        DefaultQuorumBps,
		ThresholdBps:     DefaultThresholdBps,
		VetoThresholdBps: DefaultVetoThresholdBps,
	}
}

// String returns a human readable string representation of the parameters.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Validate performs basic validation on governance parameters
func (p Params) Validate() error {
	if p.DepositDenom == "" {
		return errors.New("empty deposit denom")
	}

	if p.MinDeposit.IsNil() || !p.MinDeposit.IsPositive() {
		return errors.New("minimum deposit must be positive")
	}

	if p.VotingPeriod <= 0 {
		return errors.New("voting period must be positive")
	}

	if p.TimelockPeriod < 0 {
		return errors.New("timelock period must be non-negative")
	}

	for _, bps := range []uint64{p.QuorumBps, p.ThresholdBps, p.VetoThresholdBps} {
		if bps > 10_000 {
			return errors.Errorf("tally fraction %d exceeds 10000 bps", bps)
		}
	}

	if p.ThresholdBps == 0 {
		return errors.New("threshold must be positive")
	}

	return nil
}
