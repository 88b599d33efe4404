package types

import (
	"cosmossdk.io/math"
)

// TallyResult is the outcome of counting a proposal's ballots. The per
// option sums hold transformed power; RawVotedPower is the untransformed
// stake behind all ballots and is what quorum is measured against, so the
// turnout check is independent of the strategy's dampening.
type TallyResult struct {
	Yes        math.Int `json:"yes"`
	No         math.Int `json:"no"`
	Abstain    math.Int `json:"abstain"`
	NoWithVeto math.Int `json:"no_with_veto"`

	VotedPower       math.Int `json:"voted_power"`
	RawVotedPower    math.Int `json:"raw_voted_power"`
	TotalSystemPower math.Int `json:"total_system_power"`

	Strategy string `json:"strategy"`
}

// EmptyTallyResult returns a zeroed tally for the given strategy.
func EmptyTallyResult(strategy string) TallyResult {
	return TallyResult{
		Yes:              math.ZeroInt(),
		No:               math.ZeroInt(),
		Abstain:          math.ZeroInt(),
		NoWithVeto:       math.ZeroInt(),
		VotedPower:       math.ZeroInt(),
		RawVotedPower:    math.ZeroInt(),
		TotalSystemPower: math.ZeroInt(),
		Strategy:         strategy,
	}
}

// TallyStrategy turns raw voting power into counted power and decides the
// proposal outcome. Vote recording and double-vote prevention are strategy
// agnostic; only option validity, weighting, and the pass rule vary.
type TallyStrategy interface {
	Name() string
	ValidOption(option VoteOption) bool
	Transform(rawPower math.Int) math.Int
	Passes(result TallyResult, params Params) (passed, burnDeposit bool)
}

// StrategyForProposal returns the tally strategy for a proposal type. DAO
// resolutions are tallied quadratically; everything else linearly.
func StrategyForProposal(proposalType ProposalType) TallyStrategy {
	if proposalType == ProposalTypeDAOResolution {
		return QuadraticStrategy{}
	}
	return LinearStrategy{}
}

// LinearStrategy counts one token as one vote.
type LinearStrategy struct{}

func (LinearStrategy) Name() string { return "linear" }

func (LinearStrategy) ValidOption(option VoteOption) bool {
	switch option {
	case OptionYes, OptionNo, OptionAbstain, OptionNoWithVeto:
		return true
	}
	return false
}

func (LinearStrategy) Transform(rawPower math.Int) math.Int { return rawPower }

// Passes applies quorum, then veto, then approval. Abstain counts toward
// quorum but not toward approval; veto votes count as no.
func (LinearStrategy) Passes(result TallyResult, params Params) (bool, bool) {
	if !meetsQuorum(result.RawVotedPower, result.TotalSystemPower, params.QuorumBps) {
		return false, false
	}

	if result.NoWithVeto.IsPositive() &&
		result.NoWithVeto.MulRaw(10_000).GTE(result.VotedPower.MulRaw(int64(params.VetoThresholdBps))) {
		return false, true
	}

	decisive := result.Yes.Add(result.No).Add(result.NoWithVeto)
	if decisive.IsZero() {
		return false, false
	}

	return result.Yes.MulRaw(10_000).GT(decisive.MulRaw(int64(params.ThresholdBps))), false
}

// QuadraticStrategy counts the integer square root of each ballot's power,
// dampening large holders. The veto option does not exist under this
// strategy, so a quadratic tally never burns the deposit.
type QuadraticStrategy struct{}

func (QuadraticStrategy) Name() string { return "quadratic" }

func (QuadraticStrategy) ValidOption(option VoteOption) bool {
	switch option {
	case OptionYes, OptionNo, OptionAbstain:
		return true
	}
	return false
}

func (QuadraticStrategy) Transform(rawPower math.Int) math.Int { return Isqrt(rawPower) }

func (QuadraticStrategy) Passes(result TallyResult, params Params) (bool, bool) {
	if !meetsQuorum(result.RawVotedPower, result.TotalSystemPower, params.QuorumBps) {
		return false, false
	}

	decisive := result.Yes.Add(result.No)
	if decisive.IsZero() {
		return false, false
	}

	return result.Yes.MulRaw(10_000).GT(decisive.MulRaw(int64(params.ThresholdBps))), false
}

func meetsQuorum(rawVoted, totalPower math.Int, quorumBps uint64) bool {
	if totalPower.IsZero() {
		return false
	}

	return rawVoted.MulRaw(10_000).GTE(totalPower.MulRaw(int64(quorumBps)))
}

// Isqrt returns the integer square root of n by Newton's method, the
// largest x with x*x <= n. Negative input returns zero.
func Isqrt(n math.Int) math.Int {
	if n.IsNil() || !n.IsPositive() {
		return math.ZeroInt()
	}

	one := math.OneInt()
	if n.LTE(one) {
		return n
	}

	x := n
	y := x.Add(one).QuoRaw(2)
	for y.LT(x) {
		x = y
		y = x.Add(n.Quo(x)).QuoRaw(2)
	}

	return x
}
