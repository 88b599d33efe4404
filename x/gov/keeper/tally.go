package keeper

import (
	"context"

	"cosmossdk.io/collections"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// Tally counts the proposal's ballots under its tally strategy. Each
// ballot's transformed power is written back so the weighting that decided
// the outcome stays auditable. The total system power is snapshotted at
// tally time.
func (k Keeper) Tally(ctx context.Context, prop types.Proposal) (types.TallyResult, error) {
	strategy := types.StrategyForProposal(prop.Type)
	result := types.EmptyTallyResult(strategy.Name())

	totalPower, err := k.stakingKeeper.TotalBondedTokens(ctx)
	if err != nil {
		return types.TallyResult{}, err
	}
	result.TotalSystemPower = totalPower

	rng := collections.NewPrefixedPairRange[uint64, []byte](prop.ID)
	err = k.Ballots.Walk(ctx, rng, func(key collections.Pair[uint64, []byte], ballot types.Ballot) (bool, error) {
		transformed := strategy.Transform(ballot.RawPower)
		ballot.TransformedPower = transformed
		if err := k.Ballots.Set(ctx, key, ballot); err != nil {
			return true, err
		}

		result.RawVotedPower = result.RawVotedPower.Add(ballot.RawPower)
		result.VotedPower = result.VotedPower.Add(transformed)

		switch ballot.Option {
		case types.OptionYes:
			result.Yes = result.Yes.Add(transformed)
		case types.OptionNo:
			result.No = result.No.Add(transformed)
		case types.OptionAbstain:
			result.Abstain = result.Abstain.Add(transformed)
		case types.OptionNoWithVeto:
			result.NoWithVeto = result.NoWithVeto.Add(transformed)
		}

		return false, nil
	})
	if err != nil {
		return types.TallyResult{}, err
	}

	return result, nil
}
