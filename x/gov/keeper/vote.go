package keeper

import (
	"context"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// Vote records a ballot on an active proposal. One ballot per voter per
// proposal regardless of tally strategy; the voter's bonded stake at vote
// time is snapshotted as the ballot's raw power.
func (k Keeper) Vote(ctx context.Context, proposalID uint64, voter []byte, option types.VoteOption, height uint64, now time.Time) (types.Ballot, error) {
	prop, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return types.Ballot{}, err
	}

	if prop.Status != types.StatusActive {
		return types.Ballot{}, errorsmod.Wrapf(types.ErrInactiveProposal, "%d", proposalID)
	}

	if !now.Before(prop.VotingEndTime) {
		return types.Ballot{}, errorsmod.Wrapf(types.ErrInactiveProposal, "voting on proposal %d ended at %s", proposalID, prop.VotingEndTime)
	}

	strategy := types.StrategyForProposal(prop.Type)
	if !strategy.ValidOption(option) {
		return types.Ballot{}, errorsmod.Wrapf(types.ErrInvalidVote, "option %q not allowed under %s tally", option, strategy.Name())
	}

	key := collections.Join(proposalID, voter)
	has, err := k.Ballots.Has(ctx, key)
	if err != nil {
		return types.Ballot{}, err
	}
	if has {
		return types.Ballot{}, errorsmod.Wrapf(types.ErrAlreadyVoted, "proposal %d voter %x", proposalID, voter)
	}

	power, err := k.stakingKeeper.VotingPower(ctx, voter)
	if err != nil {
		return types.Ballot{}, err
	}
	if !power.IsPositive() {
		return types.Ballot{}, errorsmod.Wrapf(types.ErrNoVotingPower, "%x", voter)
	}

	ballot := types.Ballot{
		ProposalID: proposalID,
		Voter:      voter,
		Option:     option,
		RawPower:   power,
		Height:     height,
		Timestamp:  now,
	}

	if err := k.Ballots.Set(ctx, key, ballot); err != nil {
		return types.Ballot{}, err
	}

	return ballot, nil
}

// GetBallot returns the voter's ballot on the proposal.
func (k Keeper) GetBallot(ctx context.Context, proposalID uint64, voter []byte) (types.Ballot, error) {
	ballot, err := k.Ballots.Get(ctx, collections.Join(proposalID, voter))
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return types.Ballot{}, errorsmod.Wrapf(types.ErrBallotNotFound, "proposal %d voter %x", proposalID, voter)
		}
		return types.Ballot{}, err
	}

	return ballot, nil
}

// GetBallots returns every ballot cast on the proposal.
func (k Keeper) GetBallots(ctx context.Context, proposalID uint64) ([]types.Ballot, error) {
	var ballots []types.Ballot
	rng := collections.NewPrefixedPairRange[uint64, []byte](proposalID)
	err := k.Ballots.Walk(ctx, rng, func(_ collections.Pair[uint64, []byte], ballot types.Ballot) (bool, error) {
		ballots = append(ballots, ballot)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return ballots, nil
}
