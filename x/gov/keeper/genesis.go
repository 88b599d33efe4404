package keeper

import (
	"context"

	"cosmossdk.io/collections"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// InitGenesis initializes the governance module state from genesis data.
func (k Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := k.SetParams(ctx, data.Params); err != nil {
		return err
	}

	if err := k.NextProposalID.Set(ctx, data.StartingProposalID); err != nil {
		return err
	}

	for _, prop := range data.Proposals {
		if err := k.Proposals.Set(ctx, prop.ID, prop); err != nil {
			return err
		}

		switch prop.Status {
		case types.StatusActive:
			key := collections.Join(uint64(prop.VotingEndTime.Unix()), prop.ID)
			if err := k.ActiveQueue.Set(ctx, key); err != nil {
				return err
			}
		case types.StatusPassed:
			key := collections.Join(uint64(prop.ExecutionDeadline.Unix()), prop.ID)
			if err := k.ExecutionQueue.Set(ctx, key); err != nil {
				return err
			}
		}
	}

	for _, ballot := range data.Ballots {
		if err := k.Ballots.Set(ctx, collections.Join(ballot.ProposalID, ballot.Voter), ballot); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis returns the governance module state for a genesis file.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return nil, err
	}

	nextID, err := k.NextProposalID.Peek(ctx)
	if err != nil {
		return nil, err
	}

	proposals, err := k.GetProposals(ctx)
	if err != nil {
		return nil, err
	}

	var ballots []types.Ballot
	err = k.Ballots.Walk(ctx, nil, func(_ collections.Pair[uint64, []byte], ballot types.Ballot) (bool, error) {
		ballots = append(ballots, ballot)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:             params,
		StartingProposalID: nextID,
		Proposals:          proposals,
		Ballots:            ballots,
	}, nil
}
