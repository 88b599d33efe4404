package keeper

import (
	"context"

	"cosmossdk.io/collections"

	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// InitGenesis initializes the staking module state from genesis data.
func (k Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := k.SetParams(ctx, data.Params); err != nil {
		return err
	}

	if err := k.TotalBonded.Set(ctx, data.TotalBonded); err != nil {
		return err
	}
	if err := k.GlobalRewardIndex.Set(ctx, data.GlobalRewardIndex); err != nil {
		return err
	}
	if err := k.PendingRewards.Set(ctx, data.PendingRewards); err != nil {
		return err
	}

	for _, val := range data.Validators {
		if err := k.Validators.Set(ctx, val.Address, val); err != nil {
			return err
		}
	}

	for _, del := range data.Delegations {
		if err := k.Delegations.Set(ctx, collections.Join(del.Delegator, del.Validator), del); err != nil {
			return err
		}
		if err := k.DelegationsByVal.Set(ctx, collections.Join(del.Validator, del.Delegator)); err != nil {
			return err
		}
	}

	for _, entry := range data.UnbondingEntries {
		key := collections.Join(uint64(entry.CompletionTime.Unix()), entry.ID)
		if err := k.UnbondingQueue.Set(ctx, key, entry); err != nil {
			return err
		}
	}

	if err := k.NextUnbondingID.Set(ctx, data.NextUnbondingID); err != nil {
		return err
	}

	for _, event := range data.SlashEvents {
		if err := k.SlashEvents.Set(ctx, event.ID, event); err != nil {
			return err
		}
	}

	return k.NextSlashEventID.Set(ctx, data.NextSlashEventID)
}

// ExportGenesis returns the staking module state for a genesis file.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return nil, err
	}

	totalBonded, err := k.GetTotalBonded(ctx)
	if err != nil {
		return nil, err
	}

	globalIndex, err := k.GetGlobalRewardIndex(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := k.GetPendingRewards(ctx)
	if err != nil {
		return nil, err
	}

	validators, err := k.GetValidators(ctx)
	if err != nil {
		return nil, err
	}

	var delegations []types.Delegation
	err = k.Delegations.Walk(ctx, nil, func(_ collections.Pair[[]byte, []byte], del types.Delegation) (bool, error) {
		delegations = append(delegations, del)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	var unbonding []types.UnbondingEntry
	err = k.UnbondingQueue.Walk(ctx, nil, func(_ collections.Pair[uint64, uint64], entry types.UnbondingEntry) (bool, error) {
		unbonding = append(unbonding, entry)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	nextUnbondingID, err := k.NextUnbondingID.Peek(ctx)
	if err != nil {
		return nil, err
	}

	var slashEvents []types.SlashEvent
	err = k.SlashEvents.Walk(ctx, nil, func(_ uint64, event types.SlashEvent) (bool, error) {
		slashEvents = append(slashEvents, event)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	nextSlashEventID, err := k.NextSlashEventID.Peek(ctx)
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:            params,
		TotalBonded:       totalBonded,
		GlobalRewardIndex: globalIndex,
		PendingRewards:    pending,
		Validators:        validators,
		Delegations:       delegations,
		UnbondingEntries:  unbonding,
		NextUnbondingID:   nextUnbondingID,
		SlashEvents:       slashEvents,
		NextSlashEventID:  nextSlashEventID,
	}, nil
}
