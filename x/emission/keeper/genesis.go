package keeper

import (
	"context"

	"github.com/DytallixHQ/dytallix/x/emission/types"
)

// InitGenesis initializes the emission module state from genesis data.
func (k Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := k.SetParams(ctx, data.Params); err != nil {
		return err
	}

	if err := k.LastHeight.Set(ctx, data.LastHeight); err != nil {
		return err
	}

	if err := k.CirculatingSupply.Set(ctx, data.CirculatingSupply); err != nil {
		return err
	}

	for _, event := range data.Events {
		if err := k.EmissionEvents.Set(ctx, event.Height, event); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis returns the emission module state for a genesis file.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return nil, err
	}

	last, err := k.LastHeight.Get(ctx)
	if err != nil {
		return nil, err
	}

	supply, err := k.CirculatingSupply.Get(ctx)
	if err != nil {
		return nil, err
	}

	var events []types.EmissionEvent
	err = k.EmissionEvents.Walk(ctx, nil, func(_ uint64, event types.EmissionEvent) (bool, error) {
		events = append(events, event)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return types.NewGenesisState(params, last, supply, events), nil
}
