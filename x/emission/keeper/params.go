package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/spf13/cast"

	"github.com/DytallixHQ/dytallix/x/emission/types"
)

// GetParams returns the current emission parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return k.Params.Get(ctx)
}

// SetParams validates and stores the emission parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
	}

	return k.Params.Set(ctx, params)
}

// ApplyParamChange applies a single governance-driven parameter change.
// Only scalar schedule knobs are mutable at runtime; schedule mode and
// pool split changes require a new genesis.
func (k Keeper) ApplyParamChange(ctx context.Context, key, value string) error {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "annual_rate_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.Schedule.AnnualRateBps = v
	case "blocks_per_year":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.Schedule.BlocksPerYear = v
	case "min_per_block":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.Schedule.MinPerBlock = math.NewInt(v)
	default:
		return errorsmod.Wrapf(types.ErrInvalidConfig, "unknown emission param %q", key)
	}

	return k.SetParams(ctx, params)
}
