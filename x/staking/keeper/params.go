package keeper

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/spf13/cast"

	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// GetParams returns the current staking parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return k.Params.Get(ctx)
}

// SetParams validates and stores the staking parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
	}

	return k.Params.Set(ctx, params)
}

// ApplyParamChange applies a single governance-driven parameter change.
func (k Keeper) ApplyParamChange(ctx context.Context, key, value string) error {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "min_self_stake":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.MinSelfStake = math.NewInt(v)
	case "unbonding_period":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.UnbondingPeriod = time.Duration(v) * time.Second
	case "max_validators":
		v, err := cast.ToUint32E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.MaxValidators = v
	case "slash_fraction_double_sign_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.SlashFractionDoubleSignBps = v
	case "slash_fraction_downtime_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.SlashFractionDowntimeBps = v
	case "slash_fraction_governance_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.SlashFractionGovernanceBps = v
	default:
		return errorsmod.Wrapf(types.ErrInvalidConfig, "unknown staking param %q", key)
	}

	return k.SetParams(ctx, params)
}
