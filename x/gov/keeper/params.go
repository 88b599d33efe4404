package keeper

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/spf13/cast"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// GetParams returns the current governance parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return k.Params.Get(ctx)
}

// SetParams validates and stores the governance parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
	}

	return k.Params.Set(ctx, params)
}

// ApplyParamChange applies a single governance-driven parameter change to
// the governance module itself.
func (k Keeper) ApplyParamChange(ctx context.Context, key, value string) error {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "min_deposit":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.MinDeposit = math.NewInt(v)
	case "voting_period":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.VotingPeriod = time.Duration(v) * time.Second
	case "timelock_period":
		v, err := cast.ToInt64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.TimelockPeriod = time.Duration(v) * time.Second
	case "quorum_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.QuorumBps = v
	case "threshold_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.ThresholdBps = v
	case "veto_threshold_bps":
		v, err := cast.ToUint64E(value)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
		}
		params.VetoThresholdBps = v
	default:
		return errorsmod.Wrapf(types.ErrInvalidConfig, "unknown governance param %q", key)
	}

	return k.SetParams(ctx, params)
}
