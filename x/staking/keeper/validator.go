package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// GetValidator returns the validator at the given address.
func (k Keeper) GetValidator(ctx context.Context, address []byte) (types.Validator, error) {
	val, err := k.Validators.Get(ctx, address)
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return types.Validator{}, errorsmod.Wrapf(types.ErrValidatorNotFound, "%x", address)
		}
		return types.Validator{}, err
	}

	return val, nil
}

// RegisterValidator creates a new validator with the given self stake. The
// self stake is bonded immediately; the validator activates in place when
// it meets the minimum and the active set has room.
func (k Keeper) RegisterValidator(ctx context.Context, address []byte, selfStake math.Int, commissionRateBps uint64) (types.Validator, error) {
	if len(address) == 0 {
		return types.Validator{}, errorsmod.Wrap(types.ErrValidatorNotFound, "empty address")
	}

	has, err := k.Validators.Has(ctx, address)
	if err != nil {
		return types.Validator{}, err
	}
	if has {
		return types.Validator{}, errorsmod.Wrapf(types.ErrValidatorExists, "%x", address)
	}

	if selfStake.IsNil() || !selfStake.IsPositive() {
		return types.Validator{}, errorsmod.Wrap(types.ErrEmptyDelegation, "self stake")
	}

	if commissionRateBps > types.DefaultMaxCommissionRateBps {
		return types.Validator{}, errorsmod.Wrapf(types.ErrInvalidCommission, "%d bps", commissionRateBps)
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.Validator{}, err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, address, types.BondedPoolName, params.BondDenom, selfStake); err != nil {
		return types.Validator{}, err
	}

	val := types.NewValidator(address, selfStake, commissionRateBps)
	val, err = k.tryPromote(ctx, params, val)
	if err != nil {
		return types.Validator{}, err
	}

	if err := k.Validators.Set(ctx, address, val); err != nil {
		return types.Validator{}, err
	}

	k.Logger().Info("validator registered",
		"address", val.Address,
		"self_stake", selfStake.String(),
		"status", val.Status,
	)

	return val, nil
}

// Unjail moves a jailed validator back to inactive and re-activates it if
// it still qualifies.
func (k Keeper) Unjail(ctx context.Context, address []byte) (types.Validator, error) {
	val, err := k.GetValidator(ctx, address)
	if err != nil {
		return types.Validator{}, err
	}

	if val.Status != types.StatusJailed {
		return types.Validator{}, errorsmod.Wrapf(types.ErrValidatorNotJailed, "%x", address)
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.Validator{}, err
	}

	val.Status = types.StatusInactive
	val, err = k.tryPromote(ctx, params, val)
	if err != nil {
		return types.Validator{}, err
	}

	if err := k.Validators.Set(ctx, address, val); err != nil {
		return types.Validator{}, err
	}

	return val, nil
}

// tryPromote activates a pending or inactive validator when it meets the
// self-stake minimum and the active set has room, adding its total stake to
// the bonded tally.
func (k Keeper) tryPromote(ctx context.Context, params types.Params, val types.Validator) (types.Validator, error) {
	if val.Status != types.StatusPending && val.Status != types.StatusInactive {
		return val, nil
	}

	if val.SelfStake.LT(params.MinSelfStake) {
		return val, nil
	}

	active, err := k.ActiveValidatorCount(ctx)
	if err != nil {
		return val, err
	}
	if active >= params.MaxValidators {
		return val, nil
	}

	val.Status = types.StatusActive

	total, err := k.GetTotalBonded(ctx)
	if err != nil {
		return val, err
	}
	if err := k.TotalBonded.Set(ctx, total.Add(val.TotalStake)); err != nil {
		return val, err
	}

	return val, nil
}

// demote removes an active validator from the bonded set, subtracting its
// total stake from the bonded tally. The new status is the caller's choice.
func (k Keeper) demote(ctx context.Context, val types.Validator, status types.ValidatorStatus) (types.Validator, error) {
	if val.IsBonded() {
		total, err := k.GetTotalBonded(ctx)
		if err != nil {
			return val, err
		}
		if err := k.TotalBonded.Set(ctx, total.Sub(val.TotalStake)); err != nil {
			return val, err
		}
	}

	val.Status = status
	return val, nil
}

// ActiveValidatorCount returns the number of bonded validators.
func (k Keeper) ActiveValidatorCount(ctx context.Context) (uint32, error) {
	count := uint32(0)
	err := k.Validators.Walk(ctx, nil, func(_ []byte, val types.Validator) (bool, error) {
		if val.IsBonded() {
			count++
		}
		return false, nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetTotalBonded returns the sum of stake behind bonded validators.
func (k Keeper) GetTotalBonded(ctx context.Context) (math.Int, error) {
	total, err := k.TotalBonded.Get(ctx)
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}

	return total, nil
}

// TotalBondedTokens is GetTotalBonded under the name the governance module
// expects.
func (k Keeper) TotalBondedTokens(ctx context.Context) (math.Int, error) {
	return k.GetTotalBonded(ctx)
}

// GetValidators returns all validators.
func (k Keeper) GetValidators(ctx context.Context) ([]types.Validator, error) {
	var vals []types.Validator
	err := k.Validators.Walk(ctx, nil, func(_ []byte, val types.Validator) (bool, error) {
		vals = append(vals, val)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return vals, nil
}
