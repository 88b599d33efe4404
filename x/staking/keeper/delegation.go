package keeper

import (
	"bytes"
	"context"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// GetDelegation returns the delegation between delegator and validator.
func (k Keeper) GetDelegation(ctx context.Context, delegator, validator []byte) (types.Delegation, error) {
	del, err := k.Delegations.Get(ctx, collections.Join(delegator, validator))
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return types.Delegation{}, errorsmod.Wrapf(types.ErrDelegationNotFound, "delegator %x validator %x", delegator, validator)
		}
		return types.Delegation{}, err
	}

	return del, nil
}

// Delegate bonds amount from the delegator to the validator. An existing
// position is settled first so the new stake does not dilute rewards
// already earned. A delegator equal to the validator address tops up self
// stake, which can promote a pending or inactive validator.
func (k Keeper) Delegate(ctx context.Context, delegator, validator []byte, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return errorsmod.Wrap(types.ErrEmptyDelegation, amount.String())
	}

	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return err
	}

	if val.Status == types.StatusJailed {
		return errorsmod.Wrapf(types.ErrValidatorJailed, "%x", validator)
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, delegator, types.BondedPoolName, params.BondDenom, amount); err != nil {
		return err
	}

	if bytes.Equal(delegator, validator) {
		val, err = k.settleSelfStake(ctx, params, val)
		if err != nil {
			return err
		}
		val.SelfStake = val.SelfStake.Add(amount)
	} else {
		key := collections.Join(delegator, validator)
		del, err := k.Delegations.Get(ctx, key)
		switch {
		case err == nil:
			del, err = k.settleDelegation(ctx, params, val, del)
			if err != nil {
				return err
			}
			del.Amount = del.Amount.Add(amount)

		case errorsmod.IsOf(err, collections.ErrNotFound):
			del = types.NewDelegation(delegator, validator, amount, val.RewardIndex)

		default:
			return err
		}

		if err := k.Delegations.Set(ctx, key, del); err != nil {
			return err
		}
		if err := k.DelegationsByVal.Set(ctx, collections.Join(validator, delegator)); err != nil {
			return err
		}
	}

	val.TotalStake = val.TotalStake.Add(amount)
	if val.IsBonded() {
		total, err := k.GetTotalBonded(ctx)
		if err != nil {
			return err
		}
		if err := k.TotalBonded.Set(ctx, total.Add(amount)); err != nil {
			return err
		}
	} else {
		val, err = k.tryPromote(ctx, params, val)
		if err != nil {
			return err
		}
	}

	return k.Validators.Set(ctx, validator, val)
}

// BeginUnbonding starts a withdrawal of amount from the validator. The
// tokens move to the not-bonded pool and are paid out once the unbonding
// period elapses. A delegator equal to the validator address unbonds self
// stake, which can demote the validator below the activation minimum.
func (k Keeper) BeginUnbonding(ctx context.Context, delegator, validator []byte, amount math.Int, height uint64, now time.Time) (types.UnbondingEntry, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return types.UnbondingEntry{}, errorsmod.Wrap(types.ErrEmptyDelegation, amount.String())
	}

	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return types.UnbondingEntry{}, err
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.UnbondingEntry{}, err
	}

	wasBonded := val.IsBonded()

	if bytes.Equal(delegator, validator) {
		if amount.GT(val.SelfStake) {
			return types.UnbondingEntry{}, errorsmod.Wrapf(types.ErrInsufficientStake, "self stake %s, want %s", val.SelfStake, amount)
		}

		val, err = k.settleSelfStake(ctx, params, val)
		if err != nil {
			return types.UnbondingEntry{}, err
		}
		val.SelfStake = val.SelfStake.Sub(amount)
	} else {
		key := collections.Join(delegator, validator)
		del, err := k.GetDelegation(ctx, delegator, validator)
		if err != nil {
			return types.UnbondingEntry{}, err
		}
		if amount.GT(del.Amount) {
			return types.UnbondingEntry{}, errorsmod.Wrapf(types.ErrInsufficientStake, "delegated %s, want %s", del.Amount, amount)
		}

		del, err = k.settleDelegation(ctx, params, val, del)
		if err != nil {
			return types.UnbondingEntry{}, err
		}

		del.Amount = del.Amount.Sub(amount)
		if del.Amount.IsZero() {
			if err := k.Delegations.Remove(ctx, key); err != nil {
				return types.UnbondingEntry{}, err
			}
			if err := k.DelegationsByVal.Remove(ctx, collections.Join(validator, delegator)); err != nil {
				return types.UnbondingEntry{}, err
			}
		} else {
			if err := k.Delegations.Set(ctx, key, del); err != nil {
				return types.UnbondingEntry{}, err
			}
		}
	}

	val.TotalStake = val.TotalStake.Sub(amount)
	if wasBonded {
		total, err := k.GetTotalBonded(ctx)
		if err != nil {
			return types.UnbondingEntry{}, err
		}
		if err := k.TotalBonded.Set(ctx, total.Sub(amount)); err != nil {
			return types.UnbondingEntry{}, err
		}
	}

	// dropping self stake below the minimum costs the validator its slot
	if wasBonded && val.SelfStake.LT(params.MinSelfStake) {
		val, err = k.demote(ctx, val, types.StatusInactive)
		if err != nil {
			return types.UnbondingEntry{}, err
		}
	}

	if err := k.Validators.Set(ctx, validator, val); err != nil {
		return types.UnbondingEntry{}, err
	}

	if err := k.bankKeeper.SendCoinsFromModuleToModule(ctx, types.BondedPoolName, types.NotBondedPoolName, params.BondDenom, amount); err != nil {
		return types.UnbondingEntry{}, err
	}

	id, err := k.NextUnbondingID.Next(ctx)
	if err != nil {
		return types.UnbondingEntry{}, err
	}

	entry := types.UnbondingEntry{
		ID:             id,
		Delegator:      delegator,
		Validator:      validator,
		Amount:         amount,
		CreationHeight: height,
		CompletionTime: now.Add(params.UnbondingPeriod),
	}

	queueKey := collections.Join(uint64(entry.CompletionTime.Unix()), id)
	if err := k.UnbondingQueue.Set(ctx, queueKey, entry); err != nil {
		return types.UnbondingEntry{}, err
	}

	return entry, nil
}

// CompleteUnbonding pays out every unbonding entry whose completion time
// has passed and returns the completed entries.
func (k Keeper) CompleteUnbonding(ctx context.Context, now time.Time) ([]types.UnbondingEntry, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return nil, err
	}

	var (
		keys    []collections.Pair[uint64, uint64]
		matured []types.UnbondingEntry
	)

	rng := collections.NewPrefixUntilPairRange[uint64, uint64](uint64(now.Unix()))
	err = k.UnbondingQueue.Walk(ctx, rng, func(key collections.Pair[uint64, uint64], entry types.UnbondingEntry) (bool, error) {
		keys = append(keys, key)
		matured = append(matured, entry)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	for i, entry := range matured {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.NotBondedPoolName, entry.Delegator, params.BondDenom, entry.Amount); err != nil {
			return nil, err
		}
		if err := k.UnbondingQueue.Remove(ctx, keys[i]); err != nil {
			return nil, err
		}
	}

	return matured, nil
}

// VotingPower returns the voter's bonded stake: delegations to bonded
// validators plus self stake when the voter is itself a bonded validator.
// Unbonding tokens carry no power.
func (k Keeper) VotingPower(ctx context.Context, voter []byte) (math.Int, error) {
	power := math.ZeroInt()

	rng := collections.NewPrefixedPairRange[[]byte, []byte](voter)
	err := k.Delegations.Walk(ctx, rng, func(_ collections.Pair[[]byte, []byte], del types.Delegation) (bool, error) {
		val, err := k.Validators.Get(ctx, del.Validator)
		if err != nil {
			return true, err
		}
		if val.IsBonded() {
			power = power.Add(del.Amount)
		}
		return false, nil
	})
	if err != nil {
		return math.Int{}, err
	}

	val, err := k.Validators.Get(ctx, voter)
	if err == nil && val.IsBonded() {
		power = power.Add(val.SelfStake)
	} else if err != nil && !errorsmod.IsOf(err, collections.ErrNotFound) {
		return math.Int{}, err
	}

	return power, nil
}
