package keeper

import (
	"context"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// Slash burns a fraction of the validator's stake, applied pro-rata to the
// self stake and every delegation. Delegations are settled before they
// shrink so already earned rewards are untouched. Double signing and
// governance violations additionally jail the validator.
func (k Keeper) Slash(ctx context.Context, validator []byte, reason types.SlashReason, height uint64, now time.Time) (types.SlashEvent, error) {
	if !reason.Valid() {
		return types.SlashEvent{}, errorsmod.Wrapf(types.ErrInvalidSlashReason, "%q", reason)
	}

	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return types.SlashEvent{}, err
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.SlashEvent{}, err
	}

	fractionBps, err := params.SlashFractionBps(reason)
	if err != nil {
		return types.SlashEvent{}, errorsmod.Wrap(types.ErrInvalidSlashReason, err.Error())
	}

	val, err = k.settleSelfStake(ctx, params, val)
	if err != nil {
		return types.SlashEvent{}, err
	}

	selfSlash := val.SelfStake.MulRaw(int64(fractionBps)).QuoRaw(10_000)
	val.SelfStake = val.SelfStake.Sub(selfSlash)
	totalSlash := selfSlash

	type slashedDel struct {
		key collections.Pair[[]byte, []byte]
		del types.Delegation
	}

	var dels []slashedDel
	rng := collections.NewPrefixedPairRange[[]byte, []byte](validator)
	err = k.DelegationsByVal.Walk(ctx, rng, func(key collections.Pair[[]byte, []byte]) (bool, error) {
		delegator := key.K2()
		del, err := k.GetDelegation(ctx, delegator, validator)
		if err != nil {
			return true, err
		}
		dels = append(dels, slashedDel{collections.Join(delegator, validator), del})
		return false, nil
	})
	if err != nil {
		return types.SlashEvent{}, err
	}

	for _, sd := range dels {
		del, err := k.settleDelegation(ctx, params, val, sd.del)
		if err != nil {
			return types.SlashEvent{}, err
		}

		delSlash := del.Amount.MulRaw(int64(fractionBps)).QuoRaw(10_000)
		del.Amount = del.Amount.Sub(delSlash)
		totalSlash = totalSlash.Add(delSlash)

		if del.Amount.IsZero() {
			if err := k.Delegations.Remove(ctx, sd.key); err != nil {
				return types.SlashEvent{}, err
			}
			if err := k.DelegationsByVal.Remove(ctx, collections.Join(validator, del.Delegator)); err != nil {
				return types.SlashEvent{}, err
			}
		} else {
			if err := k.Delegations.Set(ctx, sd.key, del); err != nil {
				return types.SlashEvent{}, err
			}
		}
	}

	val.TotalStake = val.TotalStake.Sub(totalSlash)
	if val.IsBonded() {
		total, err := k.GetTotalBonded(ctx)
		if err != nil {
			return types.SlashEvent{}, err
		}
		if err := k.TotalBonded.Set(ctx, total.Sub(totalSlash)); err != nil {
			return types.SlashEvent{}, err
		}
	}

	if totalSlash.IsPositive() {
		if err := k.bankKeeper.BurnCoins(ctx, types.BondedPoolName, params.BondDenom, totalSlash); err != nil {
			return types.SlashEvent{}, err
		}
	}

	val.PenaltyCount++
	val.TotalSlashed = val.TotalSlashed.Add(totalSlash)

	jailed := reason.Jails()
	if jailed {
		val, err = k.demote(ctx, val, types.StatusJailed)
		if err != nil {
			return types.SlashEvent{}, err
		}
	}

	if err := k.Validators.Set(ctx, validator, val); err != nil {
		return types.SlashEvent{}, err
	}

	id, err := k.NextSlashEventID.Next(ctx)
	if err != nil {
		return types.SlashEvent{}, err
	}

	event := types.SlashEvent{
		ID:          id,
		Validator:   validator,
		Reason:      reason,
		FractionBps: fractionBps,
		Amount:      totalSlash,
		Height:      height,
		Timestamp:   now,
		Jailed:      jailed,
	}
	if err := k.SlashEvents.Set(ctx, id, event); err != nil {
		return types.SlashEvent{}, err
	}

	k.Logger().Info("validator slashed",
		"address", validator,
		"reason", reason,
		"amount", totalSlash.String(),
		"jailed", jailed,
	)

	return event, nil
}

// GetSlashEvents returns every recorded slash event for the validator.
func (k Keeper) GetSlashEvents(ctx context.Context, validator []byte) ([]types.SlashEvent, error) {
	var events []types.SlashEvent
	err := k.SlashEvents.Walk(ctx, nil, func(_ uint64, event types.SlashEvent) (bool, error) {
		if string(event.Validator) == string(validator) {
			events = append(events, event)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}
