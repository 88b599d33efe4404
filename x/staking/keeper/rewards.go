package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// ApplyExternalEmission distributes an inflow of reward tokens across the
// bonded validators in proportion to their total stake, carving out each
// validator's commission and advancing its reward index. While nothing is
// bonded the inflow accumulates in a pending balance that is folded into
// the next distribution. Returns the global reward index after the update.
//
// The inflow is assumed to already sit in the staking rewards pool.
func (k Keeper) ApplyExternalEmission(ctx context.Context, amount math.Int) (math.Int, error) {
	pending, err := k.GetPendingRewards(ctx)
	if err != nil {
		return math.Int{}, err
	}

	inflow := amount.Add(pending)
	if inflow.IsZero() {
		return k.GetGlobalRewardIndex(ctx)
	}

	totalBonded, err := k.GetTotalBonded(ctx)
	if err != nil {
		return math.Int{}, err
	}

	if totalBonded.IsZero() {
		if err := k.PendingRewards.Set(ctx, inflow); err != nil {
			return math.Int{}, err
		}
		return k.GetGlobalRewardIndex(ctx)
	}

	type bondedVal struct {
		address []byte
		val     types.Validator
	}

	var bonded []bondedVal
	err = k.Validators.Walk(ctx, nil, func(address []byte, val types.Validator) (bool, error) {
		if val.IsBonded() && val.TotalStake.IsPositive() {
			bonded = append(bonded, bondedVal{address, val})
		}
		return false, nil
	})
	if err != nil {
		return math.Int{}, err
	}

	distributed := math.ZeroInt()
	for _, bv := range bonded {
		val := bv.val

		share := inflow.Mul(val.TotalStake).Quo(totalBonded)
		if share.IsZero() {
			continue
		}
		distributed = distributed.Add(share)

		commission := share.MulRaw(int64(val.CommissionRate)).QuoRaw(10_000)
		net := share.Sub(commission)
		val.AccumulatedCommission = val.AccumulatedCommission.Add(commission)

		// scale the net share and fold in the residual left over from the
		// previous update, so truncation never loses tokens across blocks
		scaled := net.Mul(types.RewardScale).Add(val.RewardResidual)
		val.RewardIndex = val.RewardIndex.Add(scaled.Quo(val.TotalStake))
		val.RewardResidual = scaled.Mod(val.TotalStake)

		if err := k.Validators.Set(ctx, bv.address, val); err != nil {
			return math.Int{}, err
		}
	}

	// whatever integer division left behind rolls over to the next block
	if err := k.PendingRewards.Set(ctx, inflow.Sub(distributed)); err != nil {
		return math.Int{}, err
	}

	globalIndex, err := k.GetGlobalRewardIndex(ctx)
	if err != nil {
		return math.Int{}, err
	}
	globalIndex = globalIndex.Add(inflow.Mul(types.RewardScale).Quo(totalBonded))
	if err := k.GlobalRewardIndex.Set(ctx, globalIndex); err != nil {
		return math.Int{}, err
	}

	return globalIndex, nil
}

// settleDelegation pays the delegation's claimable rewards from the rewards
// pool and advances its cursor to the validator's current index. Callers
// must settle before any amount change so past rewards are not repriced.
func (k Keeper) settleDelegation(ctx context.Context, params types.Params, val types.Validator, del types.Delegation) (types.Delegation, error) {
	claimable := val.RewardIndex.Sub(del.RewardCursorIndex).Mul(del.Amount).Quo(types.RewardScale)
	if claimable.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.RewardsPoolName, del.Delegator, params.RewardDenom, claimable); err != nil {
			return del, err
		}
	}

	del.RewardCursorIndex = val.RewardIndex
	return del, nil
}

// settleSelfStake pays the validator the rewards accrued on its self stake
// and advances its self cursor. Like delegation settlement, it must run
// before any self stake change.
func (k Keeper) settleSelfStake(ctx context.Context, params types.Params, val types.Validator) (types.Validator, error) {
	claimable := val.RewardIndex.Sub(val.SelfRewardCursor).Mul(val.SelfStake).Quo(types.RewardScale)
	if claimable.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.RewardsPoolName, val.Address, params.RewardDenom, claimable); err != nil {
			return val, err
		}
	}

	val.SelfRewardCursor = val.RewardIndex
	return val, nil
}

// ClaimValidatorRewards pays out the rewards accrued on the validator's
// self stake and returns the amount paid. Commission is withdrawn
// separately.
func (k Keeper) ClaimValidatorRewards(ctx context.Context, validator []byte) (math.Int, error) {
	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return math.Int{}, err
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return math.Int{}, err
	}

	claimable := val.RewardIndex.Sub(val.SelfRewardCursor).Mul(val.SelfStake).Quo(types.RewardScale)

	val, err = k.settleSelfStake(ctx, params, val)
	if err != nil {
		return math.Int{}, err
	}

	if err := k.Validators.Set(ctx, validator, val); err != nil {
		return math.Int{}, err
	}

	return claimable, nil
}

// ClaimRewards pays out the delegator's accrued rewards from the validator
// and returns the amount paid.
func (k Keeper) ClaimRewards(ctx context.Context, delegator, validator []byte) (math.Int, error) {
	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return math.Int{}, err
	}

	del, err := k.GetDelegation(ctx, delegator, validator)
	if err != nil {
		return math.Int{}, err
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return math.Int{}, err
	}

	claimable := val.RewardIndex.Sub(del.RewardCursorIndex).Mul(del.Amount).Quo(types.RewardScale)

	del, err = k.settleDelegation(ctx, params, val, del)
	if err != nil {
		return math.Int{}, err
	}

	if err := k.Delegations.Set(ctx, collections.Join(delegator, validator), del); err != nil {
		return math.Int{}, err
	}

	return claimable, nil
}

// PendingRewardsOf returns the delegation's claimable rewards without
// paying them out.
func (k Keeper) PendingRewardsOf(ctx context.Context, delegator, validator []byte) (math.Int, error) {
	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return math.Int{}, err
	}

	del, err := k.GetDelegation(ctx, delegator, validator)
	if err != nil {
		return math.Int{}, err
	}

	return val.RewardIndex.Sub(del.RewardCursorIndex).Mul(del.Amount).Quo(types.RewardScale), nil
}

// WithdrawCommission pays the validator its accumulated commission and
// returns the amount paid.
func (k Keeper) WithdrawCommission(ctx context.Context, validator []byte) (math.Int, error) {
	val, err := k.GetValidator(ctx, validator)
	if err != nil {
		return math.Int{}, err
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return math.Int{}, err
	}

	commission := val.AccumulatedCommission
	if commission.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.RewardsPoolName, validator, params.RewardDenom, commission); err != nil {
			return math.Int{}, err
		}
	}

	val.AccumulatedCommission = math.ZeroInt()
	if err := k.Validators.Set(ctx, validator, val); err != nil {
		return math.Int{}, err
	}

	return commission, nil
}

// GetPendingRewards returns the undistributed reward balance.
func (k Keeper) GetPendingRewards(ctx context.Context) (math.Int, error) {
	pending, err := k.PendingRewards.Get(ctx)
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}

	return pending, nil
}

// GetGlobalRewardIndex returns the cumulative reward per bonded token,
// scaled by RewardScale.
func (k Keeper) GetGlobalRewardIndex(ctx context.Context) (math.Int, error) {
	idx, err := k.GlobalRewardIndex.Get(ctx)
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}

	return idx, nil
}
