package keeper

import (
	"context"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/hashicorp/go-metrics"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/DytallixHQ/dytallix/x/emission/types"
)

// ApplyUntil emits rewards for every unapplied height up to and including
// height. Heights at or below the last applied height are a no-op, which
// makes replays idempotent. The timestamp is recorded on each event.
func (k Keeper) ApplyUntil(ctx context.Context, height uint64, timestamp time.Time) error {
	defer metrics.MeasureSince([]string{"emission", "apply"}, time.Now())

	last, err := k.LastHeight.Get(ctx)
	if err != nil && !errorsmod.IsOf(err, collections.ErrNotFound) {
		return err
	}

	if height <= last {
		return nil
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	supply, err := k.CirculatingSupply.Get(ctx)
	if err != nil {
		if !errorsmod.IsOf(err, collections.ErrNotFound) {
			return err
		}
		supply = params.InitialSupply
	}

	for h := last + 1; h <= height; h++ {
		supply, err = k.emitForHeight(ctx, params, h, timestamp, supply)
		if err != nil {
			return err
		}
	}

	if err := k.CirculatingSupply.Set(ctx, supply); err != nil {
		return err
	}

	return k.LastHeight.Set(ctx, height)
}

func (k Keeper) emitForHeight(ctx context.Context, params types.Params, height uint64, timestamp time.Time, supply math.Int) (math.Int, error) {
	amount := perBlockAmount(params.Schedule, height, supply)
	pools := splitPools(params.PoolSplit, amount)

	if amount.IsPositive() {
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, params.RewardDenom, amount); err != nil {
			return supply, err
		}

		names := maps.Keys(pools)
		slices.Sort(names)
		for _, name := range names {
			if pools[name].IsZero() {
				continue
			}
			if err := k.bankKeeper.SendCoinsFromModuleToModule(ctx, types.ModuleName, name, params.RewardDenom, pools[name]); err != nil {
				return supply, err
			}
		}
	}

	// staking folds its pending balance even when this block's staking
	// share is zero, and reports the resulting reward index
	stakingShare, ok := pools[types.PoolStakingRewards]
	if !ok {
		stakingShare = math.ZeroInt()
	}
	rewardIndex, err := k.stakingKeeper.ApplyExternalEmission(ctx, stakingShare)
	if err != nil {
		return supply, err
	}

	supply = supply.Add(amount)

	event := types.EmissionEvent{
		Height:            height,
		Timestamp:         uint64(timestamp.Unix()),
		TotalEmitted:      amount,
		Pools:             pools,
		CirculatingSupply: supply,
		RewardIndexAfter:  rewardIndex,
	}
	if err := k.EmissionEvents.Set(ctx, height, event); err != nil {
		return supply, err
	}

	if amount.IsInt64() {
		metrics.IncrCounterWithLabels(
			[]string{"emission", "emitted"},
			float32(amount.Int64()),
			[]metrics.Label{{Name: "denom", Value: params.RewardDenom}},
		)
	}

	return supply, nil
}

// perBlockAmount computes the emission for a single height under the given
// schedule. All arithmetic is integer; division truncates toward zero.
func perBlockAmount(schedule types.Schedule, height uint64, supply math.Int) math.Int {
	switch schedule.Mode {
	case types.ScheduleStatic:
		return schedule.PerBlock

	case types.SchedulePhased:
		for _, phase := range schedule.Phases {
			if height < phase.StartHeight {
				continue
			}
			if phase.EndHeight != nil && height > *phase.EndHeight {
				continue
			}
			return phase.PerBlock
		}
		return math.ZeroInt()

	case types.SchedulePercentage:
		if supply.IsZero() {
			return schedule.BootstrapAmount
		}

		// the floor only applies to a nonzero annual amount; a zero rate
		// must not mint
		annual := supply.MulRaw(int64(schedule.AnnualRateBps)).QuoRaw(10_000)
		if annual.IsZero() {
			return math.ZeroInt()
		}

		amount := annual.QuoRaw(int64(schedule.BlocksPerYear))
		if amount.LT(schedule.MinPerBlock) {
			return schedule.MinPerBlock
		}
		return amount

	default:
		return math.ZeroInt()
	}
}

// splitPools divides amount across the weighted pools. Each pool receives
// its truncated integer share; the last pool absorbs the remainder so the
// shares always sum to amount exactly.
func splitPools(split []types.PoolWeight, amount math.Int) map[string]math.Int {
	pools := make(map[string]math.Int, len(split))

	distributed := math.ZeroInt()
	for i, w := range split {
		if i == len(split)-1 {
			pools[w.Name] = amount.Sub(distributed)
			break
		}

		share := amount.MulRaw(int64(w.Percent)).QuoRaw(100)
		pools[w.Name] = share
		distributed = distributed.Add(share)
	}

	return pools
}

// GetEvent returns the emission event recorded at height.
func (k Keeper) GetEvent(ctx context.Context, height uint64) (types.EmissionEvent, error) {
	event, err := k.EmissionEvents.Get(ctx, height)
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return types.EmissionEvent{}, errorsmod.Wrapf(types.ErrEventNotFound, "height %d", height)
		}
		return types.EmissionEvent{}, err
	}

	return event, nil
}

// LatestEvents returns up to limit most recent emission events, newest first.
func (k Keeper) LatestEvents(ctx context.Context, limit int) ([]types.EmissionEvent, error) {
	events := make([]types.EmissionEvent, 0, limit)
	rng := new(collections.Range[uint64]).Descending()
	err := k.EmissionEvents.Walk(ctx, rng, func(_ uint64, event types.EmissionEvent) (bool, error) {
		events = append(events, event)
		return len(events) >= limit, nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// GetSupplyInfo returns the current issuance summary.
func (k Keeper) GetSupplyInfo(ctx context.Context) (types.SupplyInfo, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.SupplyInfo{}, err
	}

	supply, err := k.CirculatingSupply.Get(ctx)
	if err != nil {
		if !errorsmod.IsOf(err, collections.ErrNotFound) {
			return types.SupplyInfo{}, err
		}
		supply = params.InitialSupply
	}

	last, err := k.LastHeight.Get(ctx)
	if err != nil && !errorsmod.IsOf(err, collections.ErrNotFound) {
		return types.SupplyInfo{}, err
	}

	return types.SupplyInfo{
		InitialSupply:     params.InitialSupply,
		CirculatingSupply: supply,
		LastHeight:        last,
	}, nil
}
