package keeper

import (
	"context"
	"strings"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"github.com/hashicorp/go-metrics"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// EndBlocker closes voting on proposals whose period has ended and executes
// passed proposals whose timelock has elapsed. It is the only place an
// active proposal leaves the Active status besides cancellation.
func (k Keeper) EndBlocker(ctx context.Context, height uint64, now time.Time) error {
	defer metrics.MeasureSince([]string{"gov", "end_blocker"}, time.Now())

	if err := k.closeVotedProposals(ctx, now); err != nil {
		return err
	}

	return k.executeMaturedProposals(ctx, now)
}

func (k Keeper) closeVotedProposals(ctx context.Context, now time.Time) error {
	var due []collections.Pair[uint64, uint64]
	rng := collections.NewPrefixUntilPairRange[uint64, uint64](uint64(now.Unix()))
	err := k.ActiveQueue.Walk(ctx, rng, func(key collections.Pair[uint64, uint64]) (bool, error) {
		due = append(due, key)
		return false, nil
	})
	if err != nil {
		return err
	}

	for _, key := range due {
		proposalID := key.K2()
		prop, err := k.GetProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		result, err := k.Tally(ctx, prop)
		if err != nil {
			return err
		}
		prop.Tally = &result

		params, err := k.Params.Get(ctx)
		if err != nil {
			return err
		}

		passed, burnDeposit := types.StrategyForProposal(prop.Type).Passes(result, params)
		if passed {
			prop.Status = types.StatusPassed
			prop.ExecutionDeadline = now.Add(params.TimelockPeriod)

			if err := k.refundDeposits(ctx, proposalID); err != nil {
				return err
			}
			if err := k.ExecutionQueue.Set(ctx, collections.Join(uint64(prop.ExecutionDeadline.Unix()), proposalID)); err != nil {
				return err
			}
		} else {
			prop.Status = types.StatusRejected

			if burnDeposit {
				if err := k.burnDeposits(ctx, proposalID); err != nil {
					return err
				}
			} else {
				if err := k.refundDeposits(ctx, proposalID); err != nil {
					return err
				}
			}
		}

		if err := k.Proposals.Set(ctx, proposalID, prop); err != nil {
			return err
		}
		if err := k.ActiveQueue.Remove(ctx, key); err != nil {
			return err
		}

		k.Logger().Info("proposal tallied",
			"id", proposalID,
			"strategy", result.Strategy,
			"passed", passed,
			"deposit_burned", burnDeposit,
		)

		metrics.IncrCounterWithLabels(
			[]string{"gov", "proposals_closed"},
			1,
			[]metrics.Label{{Name: "status", Value: string(prop.Status)}},
		)
	}

	return nil
}

func (k Keeper) executeMaturedProposals(ctx context.Context, now time.Time) error {
	var due []collections.Pair[uint64, uint64]
	rng := collections.NewPrefixUntilPairRange[uint64, uint64](uint64(now.Unix()))
	err := k.ExecutionQueue.Walk(ctx, rng, func(key collections.Pair[uint64, uint64]) (bool, error) {
		due = append(due, key)
		return false, nil
	})
	if err != nil {
		return err
	}

	for _, key := range due {
		proposalID := key.K2()
		prop, err := k.GetProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		// a proposal gets exactly one execution attempt
		result := types.ExecutionResult{Executed: true, Time: now}
		if err := k.executeProposal(ctx, prop); err != nil {
			result.Error = err.Error()
			k.Logger().Error("proposal execution failed", "id", proposalID, "err", err)
		}

		prop.Status = types.StatusExecuted
		prop.ExecutionResult = &result

		if err := k.Proposals.Set(ctx, proposalID, prop); err != nil {
			return err
		}
		if err := k.ExecutionQueue.Remove(ctx, key); err != nil {
			return err
		}
	}

	return nil
}

// executeProposal applies the proposal's payload. Text proposals and DAO
// resolutions carry none; parameter changes route through the registered
// param changers.
func (k Keeper) executeProposal(ctx context.Context, prop types.Proposal) error {
	if prop.Type != types.ProposalTypeParameterChange {
		return nil
	}

	for _, change := range prop.Changes {
		changer, param, err := k.resolveParamChanger(change.Key)
		if err != nil {
			return err
		}

		if err := changer.ApplyParamChange(ctx, param, change.Value); err != nil {
			return errorsmod.Wrapf(err, "applying %s", change.Key)
		}
	}

	return nil
}

// resolveParamChanger splits a "module.param" key and returns the handler
// registered for the module along with the bare parameter name.
func (k Keeper) resolveParamChanger(key string) (types.ParamChanger, string, error) {
	module, param, found := strings.Cut(key, ".")
	if !found || module == "" || param == "" {
		return nil, "", errorsmod.Wrapf(types.ErrUnknownParamTarget, "malformed key %q", key)
	}

	changer, ok := k.paramChangers[module]
	if !ok {
		return nil, "", errorsmod.Wrapf(types.ErrUnknownParamTarget, "no handler for module %q", module)
	}

	return changer, param, nil
}
