package keeper

import (
	"bytes"
	"context"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// GetProposal returns the proposal with the given id.
func (k Keeper) GetProposal(ctx context.Context, proposalID uint64) (types.Proposal, error) {
	prop, err := k.Proposals.Get(ctx, proposalID)
	if err != nil {
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			return types.Proposal{}, errorsmod.Wrapf(types.ErrProposalNotFound, "%d", proposalID)
		}
		return types.Proposal{}, err
	}

	return prop, nil
}

// SubmitProposal escrows the deposit and opens the proposal for voting
// immediately. The deposit must meet the minimum up front.
func (k Keeper) SubmitProposal(ctx context.Context, prop types.Proposal, deposit math.Int, height uint64, now time.Time) (types.Proposal, error) {
	if err := prop.ValidateBasic(); err != nil {
		return types.Proposal{}, errorsmod.Wrap(types.ErrInvalidProposal, err.Error())
	}

	if prop.Type == types.ProposalTypeParameterChange {
		for _, change := range prop.Changes {
			if _, _, err := k.resolveParamChanger(change.Key); err != nil {
				return types.Proposal{}, err
			}
		}
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.Proposal{}, err
	}

	if deposit.IsNil() || deposit.LT(params.MinDeposit) {
		return types.Proposal{}, errorsmod.Wrapf(types.ErrInsufficientDeposit, "got %s, want %s", deposit, params.MinDeposit)
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, prop.Proposer, types.ModuleName, params.DepositDenom, deposit); err != nil {
		return types.Proposal{}, err
	}

	id, err := k.NextProposalID.Next(ctx)
	if err != nil {
		return types.Proposal{}, err
	}

	prop.ID = id
	prop.Status = types.StatusActive
	prop.Deposit = deposit
	prop.SubmitHeight = height
	prop.SubmitTime = now
	prop.VotingEndTime = now.Add(params.VotingPeriod)

	if err := k.Proposals.Set(ctx, id, prop); err != nil {
		return types.Proposal{}, err
	}

	if err := k.Deposits.Set(ctx, collections.Join(id, prop.Proposer), deposit); err != nil {
		return types.Proposal{}, err
	}

	queueKey := collections.Join(uint64(prop.VotingEndTime.Unix()), id)
	if err := k.ActiveQueue.Set(ctx, queueKey); err != nil {
		return types.Proposal{}, err
	}

	k.Logger().Info("proposal submitted",
		"id", id,
		"type", prop.Type,
		"deposit", deposit.String(),
	)

	return prop, nil
}

// AddDeposit escrows an additional deposit on an active proposal.
func (k Keeper) AddDeposit(ctx context.Context, proposalID uint64, depositor []byte, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return errorsmod.Wrap(types.ErrInsufficientDeposit, "deposit must be positive")
	}

	prop, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}

	if prop.Status != types.StatusActive {
		return errorsmod.Wrapf(types.ErrInactiveProposal, "%d", proposalID)
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositor, types.ModuleName, params.DepositDenom, amount); err != nil {
		return err
	}

	key := collections.Join(proposalID, depositor)
	existing, err := k.Deposits.Get(ctx, key)
	if err != nil {
		if !errorsmod.IsOf(err, collections.ErrNotFound) {
			return err
		}
		existing = math.ZeroInt()
	}

	if err := k.Deposits.Set(ctx, key, existing.Add(amount)); err != nil {
		return err
	}

	prop.Deposit = prop.Deposit.Add(amount)
	return k.Proposals.Set(ctx, proposalID, prop)
}

// CancelProposal lets the proposer withdraw an active proposal. The
// deposits are refunded and cast ballots are discarded.
func (k Keeper) CancelProposal(ctx context.Context, proposalID uint64, canceller []byte) error {
	prop, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}

	if !bytes.Equal(prop.Proposer, canceller) {
		return errorsmod.Wrapf(types.ErrUnauthorized, "only the proposer can cancel proposal %d", proposalID)
	}

	if prop.Status != types.StatusActive {
		return errorsmod.Wrapf(types.ErrInactiveProposal, "%d", proposalID)
	}

	if err := k.refundDeposits(ctx, proposalID); err != nil {
		return err
	}

	queueKey := collections.Join(uint64(prop.VotingEndTime.Unix()), proposalID)
	if err := k.ActiveQueue.Remove(ctx, queueKey); err != nil {
		return err
	}

	prop.Status = types.StatusCancelled
	return k.Proposals.Set(ctx, proposalID, prop)
}

// refundDeposits returns every escrowed deposit on the proposal to its
// depositor and clears the records.
func (k Keeper) refundDeposits(ctx context.Context, proposalID uint64) error {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	return k.forEachDeposit(ctx, proposalID, func(depositor []byte, amount math.Int) error {
		return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, depositor, params.DepositDenom, amount)
	})
}

// burnDeposits destroys every escrowed deposit on the proposal.
func (k Keeper) burnDeposits(ctx context.Context, proposalID uint64) error {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return err
	}

	return k.forEachDeposit(ctx, proposalID, func(_ []byte, amount math.Int) error {
		return k.bankKeeper.BurnCoins(ctx, types.ModuleName, params.DepositDenom, amount)
	})
}

func (k Keeper) forEachDeposit(ctx context.Context, proposalID uint64, fn func(depositor []byte, amount math.Int) error) error {
	type record struct {
		depositor []byte
		amount    math.Int
	}

	var deposits []record
	rng := collections.NewPrefixedPairRange[uint64, []byte](proposalID)
	err := k.Deposits.Walk(ctx, rng, func(key collections.Pair[uint64, []byte], amount math.Int) (bool, error) {
		deposits = append(deposits, record{key.K2(), amount})
		return false, nil
	})
	if err != nil {
		return err
	}

	for _, dep := range deposits {
		if err := fn(dep.depositor, dep.amount); err != nil {
			return err
		}
		if err := k.Deposits.Remove(ctx, collections.Join(proposalID, dep.depositor)); err != nil {
			return err
		}
	}

	return nil
}

// GetProposals returns all proposals.
func (k Keeper) GetProposals(ctx context.Context) ([]types.Proposal, error) {
	var props []types.Proposal
	err := k.Proposals.Walk(ctx, nil, func(_ uint64, prop types.Proposal) (bool, error) {
		props = append(props, prop)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return props, nil
}
