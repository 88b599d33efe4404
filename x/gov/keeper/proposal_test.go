package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

func TestSubmitProposal(t *testing.T) {
	ctx, k, _, bank, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())
	require.Equal(t, uint64(1), prop.ID)
	require.Equal(t, types.StatusActive, prop.Status)
	require.Equal(t, testTime.Add(types.DefaultVotingPeriod), prop.VotingEndTime)

	// the deposit is escrowed in the module account
	require.Equal(t, types.DefaultMinDeposit, bank.moduleBalance(types.ModuleName))

	next := submit(t, ctx, k, textProposal())
	require.Equal(t, uint64(2), next.ID)
}

func TestSubmitProposalRejections(t *testing.T) {
	ctx, k, _, _, _ := setupKeeper(t)

	_, err := k.SubmitProposal(ctx, textProposal(), types.DefaultMinDeposit.SubRaw(1), 1, testTime)
	require.ErrorIs(t, err, types.ErrInsufficientDeposit)

	bad := textProposal()
	bad.Title = ""
	_, err = k.SubmitProposal(ctx, bad, types.DefaultMinDeposit, 1, testTime)
	require.ErrorIs(t, err, types.ErrInvalidProposal)

	bad = textProposal()
	bad.Changes = []types.ParamChange{{Key: "staking.max_validators", Value: "50"}}
	_, err = k.SubmitProposal(ctx, bad, types.DefaultMinDeposit, 1, testTime)
	require.ErrorIs(t, err, types.ErrInvalidProposal)

	// change targets are checked at submission, not at execution
	unroutable := textProposal()
	unroutable.Type = types.ProposalTypeParameterChange
	unroutable.Changes = []types.ParamChange{{Key: "oracle.feed_interval", Value: "10"}}
	_, err = k.SubmitProposal(ctx, unroutable, types.DefaultMinDeposit, 1, testTime)
	require.ErrorIs(t, err, types.ErrUnknownParamTarget)

	malformed := textProposal()
	malformed.Type = types.ProposalTypeParameterChange
	malformed.Changes = []types.ParamChange{{Key: "no-dot", Value: "10"}}
	_, err = k.SubmitProposal(ctx, malformed, types.DefaultMinDeposit, 1, testTime)
	require.ErrorIs(t, err, types.ErrUnknownParamTarget)
}

func TestAddDeposit(t *testing.T) {
	ctx, k, _, bank, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())

	require.NoError(t, k.AddDeposit(ctx, prop.ID, voter1, math.NewInt(500)))

	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.DefaultMinDeposit.AddRaw(500), stored.Deposit)
	require.Equal(t, types.DefaultMinDeposit.AddRaw(500), bank.moduleBalance(types.ModuleName))

	err = k.AddDeposit(ctx, 99, voter1, math.NewInt(500))
	require.ErrorIs(t, err, types.ErrProposalNotFound)
}

func TestCancelProposal(t *testing.T) {
	ctx, k, _, bank, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())
	proposerBefore := bank.accountBalance(proposer)

	// only the proposer may cancel
	err := k.CancelProposal(ctx, prop.ID, voter1)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, k.CancelProposal(ctx, prop.ID, proposer))

	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusCancelled, stored.Status)

	// the deposit came back
	require.Equal(t, proposerBefore.Add(types.DefaultMinDeposit), bank.accountBalance(proposer))
	require.True(t, bank.moduleBalance(types.ModuleName).IsZero())

	// a cancelled proposal cannot be cancelled again or voted on
	err = k.CancelProposal(ctx, prop.ID, proposer)
	require.ErrorIs(t, err, types.ErrInactiveProposal)

	_, err = k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, testTime)
	require.ErrorIs(t, err, types.ErrInactiveProposal)
}
