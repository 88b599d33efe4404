package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

func TestEndBlockerPassesLinearProposal(t *testing.T) {
	ctx, k, _, bank, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())
	proposerAfterSubmit := bank.accountBalance(proposer)

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, testTime)
	require.NoError(t, err)
	_, err = k.Vote(ctx, prop.ID, voter2, types.OptionNo, 2, testTime)
	require.NoError(t, err)

	// before the voting period ends nothing happens
	require.NoError(t, k.EndBlocker(ctx, 10, testTime.Add(time.Hour)))
	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusActive, stored.Status)

	require.NoError(t, k.EndBlocker(ctx, 100, prop.VotingEndTime))
	stored, err = k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusPassed, stored.Status)
	require.Equal(t, prop.VotingEndTime.Add(types.DefaultTimelockPeriod), stored.ExecutionDeadline)

	require.NotNil(t, stored.Tally)
	require.Equal(t, "linear", stored.Tally.Strategy)
	require.Equal(t, int64(400), stored.Tally.Yes.Int64())
	require.Equal(t, int64(100), stored.Tally.No.Int64())
	require.Equal(t, int64(500), stored.Tally.RawVotedPower.Int64())
	require.Equal(t, int64(1000), stored.Tally.TotalSystemPower.Int64())

	// deposits come back on a pass
	require.Equal(t, proposerAfterSubmit.Add(types.DefaultMinDeposit), bank.accountBalance(proposer))

	// a text proposal executes as a no-op once the timelock elapses
	require.NoError(t, k.EndBlocker(ctx, 200, stored.ExecutionDeadline))
	stored, err = k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusExecuted, stored.Status)
	require.NotNil(t, stored.ExecutionResult)
	require.Empty(t, stored.ExecutionResult.Error)
}

func TestEndBlockerRejectsOnQuorum(t *testing.T) {
	ctx, k, _, bank, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())
	proposerAfterSubmit := bank.accountBalance(proposer)

	// 100 of 1000 raw power is below the 33.33% quorum
	_, err := k.Vote(ctx, prop.ID, voter2, types.OptionYes, 2, testTime)
	require.NoError(t, err)

	require.NoError(t, k.EndBlocker(ctx, 100, prop.VotingEndTime))

	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusRejected, stored.Status)

	// rejection without a veto refunds the deposit
	require.Equal(t, proposerAfterSubmit.Add(types.DefaultMinDeposit), bank.accountBalance(proposer))
	require.True(t, bank.burned.IsZero())
}

func TestEndBlockerBurnsDepositOnVeto(t *testing.T) {
	ctx, k, _, bank, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionNoWithVeto, 2, testTime)
	require.NoError(t, err)
	_, err = k.Vote(ctx, prop.ID, voter2, types.OptionYes, 2, testTime)
	require.NoError(t, err)

	require.NoError(t, k.EndBlocker(ctx, 100, prop.VotingEndTime))

	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusRejected, stored.Status)
	require.Equal(t, types.DefaultMinDeposit, bank.burned)
	require.True(t, bank.moduleBalance(types.ModuleName).IsZero())
}

func TestQuadraticTallyFlipsOutcome(t *testing.T) {
	ctx, k, staking, _, _ := setupKeeper(t)

	staking.setPower(voter1, 400) // whale against
	staking.setPower(voter2, 225)
	staking.setPower(voter3, 100)

	dao := textProposal()
	dao.Type = types.ProposalTypeDAOResolution
	prop := submit(t, ctx, k, dao)

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionNo, 2, testTime)
	require.NoError(t, err)
	_, err = k.Vote(ctx, prop.ID, voter2, types.OptionYes, 2, testTime)
	require.NoError(t, err)
	_, err = k.Vote(ctx, prop.ID, voter3, types.OptionYes, 2, testTime)
	require.NoError(t, err)

	require.NoError(t, k.EndBlocker(ctx, 100, prop.VotingEndTime))

	// raw power says no (400 vs 325); square roots say yes (25 vs 20)
	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusPassed, stored.Status)
	require.Equal(t, "quadratic", stored.Tally.Strategy)
	require.Equal(t, int64(25), stored.Tally.Yes.Int64())
	require.Equal(t, int64(20), stored.Tally.No.Int64())
	require.Equal(t, int64(725), stored.Tally.RawVotedPower.Int64())

	// the dampened weight is written back to each ballot
	ballot, err := k.GetBallot(ctx, prop.ID, voter1)
	require.NoError(t, err)
	require.Equal(t, int64(20), ballot.TransformedPower.Int64())
}

func TestParameterChangeExecution(t *testing.T) {
	ctx, k, _, _, target := setupKeeper(t)

	change := textProposal()
	change.Type = types.ProposalTypeParameterChange
	change.Changes = []types.ParamChange{
		{Key: "staking.max_validators", Value: "50"},
		{Key: "gov.quorum_bps", Value: "4000"},
	}
	prop := submit(t, ctx, k, change)

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, testTime)
	require.NoError(t, err)

	require.NoError(t, k.EndBlocker(ctx, 100, prop.VotingEndTime))

	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusPassed, stored.Status)

	// the timelock holds execution back
	require.NoError(t, k.EndBlocker(ctx, 150, stored.ExecutionDeadline.Add(-time.Minute)))
	stored, err = k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusPassed, stored.Status)
	require.Empty(t, target.applied)

	require.NoError(t, k.EndBlocker(ctx, 200, stored.ExecutionDeadline))
	stored, err = k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusExecuted, stored.Status)
	require.Empty(t, stored.ExecutionResult.Error)

	require.Equal(t, "50", target.applied["max_validators"])

	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(4_000), params.QuorumBps)
}

func TestFailedExecutionIsNotRetried(t *testing.T) {
	ctx, k, _, _, target := setupKeeper(t)
	target.fail = true

	change := textProposal()
	change.Type = types.ProposalTypeParameterChange
	change.Changes = []types.ParamChange{{Key: "staking.max_validators", Value: "50"}}
	prop := submit(t, ctx, k, change)

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, testTime)
	require.NoError(t, err)

	require.NoError(t, k.EndBlocker(ctx, 100, prop.VotingEndTime))
	stored, err := k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)

	require.NoError(t, k.EndBlocker(ctx, 200, stored.ExecutionDeadline))

	stored, err = k.GetProposal(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, types.StatusExecuted, stored.Status)
	require.Contains(t, stored.ExecutionResult.Error, "rejected by module")

	// the failure is final: later blocks do not pick it up again
	target.fail = false
	require.NoError(t, k.EndBlocker(ctx, 300, stored.ExecutionDeadline.Add(time.Hour)))
	require.Empty(t, target.applied)
}
