package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/x/gov/types"
)

func TestVote(t *testing.T) {
	ctx, k, _, _, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())

	ballot, err := k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, testTime.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(400), ballot.RawPower)
	require.Equal(t, types.OptionYes, ballot.Option)

	stored, err := k.GetBallot(ctx, prop.ID, voter1)
	require.NoError(t, err)
	require.Equal(t, ballot.Option, stored.Option)
}

func TestDoubleVoteRejected(t *testing.T) {
	ctx, k, _, _, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, testTime)
	require.NoError(t, err)

	// changing the option does not help
	_, err = k.Vote(ctx, prop.ID, voter1, types.OptionNo, 3, testTime)
	require.ErrorIs(t, err, types.ErrAlreadyVoted)
}

func TestVoteRejections(t *testing.T) {
	ctx, k, _, _, _ := setupKeeper(t)

	prop := submit(t, ctx, k, textProposal())

	_, err := k.Vote(ctx, 99, voter1, types.OptionYes, 2, testTime)
	require.ErrorIs(t, err, types.ErrProposalNotFound)

	// voter3 has no stake
	_, err = k.Vote(ctx, prop.ID, voter3, types.OptionYes, 2, testTime)
	require.ErrorIs(t, err, types.ErrNoVotingPower)

	_, err = k.Vote(ctx, prop.ID, voter1, types.VoteOption("maybe"), 2, testTime)
	require.ErrorIs(t, err, types.ErrInvalidVote)

	// voting after the period closes fails
	_, err = k.Vote(ctx, prop.ID, voter1, types.OptionYes, 2, prop.VotingEndTime)
	require.ErrorIs(t, err, types.ErrInactiveProposal)
}

func TestVetoInvalidOnDAOResolution(t *testing.T) {
	ctx, k, _, _, _ := setupKeeper(t)

	dao := textProposal()
	dao.Type = types.ProposalTypeDAOResolution
	prop := submit(t, ctx, k, dao)

	_, err := k.Vote(ctx, prop.ID, voter1, types.OptionNoWithVeto, 2, testTime)
	require.ErrorIs(t, err, types.ErrInvalidVote)

	_, err = k.Vote(ctx, prop.ID, voter1, types.OptionNo, 2, testTime)
	require.NoError(t, err)
}
