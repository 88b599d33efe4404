package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/x/emission/types"
)

func TestDefaultParamsValid(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())
}

func TestValidatePoolSplit(t *testing.T) {
	params := types.DefaultParams()

	params.PoolSplit = []types.PoolWeight{
		{Name: types.PoolBlockRewards, Percent: 60},
		{Name: types.PoolStakingRewards, Percent: 50},
	}
	require.Error(t, params.Validate())

	params.PoolSplit = []types.PoolWeight{
		{Name: types.PoolBlockRewards, Percent: 50},
		{Name: types.PoolBlockRewards, Percent: 50},
	}
	require.Error(t, params.Validate())

	params.PoolSplit = nil
	require.Error(t, params.Validate())

	params.PoolSplit = []types.PoolWeight{
		{Name: types.PoolBlockRewards, Percent: 100},
	}
	require.NoError(t, params.Validate())
}

func TestValidatePhasedSchedule(t *testing.T) {
	end10 := uint64(10)
	end20 := uint64(20)

	params := types.DefaultParams()
	params.Schedule = types.Schedule{
		Mode: types.SchedulePhased,
		Phases: []types.Phase{
			{StartHeight: 1, EndHeight: &end10, PerBlock: math.NewInt(100)},
			{StartHeight: 11, EndHeight: &end20, PerBlock: math.NewInt(50)},
			{StartHeight: 21, PerBlock: math.NewInt(25)},
		},
	}
	require.NoError(t, params.Validate())

	// overlapping phases are rejected up front
	params.Schedule.Phases = []types.Phase{
		{StartHeight: 1, EndHeight: &end20, PerBlock: math.NewInt(100)},
		{StartHeight: 10, PerBlock: math.NewInt(50)},
	}
	require.Error(t, params.Validate())

	// an open-ended phase cannot be followed by another
	params.Schedule.Phases = []types.Phase{
		{StartHeight: 1, PerBlock: math.NewInt(100)},
		{StartHeight: 50, PerBlock: math.NewInt(50)},
	}
	require.Error(t, params.Validate())

	params.Schedule.Phases = nil
	require.Error(t, params.Validate())
}

func TestValidatePercentageSchedule(t *testing.T) {
	params := types.DefaultParams()

	params.Schedule.AnnualRateBps = 10_001
	require.Error(t, params.Validate())

	params.Schedule.AnnualRateBps = 500
	params.Schedule.BlocksPerYear = 0
	require.Error(t, params.Validate())
}
