package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/app"
	"github.com/DytallixHQ/dytallix/x/emission/keeper"
	"github.com/DytallixHQ/dytallix/x/emission/types"
)

// mockBank records mints and tracks per-module balances.
type mockBank struct {
	minted   map[string]math.Int
	balances map[string]math.Int
}

func newMockBank() *mockBank {
	return &mockBank{
		minted:   make(map[string]math.Int),
		balances: make(map[string]math.Int),
	}
}

func (b *mockBank) balance(module string) math.Int {
	if amt, ok := b.balances[module]; ok {
		return amt
	}
	return math.ZeroInt()
}

func (b *mockBank) MintCoins(_ context.Context, moduleName, denom string, amt math.Int) error {
	total, ok := b.minted[denom]
	if !ok {
		total = math.ZeroInt()
	}
	b.minted[denom] = total.Add(amt)
	b.balances[moduleName] = b.balance(moduleName).Add(amt)
	return nil
}

func (b *mockBank) SendCoinsFromModuleToModule(_ context.Context, senderModule, recipientModule, _ string, amt math.Int) error {
	b.balances[senderModule] = b.balance(senderModule).Sub(amt)
	b.balances[recipientModule] = b.balance(recipientModule).Add(amt)
	return nil
}

// mockStaking records the staking pool inflow per call and reports a fixed
// reward index.
type mockStaking struct {
	inflows []math.Int
	index   math.Int
}

func (s *mockStaking) ApplyExternalEmission(_ context.Context, amount math.Int) (math.Int, error) {
	s.inflows = append(s.inflows, amount)
	return s.index, nil
}

func setupKeeper(t *testing.T) (context.Context, *keeper.Keeper, *mockBank, *mockStaking) {
	t.Helper()

	storeService := app.NewKVStoreService(dbm.NewMemDB())
	bank := newMockBank()
	staking := &mockStaking{index: math.ZeroInt()}

	k := keeper.NewKeeper(storeService, log.NewNopLogger(), bank, staking, "gov")

	ctx := context.Background()
	require.NoError(t, k.InitGenesis(ctx, types.DefaultGenesisState()))

	return ctx, k, bank, staking
}
