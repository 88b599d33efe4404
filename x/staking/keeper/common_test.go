package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/app"
	"github.com/DytallixHQ/dytallix/x/staking/keeper"
	"github.com/DytallixHQ/dytallix/x/staking/types"
)

var (
	valAddr  = []byte("validator1-----------")
	valAddr2 = []byte("validator2-----------")
	delAddr  = []byte("delegator1-----------")
	delAddr2 = []byte("delegator2-----------")
)

// mockBank tracks account and module balances per denom. Accounts are
// keyed by address bytes, modules by name.
type mockBank struct {
	balances map[string]math.Int
	burned   map[string]math.Int
}

func newMockBank() *mockBank {
	return &mockBank{
		balances: make(map[string]math.Int),
		burned:   make(map[string]math.Int),
	}
}

func accountKey(addr []byte, denom string) string { return "acc/" + string(addr) + "/" + denom }
func moduleKey(name, denom string) string         { return "mod/" + name + "/" + denom }

func (b *mockBank) get(key string) math.Int {
	if amt, ok := b.balances[key]; ok {
		return amt
	}
	return math.ZeroInt()
}

func (b *mockBank) fund(addr []byte, denom string, amt math.Int) {
	key := accountKey(addr, denom)
	b.balances[key] = b.get(key).Add(amt)
}

func (b *mockBank) fundModule(name, denom string, amt math.Int) {
	key := moduleKey(name, denom)
	b.balances[key] = b.get(key).Add(amt)
}

func (b *mockBank) accountBalance(addr []byte, denom string) math.Int {
	return b.get(accountKey(addr, denom))
}

func (b *mockBank) moduleBalance(name, denom string) math.Int {
	return b.get(moduleKey(name, denom))
}

func (b *mockBank) burnedAmount(denom string) math.Int {
	if amt, ok := b.burned[denom]; ok {
		return amt
	}
	return math.ZeroInt()
}

func (b *mockBank) move(from, to string, amt math.Int) error {
	if b.get(from).LT(amt) {
		return errInsufficientFunds
	}
	b.balances[from] = b.get(from).Sub(amt)
	b.balances[to] = b.get(to).Add(amt)
	return nil
}

func (b *mockBank) SendCoinsFromAccountToModule(_ context.Context, sender []byte, recipientModule, denom string, amt math.Int) error {
	return b.move(accountKey(sender, denom), moduleKey(recipientModule, denom), amt)
}

func (b *mockBank) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipient []byte, denom string, amt math.Int) error {
	return b.move(moduleKey(senderModule, denom), accountKey(recipient, denom), amt)
}

func (b *mockBank) SendCoinsFromModuleToModule(_ context.Context, senderModule, recipientModule, denom string, amt math.Int) error {
	return b.move(moduleKey(senderModule, denom), moduleKey(recipientModule, denom), amt)
}

func (b *mockBank) BurnCoins(_ context.Context, moduleName, denom string, amt math.Int) error {
	key := moduleKey(moduleName, denom)
	if b.get(key).LT(amt) {
		return errInsufficientFunds
	}
	b.balances[key] = b.get(key).Sub(amt)
	if _, ok := b.burned[denom]; !ok {
		b.burned[denom] = math.ZeroInt()
	}
	b.burned[denom] = b.burned[denom].Add(amt)
	return nil
}

var errInsufficientFunds = errInsufficient{}

type errInsufficient struct{}

func (errInsufficient) Error() string { return "insufficient funds" }

func setupKeeper(t *testing.T) (context.Context, *keeper.Keeper, *mockBank) {
	t.Helper()

	storeService := app.NewKVStoreService(dbm.NewMemDB())
	bank := newMockBank()

	k := keeper.NewKeeper(storeService, log.NewNopLogger(), bank, "gov")

	ctx := context.Background()
	require.NoError(t, k.InitGenesis(ctx, types.DefaultGenesisState()))

	// generously funded test accounts
	seed := math.NewInt(100_000_000_000_000)
	for _, addr := range [][]byte{valAddr, valAddr2, delAddr, delAddr2} {
		bank.fund(addr, types.DefaultBondDenom, seed)
	}

	// the rewards pool is funded by emission in production
	bank.fundModule(types.RewardsPoolName, types.DefaultRewardDenom, seed)

	return ctx, k, bank
}

// requireStakeInvariant checks total stake equals self stake plus the sum
// of delegations for the validator.
func requireStakeInvariant(t *testing.T, ctx context.Context, k *keeper.Keeper, addr []byte) {
	t.Helper()

	val, err := k.GetValidator(ctx, addr)
	require.NoError(t, err)

	sum := val.SelfStake
	for _, d := range [][]byte{delAddr, delAddr2} {
		del, err := k.GetDelegation(ctx, d, addr)
		if err == nil {
			sum = sum.Add(del.Amount)
		}
	}

	require.Equal(t, val.TotalStake, sum, "total stake must equal self stake plus delegations")
}
