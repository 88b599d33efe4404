package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/DytallixHQ/dytallix/app"
	"github.com/DytallixHQ/dytallix/x/gov/keeper"
	"github.com/DytallixHQ/dytallix/x/gov/types"
)

var (
	proposer = []byte("proposer-------------")
	voter1   = []byte("voter1---------------")
	voter2   = []byte("voter2---------------")
	voter3   = []byte("voter3---------------")

	testTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

// mockStaking serves fixed voting powers.
type mockStaking struct {
	powers map[string]math.Int
	total  math.Int
}

func newMockStaking() *mockStaking {
	return &mockStaking{
		powers: make(map[string]math.Int),
		total:  math.ZeroInt(),
	}
}

func (s *mockStaking) setPower(voter []byte, power int64) {
	s.powers[string(voter)] = math.NewInt(power)
}

func (s *mockStaking) VotingPower(_ context.Context, voter []byte) (math.Int, error) {
	if power, ok := s.powers[string(voter)]; ok {
		return power, nil
	}
	return math.ZeroInt(), nil
}

func (s *mockStaking) TotalBondedTokens(_ context.Context) (math.Int, error) {
	return s.total, nil
}

// mockBank tracks escrowed and burned deposits.
type mockBank struct {
	balances map[string]math.Int
	burned   math.Int
}

func newMockBank() *mockBank {
	return &mockBank{
		balances: make(map[string]math.Int),
		burned:   math.ZeroInt(),
	}
}

func (b *mockBank) get(key string) math.Int {
	if amt, ok := b.balances[key]; ok {
		return amt
	}
	return math.ZeroInt()
}

func (b *mockBank) fund(addr []byte, amt math.Int) {
	b.balances["acc/"+string(addr)] = b.get("acc/" + string(addr)).Add(amt)
}

func (b *mockBank) accountBalance(addr []byte) math.Int {
	return b.get("acc/" + string(addr))
}

func (b *mockBank) moduleBalance(name string) math.Int {
	return b.get("mod/" + name)
}

func (b *mockBank) move(from, to string, amt math.Int) error {
	if b.get(from).LT(amt) {
		return errors.New("insufficient funds")
	}
	b.balances[from] = b.get(from).Sub(amt)
	b.balances[to] = b.get(to).Add(amt)
	return nil
}

func (b *mockBank) SendCoinsFromAccountToModule(_ context.Context, sender []byte, recipientModule, _ string, amt math.Int) error {
	return b.move("acc/"+string(sender), "mod/"+recipientModule, amt)
}

func (b *mockBank) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipient []byte, _ string, amt math.Int) error {
	return b.move("mod/"+senderModule, "acc/"+string(recipient), amt)
}

func (b *mockBank) BurnCoins(_ context.Context, moduleName, _ string, amt math.Int) error {
	key := "mod/" + moduleName
	if b.get(key).LT(amt) {
		return errors.New("insufficient funds")
	}
	b.balances[key] = b.get(key).Sub(amt)
	b.burned = b.burned.Add(amt)
	return nil
}

// mockParamTarget records applied parameter changes and optionally fails.
type mockParamTarget struct {
	applied map[string]string
	fail    bool
}

func newMockParamTarget() *mockParamTarget {
	return &mockParamTarget{applied: make(map[string]string)}
}

func (m *mockParamTarget) ApplyParamChange(_ context.Context, key, value string) error {
	if m.fail {
		return errors.New("rejected by module")
	}
	m.applied[key] = value
	return nil
}

func setupKeeper(t *testing.T) (context.Context, *keeper.Keeper, *mockStaking, *mockBank, *mockParamTarget) {
	t.Helper()

	storeService := app.NewKVStoreService(dbm.NewMemDB())
	staking := newMockStaking()
	bank := newMockBank()

	k := keeper.NewKeeper(storeService, log.NewNopLogger(), staking, bank, types.ModuleName)

	target := newMockParamTarget()
	k.SetParamChanger("staking", target)
	k.SetParamChanger(types.ModuleName, k)

	ctx := context.Background()
	require.NoError(t, k.InitGenesis(ctx, types.DefaultGenesisState()))

	seed := math.NewInt(100_000_000_000)
	for _, addr := range [][]byte{proposer, voter1, voter2, voter3} {
		bank.fund(addr, seed)
	}

	staking.total = math.NewInt(1_000)
	staking.setPower(voter1, 400)
	staking.setPower(voter2, 100)

	return ctx, k, staking, bank, target
}

func textProposal() types.Proposal {
	return types.Proposal{
		Type:        types.ProposalTypeText,
		Title:       "expand bridge operations",
		Description: "signal support for the next bridge phase",
		Proposer:    proposer,
	}
}

func submit(t *testing.T, ctx context.Context, k *keeper.Keeper, prop types.Proposal) types.Proposal {
	t.Helper()

	out, err := k.SubmitProposal(ctx, prop, types.DefaultMinDeposit, 1, testTime)
	require.NoError(t, err)
	return out
}
