package app

import (
	"context"
	"time"

	corestoretypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	emissionkeeper "github.com/DytallixHQ/dytallix/x/emission/keeper"
	emissiontypes "github.com/DytallixHQ/dytallix/x/emission/types"
	govkeeper "github.com/DytallixHQ/dytallix/x/gov/keeper"
	govtypes "github.com/DytallixHQ/dytallix/x/gov/types"
	stakingkeeper "github.com/DytallixHQ/dytallix/x/staking/keeper"
	stakingtypes "github.com/DytallixHQ/dytallix/x/staking/types"
)

// AuthorityName is the module account that owns parameter changes.
const AuthorityName = govtypes.ModuleName

// BankKeeper is the ledger surface the economic modules share. Module
// accounts are addressed by name; user accounts by raw address bytes.
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName, denom string, amt math.Int) error
	BurnCoins(ctx context.Context, moduleName, denom string, amt math.Int) error
	SendCoinsFromAccountToModule(ctx context.Context, sender []byte, recipientModule, denom string, amt math.Int) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipient []byte, denom string, amt math.Int) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule, denom string, amt math.Int) error
}

// App wires the emission, staking, and governance keepers together.
type App struct {
	logger log.Logger

	EmissionKeeper *emissionkeeper.Keeper
	StakingKeeper  *stakingkeeper.Keeper
	GovKeeper      *govkeeper.Keeper
}

// NewApp constructs the keepers over a shared store service and registers
// the governance parameter change routes.
func NewApp(storeService corestoretypes.KVStoreService, bank BankKeeper, logger log.Logger) *App {
	stakingKeeper := stakingkeeper.NewKeeper(storeService, logger, bank, AuthorityName)
	emissionKeeper := emissionkeeper.NewKeeper(storeService, logger, bank, stakingKeeper, AuthorityName)
	govKeeper := govkeeper.NewKeeper(storeService, logger, stakingKeeper, bank, AuthorityName)

	govKeeper.SetParamChanger(stakingtypes.ModuleName, stakingKeeper)
	govKeeper.SetParamChanger(emissiontypes.ModuleName, emissionKeeper)
	govKeeper.SetParamChanger(govtypes.ModuleName, govKeeper)

	return &App{
		logger:         logger,
		EmissionKeeper: emissionKeeper,
		StakingKeeper:  stakingKeeper,
		GovKeeper:      govKeeper,
	}
}

// InitGenesis initializes all module state from defaults.
func (a *App) InitGenesis(ctx context.Context) error {
	if err := a.StakingKeeper.InitGenesis(ctx, stakingtypes.DefaultGenesisState()); err != nil {
		return err
	}

	if err := a.EmissionKeeper.InitGenesis(ctx, emissiontypes.DefaultGenesisState()); err != nil {
		return err
	}

	return a.GovKeeper.InitGenesis(ctx, govtypes.DefaultGenesisState())
}

// ApplyBlock runs the per-block pipeline: emit rewards for the height,
// release matured unbonding entries, then close and execute due proposals.
func (a *App) ApplyBlock(ctx context.Context, height uint64, timestamp time.Time) error {
	if err := a.EmissionKeeper.ApplyUntil(ctx, height, timestamp); err != nil {
		return err
	}

	if _, err := a.StakingKeeper.CompleteUnbonding(ctx, timestamp); err != nil {
		return err
	}

	return a.GovKeeper.EndBlocker(ctx, height, timestamp)
}
