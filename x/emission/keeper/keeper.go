package keeper

import (
	"cosmossdk.io/collections"
	corestoretypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	dytypes "github.com/DytallixHQ/dytallix/types"
	"github.com/DytallixHQ/dytallix/x/emission/types"
)

// Keeper of the emission store
type Keeper struct {
	storeService corestoretypes.KVStoreService
	logger       log.Logger

	bankKeeper    types.BankKeeper
	stakingKeeper types.StakingKeeper

	// the address capable of updating module params, typically the
	// governance module account.
	authority string

	Schema collections.Schema

	Params            collections.Item[types.Params]
	LastHeight        collections.Item[uint64]
	CirculatingSupply collections.Item[math.Int]
	EmissionEvents    collections.Map[uint64, types.EmissionEvent]
}

// NewKeeper creates a new emission Keeper instance
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	logger log.Logger,
	bk types.BankKeeper,
	sk types.StakingKeeper,
	authority string,
) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		storeService:  storeService,
		logger:        logger,
		bankKeeper:    bk,
		stakingKeeper: sk,
		authority:     authority,

		Params:            collections.NewItem(sb, types.ParamsKey, "params", dytypes.JSONValue[types.Params]()),
		LastHeight:        collections.NewItem(sb, types.LastHeightKey, "last_height", collections.Uint64Value),
		CirculatingSupply: collections.NewItem(sb, types.CirculatingSupplyKey, "circulating_supply", dytypes.JSONValue[math.Int]()),
		EmissionEvents:    collections.NewMap(sb, types.EmissionEventsPrefix, "emission_events", collections.Uint64Key, dytypes.JSONValue[types.EmissionEvent]()),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetAuthority returns the x/emission module's authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}
