package keeper

import (
	"cosmossdk.io/collections"
	corestoretypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	dytypes "github.com/DytallixHQ/dytallix/types"
	"github.com/DytallixHQ/dytallix/x/staking/types"
)

// Keeper of the staking store
type Keeper struct {
	storeService corestoretypes.KVStoreService
	logger       log.Logger

	bankKeeper types.BankKeeper

	// the address capable of updating module params and executing
	// governance slashes.
	authority string

	Schema collections.Schema

	Params            collections.Item[types.Params]
	TotalBonded       collections.Item[math.Int]
	GlobalRewardIndex collections.Item[math.Int]
	PendingRewards    collections.Item[math.Int]

	Validators collections.Map[[]byte, types.Validator]

	// Delegations is keyed (delegator, validator); DelegationsByVal is the
	// reverse index used for slashing and per-validator scans.
	Delegations      collections.Map[collections.Pair[[]byte, []byte], types.Delegation]
	DelegationsByVal collections.KeySet[collections.Pair[[]byte, []byte]]

	// UnbondingQueue is keyed (completion unix time, id).
	UnbondingQueue  collections.Map[collections.Pair[uint64, uint64], types.UnbondingEntry]
	NextUnbondingID collections.Sequence

	SlashEvents      collections.Map[uint64, types.SlashEvent]
	NextSlashEventID collections.Sequence
}

// NewKeeper creates a new staking Keeper instance
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	logger log.Logger,
	bk types.BankKeeper,
	authority string,
) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		storeService: storeService,
		logger:       logger,
		bankKeeper:   bk,
		authority:    authority,

		Params:            collections.NewItem(sb, types.ParamsKey, "params", dytypes.JSONValue[types.Params]()),
		TotalBonded:       collections.NewItem(sb, types.TotalBondedKey, "total_bonded", dytypes.JSONValue[math.Int]()),
		GlobalRewardIndex: collections.NewItem(sb, types.GlobalRewardIndexKey, "global_reward_index", dytypes.JSONValue[math.Int]()),
		PendingRewards:    collections.NewItem(sb, types.PendingRewardsKey, "pending_rewards", dytypes.JSONValue[math.Int]()),

		Validators: collections.NewMap(sb, types.ValidatorsPrefix, "validators", collections.BytesKey, dytypes.JSONValue[types.Validator]()),

		Delegations: collections.NewMap(
			sb, types.DelegationsPrefix, "delegations",
			collections.PairKeyCodec(collections.BytesKey, collections.BytesKey),
			dytypes.JSONValue[types.Delegation](),
		),
		DelegationsByVal: collections.NewKeySet(
			sb, types.DelegationsByValIndexPrefix, "delegations_by_validator",
			collections.PairKeyCodec(collections.BytesKey, collections.BytesKey),
		),

		UnbondingQueue: collections.NewMap(
			sb, types.UnbondingQueuePrefix, "unbonding_queue",
			collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key),
			dytypes.JSONValue[types.UnbondingEntry](),
		),
		NextUnbondingID: collections.NewSequence(sb, types.NextUnbondingIDKey, "next_unbonding_id"),

		SlashEvents:      collections.NewMap(sb, types.SlashEventsPrefix, "slash_events", collections.Uint64Key, dytypes.JSONValue[types.SlashEvent]()),
		NextSlashEventID: collections.NewSequence(sb, types.NextSlashEventIDKey, "next_slash_event_id"),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetAuthority returns the x/staking module's authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}
