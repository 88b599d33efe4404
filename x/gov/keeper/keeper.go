package keeper

import (
	"cosmossdk.io/collections"
	corestoretypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	dytypes "github.com/DytallixHQ/dytallix/types"
	"github.com/DytallixHQ/dytallix/x/gov/types"
)

// Keeper of the governance store
type Keeper struct {
	storeService corestoretypes.KVStoreService
	logger       log.Logger

	stakingKeeper types.StakingKeeper
	bankKeeper    types.BankKeeper

	// paramChangers routes "module.param" change keys to the owning module.
	paramChangers map[string]types.ParamChanger

	authority string

	Schema collections.Schema

	Params         collections.Item[types.Params]
	NextProposalID collections.Sequence

	Proposals collections.Map[uint64, types.Proposal]

	// ActiveQueue holds voting proposals keyed (voting end unix time, id);
	// ExecutionQueue holds passed proposals keyed (execution unix time, id).
	ActiveQueue    collections.KeySet[collections.Pair[uint64, uint64]]
	ExecutionQueue collections.KeySet[collections.Pair[uint64, uint64]]

	Ballots  collections.Map[collections.Pair[uint64, []byte], types.Ballot]
	Deposits collections.Map[collections.Pair[uint64, []byte], math.Int]
}

// NewKeeper creates a new governance Keeper instance
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	logger log.Logger,
	sk types.StakingKeeper,
	bk types.BankKeeper,
	authority string,
) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		storeService:  storeService,
		logger:        logger,
		stakingKeeper: sk,
		bankKeeper:    bk,
		paramChangers: make(map[string]types.ParamChanger),
		authority:     authority,

		Params:         collections.NewItem(sb, types.ParamsKey, "params", dytypes.JSONValue[types.Params]()),
		NextProposalID: collections.NewSequence(sb, types.NextProposalIDKey, "next_proposal_id"),

		Proposals: collections.NewMap(sb, types.ProposalsPrefix, "proposals", collections.Uint64Key, dytypes.JSONValue[types.Proposal]()),

		ActiveQueue: collections.NewKeySet(
			sb, types.ActiveProposalsQueuePrefix, "active_proposals_queue",
			collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key),
		),
		ExecutionQueue: collections.NewKeySet(
			sb, types.ExecutionQueuePrefix, "execution_queue",
			collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key),
		),

		Ballots: collections.NewMap(
			sb, types.BallotsPrefix, "ballots",
			collections.PairKeyCodec(collections.Uint64Key, collections.BytesKey),
			dytypes.JSONValue[types.Ballot](),
		),
		Deposits: collections.NewMap(
			sb, types.DepositsPrefix, "deposits",
			collections.PairKeyCodec(collections.Uint64Key, collections.BytesKey),
			dytypes.JSONValue[math.Int](),
		),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// SetParamChanger registers the handler for a module's governance-driven
// parameter changes.
func (k *Keeper) SetParamChanger(module string, changer types.ParamChanger) {
	k.paramChangers[module] = changer
}

// GetAuthority returns the x/gov module's authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}
