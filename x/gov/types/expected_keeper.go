package types

import (
	"context"

	"cosmossdk.io/math"
)

// StakingKeeper supplies voting power snapshots for tallying.
type StakingKeeper interface {
	VotingPower(ctx context.Context, voter []byte) (math.Int, error)
	TotalBondedTokens(ctx context.Context) (math.Int, error)
}

// BankKeeper escrows proposal deposits in the module account and burns
// them when a proposal is vetoed.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, sender []byte, recipientModule, denom string, amt math.Int) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipient []byte, denom string, amt math.Int) error
	BurnCoins(ctx context.Context, moduleName, denom string, amt math.Int) error
}

// ParamChanger is implemented by modules that accept governance-driven
// parameter changes. The key is the bare parameter name, already stripped
// of its module prefix.
type ParamChanger interface {
	ApplyParamChange(ctx context.Context, key, value string) error
}
