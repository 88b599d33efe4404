package types

import (
	"context"

	"cosmossdk.io/math"
)

// BankKeeper is the ledger collaborator consumed by x/staking. Stake moves
// between user accounts and the module pool accounts; slashed stake is
// burned from the bonded pool.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, sender []byte, recipientModule, denom string, amt math.Int) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipient []byte, denom string, amt math.Int) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule, denom string, amt math.Int) error
	BurnCoins(ctx context.Context, moduleName, denom string, amt math.Int) error
}
