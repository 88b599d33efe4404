package types

import (
	"context"

	"cosmossdk.io/math"
)

// BankKeeper is the ledger collaborator consumed by x/emission. Pool
// accounts are module accounts addressed by name.
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName, denom string, amt math.Int) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule, denom string, amt math.Int) error
}

// StakingKeeper receives the staking_rewards pool inflow each block and
// reports the reward index after distribution.
type StakingKeeper interface {
	ApplyExternalEmission(ctx context.Context, amount math.Int) (math.Int, error)
}
