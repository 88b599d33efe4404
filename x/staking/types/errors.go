package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/staking module sentinel errors
var (
	ErrValidatorNotFound  = errorsmod.Register(ModuleName, 2, "validator does not exist")
	ErrValidatorExists    = errorsmod.Register(ModuleName, 3, "validator already exists")
	ErrValidatorJailed    = errorsmod.Register(ModuleName, 4, "validator is jailed")
	ErrDelegationNotFound = errorsmod.Register(ModuleName, 5, "delegation does not exist")
	ErrEmptyDelegation    = errorsmod.Register(ModuleName, 6, "delegation amount must be positive")
	ErrInsufficientStake  = errorsmod.Register(ModuleName, 7, "insufficient staked amount")
	ErrMaxValidators      = errorsmod.Register(ModuleName, 8, "maximum number of active validators reached")
	ErrInvalidCommission  = errorsmod.Register(ModuleName, 9, "invalid commission rate")
	ErrSelfStakeTooLow    = errorsmod.Register(ModuleName, 10, "self stake below minimum")
	ErrInvalidConfig      = errorsmod.Register(ModuleName, 11, "invalid staking config")
	ErrNoUnbondingEntry   = errorsmod.Register(ModuleName, 12, "no matured unbonding entries")
	ErrInvalidSlashReason = errorsmod.Register(ModuleName, 13, "invalid slash reason")
	ErrValidatorNotJailed = errorsmod.Register(ModuleName, 14, "validator is not jailed")
)
