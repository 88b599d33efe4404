package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/emission module sentinel errors
var (
	ErrInvalidConfig = errorsmod.Register(ModuleName, 2, "invalid emission config")
	ErrEventNotFound = errorsmod.Register(ModuleName, 3, "emission event not found")
	ErrOverflow      = errorsmod.Register(ModuleName, 4, "amount overflow")
)
