package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/gov module sentinel errors
var (
	ErrProposalNotFound    = errorsmod.Register(ModuleName, 2, "proposal does not exist")
	ErrInactiveProposal    = errorsmod.Register(ModuleName, 3, "proposal is not in voting period")
	ErrAlreadyVoted        = errorsmod.Register(ModuleName, 4, "voter already cast a ballot")
	ErrInvalidVote         = errorsmod.Register(ModuleName, 5, "invalid vote option")
	ErrNoVotingPower       = errorsmod.Register(ModuleName, 6, "voter has no staked tokens")
	ErrInsufficientDeposit = errorsmod.Register(ModuleName, 7, "deposit below minimum")
	ErrInvalidProposal     = errorsmod.Register(ModuleName, 8, "invalid proposal content")
	ErrUnauthorized        = errorsmod.Register(ModuleName, 9, "unauthorized")
	ErrInvalidConfig       = errorsmod.Register(ModuleName, 10, "invalid governance config")
	ErrUnknownParamTarget  = errorsmod.Register(ModuleName, 11, "unknown parameter change target")
	ErrBallotNotFound      = errorsmod.Register(ModuleName, 12, "ballot does not exist")
)
