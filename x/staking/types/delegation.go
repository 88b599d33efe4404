package types

import (
	"time"

	"cosmossdk.io/math"
)

// Delegation records a delegator's stake with one validator. The reward
// cursor is the validator's reward index at the last settlement; rewards
// claimable are (validator index - cursor) * amount / RewardScale.
type Delegation struct {
	Delegator []byte   `json:"delegator"`
	Validator []byte   `json:"validator"`
	Amount    math.Int `json:"amount"`

	RewardCursorIndex math.Int `json:"reward_cursor_index"`
}

func NewDelegation(delegator, validator []byte, amount, cursorIndex math.Int) Delegation {
	return Delegation{
		Delegator:         delegator,
		Validator:         validator,
		Amount:            amount,
		RewardCursorIndex: cursorIndex,
	}
}

// UnbondingEntry is a queued withdrawal. Tokens sit in the not-bonded pool
// and carry no rewards or voting power until CompletionTime.
type UnbondingEntry struct {
	ID             uint64    `json:"id"`
	Delegator      []byte    `json:"delegator"`
	Validator      []byte    `json:"validator"`
	Amount         math.Int  `json:"amount"`
	CreationHeight uint64    `json:"creation_height"`
	CompletionTime time.Time `json:"completion_time"`
}
