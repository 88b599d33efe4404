package types

import (
	"time"

	"cosmossdk.io/math"
)

// SlashReason identifies the offense behind a slash.
type SlashReason string

const (
	SlashReasonDoubleSigning       SlashReason = "double_signing"
	SlashReasonDowntime            SlashReason = "downtime"
	SlashReasonGovernanceViolation SlashReason = "governance_violation"
)

// Jails reports whether the offense removes the validator from the active
// set. Downtime only burns stake.
func (r SlashReason) Jails() bool {
	return r == SlashReasonDoubleSigning || r == SlashReasonGovernanceViolation
}

// Valid reports whether r is a known slash reason.
func (r SlashReason) Valid() bool {
	switch r {
	case SlashReasonDoubleSigning, SlashReasonDowntime, SlashReasonGovernanceViolation:
		return true
	}
	return false
}

// SlashEvent is the immutable record of an executed slash.
type SlashEvent struct {
	ID          uint64      `json:"id"`
	Validator   []byte      `json:"validator"`
	Reason      SlashReason `json:"reason"`
	FractionBps uint64      `json:"fraction_bps"`
	Amount      math.Int    `json:"amount"`
	Height      uint64      `json:"height"`
	Timestamp   time.Time   `json:"timestamp"`
	Jailed      bool        `json:"jailed"`
}
