package types

import (
	"time"

	"cosmossdk.io/math"
	"github.com/pkg/errors"
)

// ProposalType selects the proposal's payload and its tally strategy.
type ProposalType string

const (
	// ProposalTypeText carries no executable payload.
	ProposalTypeText ProposalType = "text"

	// ProposalTypeParameterChange mutates module parameters on execution.
	ProposalTypeParameterChange ProposalType = "parameter_change"

	// ProposalTypeDAOResolution is a text resolution tallied quadratically
	// to dampen whale influence.
	ProposalTypeDAOResolution ProposalType = "dao_resolution"
)

// Valid reports whether t is a known proposal type.
func (t ProposalType) Valid() bool {
	switch t {
	case ProposalTypeText, ProposalTypeParameterChange, ProposalTypeDAOResolution:
		return true
	}
	return false
}

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	StatusActive    ProposalStatus = "active"
	StatusPassed    ProposalStatus = "passed"
	StatusRejected  ProposalStatus = "rejected"
	StatusExecuted  ProposalStatus = "executed"
	StatusCancelled ProposalStatus = "cancelled"
)

// ParamChange targets one parameter as "module.param" with a string-encoded
// value; the owning module parses and validates the value on execution.
type ParamChange struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (c ParamChange) Validate() error {
	if c.Key == "" {
		return errors.New("empty param change key")
	}

	if c.Value == "" {
		return errors.New("empty param change value")
	}

	return nil
}

// ExecutionResult records the outcome of the one execution attempt a passed
// proposal gets. Failed executions are not retried.
type ExecutionResult struct {
	Executed bool      `json:"executed"`
	Error    string    `json:"error,omitempty"`
	Time     time.Time `json:"time"`
}

// Proposal is a governance proposal with its escrowed deposit, tally
// outcome, and execution record.
type Proposal struct {
	ID          uint64         `json:"id"`
	Type        ProposalType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Proposer    []byte         `json:"proposer"`
	Status      ProposalStatus `json:"status"`
	Deposit     math.Int       `json:"deposit"`

	SubmitHeight  uint64    `json:"submit_height"`
	SubmitTime    time.Time `json:"submit_time"`
	VotingEndTime time.Time `json:"voting_end_time"`

	// set when the proposal passes
	ExecutionDeadline time.Time        `json:"execution_deadline,omitempty"`
	ExecutionResult   *ExecutionResult `json:"execution_result,omitempty"`

	// parameter_change payload
	Changes []ParamChange `json:"changes,omitempty"`

	Tally *TallyResult `json:"tally,omitempty"`
}

// ValidateBasic checks the proposal's static content.
func (p Proposal) ValidateBasic() error {
	if !p.Type.Valid() {
		return errors.Errorf("unknown proposal type %q", p.Type)
	}

	if p.Title == "" {
		return errors.New("empty title")
	}

	if len(p.Proposer) == 0 {
		return errors.New("empty proposer")
	}

	switch p.Type {
	case ProposalTypeParameterChange:
		if len(p.Changes) == 0 {
			return errors.New("parameter change proposal without changes")
		}
		for _, c := range p.Changes {
			if err := c.Validate(); err != nil {
				return err
			}
		}

	default:
		if len(p.Changes) != 0 {
			return errors.Errorf("%s proposal cannot carry param changes", p.Type)
		}
	}

	return nil
}
