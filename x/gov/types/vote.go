package types

import (
	"time"

	"cosmossdk.io/math"
)

// VoteOption is a ballot choice.
type VoteOption string

const (
	OptionYes        VoteOption = "yes"
	OptionNo         VoteOption = "no"
	OptionAbstain    VoteOption = "abstain"
	OptionNoWithVeto VoteOption = "no_with_veto"
)

// Ballot is one voter's recorded vote. RawPower is the bonded stake at vote
// time; TransformedPower is the tally strategy's weighting of it, filled in
// when the proposal is tallied.
type Ballot struct {
	ProposalID uint64     `json:"proposal_id"`
	Voter      []byte     `json:"voter"`
	Option     VoteOption `json:"option"`

	RawPower         math.Int `json:"raw_power"`
	TransformedPower math.Int `json:"transformed_power"`

	Height    uint64    `json:"height"`
	Timestamp time.Time `json:"timestamp"`
}
