package types

import (
	"github.com/pkg/errors"
)

// DefaultStartingProposalID is the id of the first proposal.
const DefaultStartingProposalID uint64 = 1

type GenesisState struct {
	Params             Params     `json:"params"`
	StartingProposalID uint64     `json:"starting_proposal_id"`
	Proposals          []Proposal `json:"proposals,omitempty"`
	Ballots            []Ballot   `json:"ballots,omitempty"`
}

func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params:             DefaultParams(),
		StartingProposalID: DefaultStartingProposalID,
	}
}

// ValidateGenesis performs basic validation of governance genesis data
func ValidateGenesis(data *GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}

	proposals := make(map[uint64]bool, len(data.Proposals))
	for _, prop := range data.Proposals {
		if err := prop.ValidateBasic(); err != nil {
			return errors.Wrapf(err, "proposal %d", prop.ID)
		}

		if proposals[prop.ID] {
			return errors.Errorf("duplicate proposal id %d", prop.ID)
		}
		proposals[prop.ID] = true

		if prop.ID >= data.StartingProposalID {
			return errors.Errorf("proposal id %d not below starting id %d", prop.ID, data.StartingProposalID)
		}
	}

	for _, ballot := range data.Ballots {
		if !proposals[ballot.ProposalID] {
			return errors.Errorf("ballot for unknown proposal %d", ballot.ProposalID)
		}
	}

	return nil
}
