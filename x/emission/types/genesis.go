package types

import (
	"cosmossdk.io/math"
	"github.com/pkg/errors"
)

type GenesisState struct {
	Params            Params          `json:"params"`
	LastHeight        uint64          `json:"last_height"`
	CirculatingSupply math.Int        `json:"circulating_supply"`
	Events            []EmissionEvent `json:"events,omitempty"`
}

func NewGenesisState(params Params, lastHeight uint64, supply math.Int, events []EmissionEvent) *GenesisState {
	return &GenesisState{
		Params:            params,
		LastHeight:        lastHeight,
		CirculatingSupply: supply,
		Events:            events,
	}
}

func DefaultGenesisState() *GenesisState {
	params := DefaultParams()
	return &GenesisState{
		Params:            params,
		LastHeight:        0,
		CirculatingSupply: params.InitialSupply,
	}
}

// ValidateGenesis performs basic validation of emission genesis data
func ValidateGenesis(data *GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}

	if data.CirculatingSupply.IsNil() || data.CirculatingSupply.IsNegative() {
		return errors.New("circulating supply must be non-negative")
	}

	for _, event := range data.Events {
		if event.Height > data.LastHeight {
			return errors.Errorf("event height %d beyond last applied height %d", event.Height, data.LastHeight)
		}
	}

	return nil
}
