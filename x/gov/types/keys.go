package types

const (
	// ModuleName is the name of the governance module
	ModuleName = "gov"

	// StoreKey is the string store representation
	StoreKey = ModuleName
)

var (
	ParamsKey         = []byte{0x01} // key for governance params
	NextProposalIDKey = []byte{0x02} // key for the proposal id sequence

	ProposalsPrefix            = []byte{0x11} // prefix for proposals by id
	ActiveProposalsQueuePrefix = []byte{0x12} // prefix for the voting end queue by (end time, id)
	ExecutionQueuePrefix       = []byte{0x13} // prefix for the timelock queue by (execution time, id)
	BallotsPrefix              = []byte{0x21} // prefix for ballots by (proposal id, voter)
	DepositsPrefix             = []byte{0x31} // prefix for deposits by (proposal id, depositor)
)
