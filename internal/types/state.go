package types

// Enum values for Grant State
type GrantState string

const (
	StateCreated      GrantState = "CREATED"
	StatePendingCliff GrantState = "PENDING_CLIFF"
	StateVesting      GrantState = "VESTING"
	StateFullyVested  GrantState = "FULLY_VESTED"
	// StateExhausted is reached once the whole grant has been withdrawn,
	// every further claim fails with NothingToClaim
	StateExhausted GrantState = "EXHAUSTED"
)

func (s GrantState) String() string {
	return string(s)
}

// IsTerminal returns true if no more funds can ever leave the grant
func (s GrantState) IsTerminal() bool {
	return s == StateExhausted
}
