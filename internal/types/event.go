package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventPoolCreated  EventType = "vesting.v1.EventPoolCreated"
	EventGrantCreated EventType = "vesting.v1.EventGrantCreated"
	EventGrantClaimed EventType = "vesting.v1.EventGrantClaimed"
)

// Event is the message emitted to the queue after a successful mutation
type Event struct {
	Type           EventType `json:"event_type"`
	PoolID         string    `json:"pool_id"`
	GrantID        string    `json:"grant_id,omitempty"`
	Owner          string    `json:"owner,omitempty"`
	Beneficiary    string    `json:"beneficiary,omitempty"`
	Asset          string    `json:"asset,omitempty"`
	Amount         uint64    `json:"amount,omitempty"`
	TotalWithdrawn uint64    `json:"total_withdrawn,omitempty"`
	TransferID     string    `json:"transfer_id,omitempty"`
	Timestamp      int64     `json:"timestamp"`
}
