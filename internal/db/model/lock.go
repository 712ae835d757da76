package model

import "time"

const GrantClaimLockCollection = "grant_claim_locks"

// GrantClaimLockDocument is a lease held by the single claim in flight for a grant
type GrantClaimLockDocument struct {
	GrantID   string    `bson:"_id"` // Primary key
	Holder    string    `bson:"holder"`
	ExpiresAt time.Time `bson:"expires_at"`
}
