package model

import "github.com/babylonlabs-io/vesting-engine/internal/vesting"

const GrantCollection = "grants"

type GrantDocument struct {
	ID             string `bson:"_id"` // Primary key, derived from beneficiary and pool id
	Beneficiary    string `bson:"beneficiary"`
	PoolID         string `bson:"pool_id"`
	StartTime      int64  `bson:"start_time"`
	EndTime        int64  `bson:"end_time"`
	CliffTime      int64  `bson:"cliff_time"`
	TotalAmount    uint64 `bson:"total_amount"`
	TotalWithdrawn uint64 `bson:"total_withdrawn"`
	Bump           uint8  `bson:"bump"`
	CreatedAt      int64  `bson:"created_at"`
	UpdatedAt      int64  `bson:"updated_at"`
}

func (g *GrantDocument) Schedule() vesting.Schedule {
	return vesting.Schedule{
		StartTime:   g.StartTime,
		EndTime:     g.EndTime,
		CliffTime:   g.CliffTime,
		TotalAmount: g.TotalAmount,
	}
}
