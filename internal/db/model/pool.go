package model

const PoolCollection = "pools"

type PoolDocument struct {
	ID           string `bson:"_id"` // Primary key, derived from name
	Owner        string `bson:"owner"`
	Asset        string `bson:"asset"`
	Decimals     uint8  `bson:"decimals"`
	Treasury     string `bson:"treasury"`
	Name         string `bson:"name"`
	TreasuryBump uint8  `bson:"treasury_bump"`
	Bump         uint8  `bson:"bump"`
	CreatedAt    int64  `bson:"created_at"`
}
