// Package derive maps namespaced seeds to stable identifiers. Every id used by
// the engine can be recomputed by any caller from public inputs, no lookup
// directory is needed.
package derive

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// MaxPoolNameLength bounds the pool name in characters
	MaxPoolNameLength = 50

	// CanonicalBump is the bump seed recorded with every derived record
	CanonicalBump uint8 = 255
)

var (
	poolTag               = []byte("vesting/pool")
	treasuryTag           = []byte("vesting/treasury")
	grantTag              = []byte("vesting/grant")
	beneficiaryAccountTag = []byte("vesting/beneficiary-account")
	treasuryAuthorityTag  = []byte("vesting/treasury-authority")
)

// Address is a derived identifier together with the bump used to derive it
type Address struct {
	ID   string `json:"id"`
	Bump uint8  `json:"bump"`
}

// derive hashes the length prefixed seeds followed by the bump under tag.
// The prefix keeps ("ab", "c") and ("a", "bc") apart.
func derive(tag []byte, bump uint8, seeds ...[]byte) string {
	msgs := append(frameSeeds(seeds...), []byte{bump})
	h := chainhash.TaggedHash(tag, msgs...)
	return base58.Encode(h[:])
}

// frameSeeds prefixes every seed with its uvarint length so that no two
// seed lists hash the same
func frameSeeds(seeds ...[]byte) [][]byte {
	msgs := make([][]byte, 0, 2*len(seeds)+1)
	for _, seed := range seeds {
		msgs = append(msgs, binary.AppendUvarint(nil, uint64(len(seed))), seed)
	}
	return msgs
}

// ValidatePoolName checks the pool name constraints
func ValidatePoolName(name string) error {
	if name == "" {
		return fmt.Errorf("pool name is required")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("pool name must be valid utf-8")
	}
	if n := utf8.RuneCountInString(name); n > MaxPoolNameLength {
		return fmt.Errorf("pool name has %d characters, max is %d", n, MaxPoolNameLength)
	}
	return nil
}

// PoolAddress derives the pool id from its name
func PoolAddress(name string) Address {
	return Address{
		ID:   derive(poolTag, CanonicalBump, []byte(name)),
		Bump: CanonicalBump,
	}
}

// PoolID is a shortcut for PoolAddress(name).ID
func PoolID(name string) string {
	return PoolAddress(name).ID
}

// TreasuryAddress derives the custody account of a pool from the pool name
func TreasuryAddress(name string) Address {
	return Address{
		ID:   derive(treasuryTag, CanonicalBump, []byte(name)),
		Bump: CanonicalBump,
	}
}

// GrantAddress derives the grant id from beneficiary and pool id
func GrantAddress(beneficiary, poolID string) Address {
	return Address{
		ID:   derive(grantTag, CanonicalBump, []byte(beneficiary), []byte(poolID)),
		Bump: CanonicalBump,
	}
}

// GrantID is a shortcut for GrantAddress(beneficiary, poolID).ID
func GrantID(beneficiary, poolID string) string {
	return GrantAddress(beneficiary, poolID).ID
}

// BeneficiaryAccount derives the account that receives claimed units of
// asset for beneficiary.
func BeneficiaryAccount(beneficiary, asset string) string {
	return derive(beneficiaryAccountTag, CanonicalBump, []byte(beneficiary), []byte(asset))
}
