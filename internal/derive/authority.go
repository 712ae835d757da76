package derive

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TreasuryAuthority is the capability allowing a transfer out of exactly one
// pool treasury. It is rebuilt from the pool identity on every transfer and
// never persisted.
type TreasuryAuthority struct {
	Treasury string `json:"treasury"`
	Proof    string `json:"proof"`
}

func authorityProof(poolName string, treasuryBump uint8, treasury string) string {
	h := chainhash.TaggedHash(
		treasuryAuthorityTag,
		frameSeeds([]byte(poolName), []byte{treasuryBump}, []byte(treasury))...,
	)
	return hex.EncodeToString(h[:])
}

// NewTreasuryAuthority derives the capability for the treasury of the pool
// named poolName. The recorded treasury must match the one derived from the
// name, otherwise no capability is issued.
func NewTreasuryAuthority(poolName string, treasuryBump uint8, treasury string) (TreasuryAuthority, error) {
	expected := derive(treasuryTag, treasuryBump, []byte(poolName))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(treasury)) != 1 {
		return TreasuryAuthority{}, fmt.Errorf("treasury %s is not derived from pool %q", treasury, poolName)
	}

	return TreasuryAuthority{
		Treasury: treasury,
		Proof:    authorityProof(poolName, treasuryBump, treasury),
	}, nil
}

// Verify reports whether the capability was derived for the given pool.
func (a TreasuryAuthority) Verify(poolName string, treasuryBump uint8) bool {
	expected, err := NewTreasuryAuthority(poolName, treasuryBump, a.Treasury)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected.Proof), []byte(a.Proof)) == 1
}

// String hides the proof so the capability never ends up in logs
func (a TreasuryAuthority) String() string {
	return fmt.Sprintf("TreasuryAuthority{treasury: %s}", a.Treasury)
}
