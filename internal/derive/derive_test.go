package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAddress(t *testing.T) {
	a := PoolAddress("acme")
	b := PoolAddress("acme")
	assert.Equal(t, a, b)
	assert.Equal(t, CanonicalBump, a.Bump)
	assert.NotEmpty(t, a.ID)

	assert.NotEqual(t, PoolID("acme"), PoolID("acme2"))
	// same seed under a different namespace never collides
	assert.NotEqual(t, PoolID("acme"), TreasuryAddress("acme").ID)
}

func TestGrantAddress(t *testing.T) {
	poolID := PoolID("acme")

	assert.Equal(t, GrantID("alice", poolID), GrantID("alice", poolID))
	assert.NotEqual(t, GrantID("alice", poolID), GrantID("bob", poolID))
	assert.NotEqual(t, GrantID("alice", poolID), GrantID("alice", PoolID("other")))
	// moving bytes between seeds changes the id
	assert.NotEqual(t, GrantID("ab", "c"), GrantID("a", "bc"))
}

func TestValidatePoolName(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		require.Error(t, ValidatePoolName(""))
	})
	t.Run("max length", func(t *testing.T) {
		require.NoError(t, ValidatePoolName(strings.Repeat("a", MaxPoolNameLength)))
		require.Error(t, ValidatePoolName(strings.Repeat("a", MaxPoolNameLength+1)))
	})
	t.Run("multibyte characters are counted once", func(t *testing.T) {
		require.NoError(t, ValidatePoolName(strings.Repeat("é", MaxPoolNameLength)))
	})
	t.Run("invalid utf8", func(t *testing.T) {
		require.Error(t, ValidatePoolName(string([]byte{0xff, 0xfe})))
	})
}

func TestTreasuryAuthority(t *testing.T) {
	treasury := TreasuryAddress("acme")

	auth, err := NewTreasuryAuthority("acme", treasury.Bump, treasury.ID)
	require.NoError(t, err)
	assert.Equal(t, treasury.ID, auth.Treasury)
	assert.True(t, auth.Verify("acme", treasury.Bump))

	// recomputed identically on every call
	again, err := NewTreasuryAuthority("acme", treasury.Bump, treasury.ID)
	require.NoError(t, err)
	assert.Equal(t, auth, again)

	t.Run("scoped to its own pool", func(t *testing.T) {
		assert.False(t, auth.Verify("other", treasury.Bump))
		assert.False(t, auth.Verify("acme", treasury.Bump-1))

		forged := auth
		forged.Treasury = TreasuryAddress("other").ID
		assert.False(t, forged.Verify("acme", treasury.Bump))
	})
	t.Run("foreign treasury", func(t *testing.T) {
		_, err := NewTreasuryAuthority("acme", treasury.Bump, TreasuryAddress("other").ID)
		require.Error(t, err)
	})
	t.Run("proof is not printed", func(t *testing.T) {
		assert.NotContains(t, auth.String(), auth.Proof)
	})
	t.Run("proof inputs are framed", func(t *testing.T) {
		// both concatenate to "a\x01\x01x"
		assert.NotEqual(t, authorityProof("a\x01", 1, "x"), authorityProof("a", 1, "\x01x"))
	})
}

func TestBeneficiaryAccount(t *testing.T) {
	assert.Equal(t, BeneficiaryAccount("alice", "usdc"), BeneficiaryAccount("alice", "usdc"))
	assert.NotEqual(t, BeneficiaryAccount("alice", "usdc"), BeneficiaryAccount("alice", "eth"))
}
