package testutil

import (
	"testing"

	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomAlphaNum(t *testing.T) {
	_, err := RandomAlphaNum(0)
	require.Error(t, err)

	s, err := RandomAlphaNum(8)
	require.NoError(t, err)
	assert.Len(t, s, 8)
	for _, c := range s {
		assert.Contains(t, alphaNum, string(c))
	}
}

func TestRandomPoolName(t *testing.T) {
	for range 20 {
		require.NoError(t, derive.ValidatePoolName(RandomPoolName()))
	}
}
