package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	t.Run("length honoured", func(t *testing.T) {
		p, err := Password(12)
		require.NoError(t, err)
		assert.Len(t, p, 12)
	})

	t.Run("alphabet only", func(t *testing.T) {
		p, err := Password(64)
		require.NoError(t, err)
		for _, c := range p {
			assert.True(t, strings.ContainsRune(passwordAlphabet, c), "unexpected character %q", c)
		}
	})

	t.Run("not repeating", func(t *testing.T) {
		a, err := Password(16)
		require.NoError(t, err)
		b, err := Password(16)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := Password(3)
		assert.Error(t, err)
	})
}

func TestToken(t *testing.T) {
	tok, err := Token(16)
	require.NoError(t, err)
	assert.Len(t, tok, 32)

	_, err = Token(0)
	assert.Error(t, err)
}
