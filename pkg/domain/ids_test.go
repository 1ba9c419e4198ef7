package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "inu/pkg/domain-errors"
)

// TestParseAccountID_Invariants validates the parsing invariant:
// "account ids are non-empty, trimmed, UTF-8 and bounded"
func TestParseAccountID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAccountID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects surrounding whitespace", func(t *testing.T) {
		_, err := ParseAccountID(" alice ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects oversized ids", func(t *testing.T) {
		_, err := ParseAccountID(strings.Repeat("a", MaxAccountIDLength+1))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts address-like ids", func(t *testing.T) {
		account, err := ParseAccountID("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
		require.NoError(t, err)
		assert.Equal(t, AccountID("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), account)
		assert.False(t, account.IsZero())
	})
}

func TestZeroAccount(t *testing.T) {
	assert.True(t, ZeroAccount.IsZero())
	assert.Equal(t, "", ZeroAccount.String())
}
