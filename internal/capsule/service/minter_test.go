package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMinterMint(t *testing.T) {
	minter := NewLocalMinter()
	capsuleID := uuid.Must(uuid.NewV7())

	result, err := minter.Mint(context.Background(), capsuleID)
	require.NoError(t, err)

	assert.Equal(t, "GCHAIN-"+capsuleID.String(), result.TokenID)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", result.TxHash)

	second, err := minter.Mint(context.Background(), capsuleID)
	require.NoError(t, err)
	assert.NotEqual(t, result.TxHash, second.TxHash)
}
