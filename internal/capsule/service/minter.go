// Package service provides collaborators used by the capsule use cases.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/guardianchain/capsule-api/internal/errors"

	"github.com/google/uuid"
)

// MintResult carries the token identity produced by a mint.
type MintResult struct {
	TokenID string
	TxHash  string
}

// Minter produces NFT token ids and transaction hashes for capsules. The
// local implementation stands in for a chain integration.
type Minter interface {
	Mint(ctx context.Context, capsuleID uuid.UUID) (*MintResult, error)
}

type localMinter struct{}

// NewLocalMinter creates a minter that fabricates token ids and transaction
// hashes locally.
func NewLocalMinter() Minter {
	return &localMinter{}
}

// Mint generates a token id derived from the capsule id and a random
// transaction hash in the 0x-prefixed 32-byte format chains use.
func (m *localMinter) Mint(_ context.Context, capsuleID uuid.UUID) (*MintResult, error) {
	hash := make([]byte, 32)
	if _, err := rand.Read(hash); err != nil {
		return nil, errors.Wrap(err, "failed to generate transaction hash")
	}

	return &MintResult{
		TokenID: fmt.Sprintf("GCHAIN-%s", capsuleID.String()),
		TxHash:  "0x" + hex.EncodeToString(hash),
	}, nil
}
