// Package domain contains the core business entities for time capsules.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Capsule represents a time capsule that can be minted as an NFT and
// certified by the DAO.
type Capsule struct {
	ID         uuid.UUID  `json:"id"`
	Author     string     `json:"author"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	NFTTokenID *string    `json:"nft_token_id"`
	NFTTxHash  *string    `json:"nft_tx_hash"`
	MintedAt   *time.Time `json:"minted_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsMinted reports whether the capsule has already been minted.
func (c *Capsule) IsMinted() bool {
	return c.NFTTokenID != nil
}

// CreateCapsuleInput represents the input for creating a new capsule.
type CreateCapsuleInput struct {
	Author  string
	Title   string
	Content string
}
