package domain

import (
	"time"

	"github.com/google/uuid"
)

// MintLogStatus is the outcome recorded for a mint attempt.
type MintLogStatus string

const (
	MintLogStatusSuccess MintLogStatus = "success"
	MintLogStatusFailed  MintLogStatus = "failed"
)

// MintLog is an append-only record of a mint attempt. Successful attempts
// carry the transaction hash, failed ones the error message.
type MintLog struct {
	ID           uuid.UUID     `json:"id"`
	CapsuleID    uuid.UUID     `json:"capsule_id"`
	UserID       uuid.UUID     `json:"user_id"`
	Status       MintLogStatus `json:"status"`
	TxHash       *string       `json:"tx_hash"`
	ErrorMessage *string       `json:"error_message"`
	CreatedAt    time.Time     `json:"created_at"`
}
