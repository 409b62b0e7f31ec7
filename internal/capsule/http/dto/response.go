package dto

import (
	"time"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
)

// CapsuleResponse represents a capsule in HTTP responses.
type CapsuleResponse struct {
	ID         string     `json:"id"`
	Author     string     `json:"author"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Minted     bool       `json:"minted"`
	NFTTokenID *string    `json:"nft_token_id,omitempty"`
	NFTTxHash  *string    `json:"nft_tx_hash,omitempty"`
	MintedAt   *time.Time `json:"minted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MapCapsuleToResponse converts a domain Capsule to its response form.
func MapCapsuleToResponse(capsule *capsuleDomain.Capsule) CapsuleResponse {
	return CapsuleResponse{
		ID:         capsule.ID.String(),
		Author:     capsule.Author,
		Title:      capsule.Title,
		Content:    capsule.Content,
		Minted:     capsule.IsMinted(),
		NFTTokenID: capsule.NFTTokenID,
		NFTTxHash:  capsule.NFTTxHash,
		MintedAt:   capsule.MintedAt,
		CreatedAt:  capsule.CreatedAt,
		UpdatedAt:  capsule.UpdatedAt,
	}
}

// MintResponse represents the result of a successful mint.
type MintResponse struct {
	CapsuleID  string    `json:"capsule_id"`
	NFTTokenID string    `json:"nft_token_id"`
	NFTTxHash  string    `json:"nft_tx_hash"`
	MintedAt   time.Time `json:"minted_at"`
}

// MapMintOutputToResponse converts a mint output to its response form.
func MapMintOutputToResponse(output *capsuleUseCase.MintOutput) MintResponse {
	return MintResponse{
		CapsuleID:  output.CapsuleID.String(),
		NFTTokenID: output.NFTTokenID,
		NFTTxHash:  output.NFTTxHash,
		MintedAt:   output.MintedAt,
	}
}

// MintLogResponse represents a single mint attempt in HTTP responses.
type MintLogResponse struct {
	ID           string    `json:"id"`
	CapsuleID    string    `json:"capsule_id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"`
	TxHash       *string   `json:"tx_hash,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MapMintLogToResponse converts a domain MintLog to its response form.
func MapMintLogToResponse(mintLog *capsuleDomain.MintLog) MintLogResponse {
	return MintLogResponse{
		ID:           mintLog.ID.String(),
		CapsuleID:    mintLog.CapsuleID.String(),
		UserID:       mintLog.UserID.String(),
		Status:       string(mintLog.Status),
		TxHash:       mintLog.TxHash,
		ErrorMessage: mintLog.ErrorMessage,
		CreatedAt:    mintLog.CreatedAt,
	}
}

// ListMintLogsResponse represents a paginated list of mint attempts.
type ListMintLogsResponse struct {
	Data []MintLogResponse `json:"data"`
}

// MapMintLogsToListResponse converts a slice of domain mint logs to a list response.
func MapMintLogsToListResponse(mintLogs []*capsuleDomain.MintLog) ListMintLogsResponse {
	responses := make([]MintLogResponse, 0, len(mintLogs))
	for _, mintLog := range mintLogs {
		responses = append(responses, MapMintLogToResponse(mintLog))
	}
	return ListMintLogsResponse{
		Data: responses,
	}
}

// CertificationResponse represents a certification in HTTP responses.
type CertificationResponse struct {
	ID           string     `json:"id"`
	CapsuleID    string     `json:"capsule_id"`
	CertifierID  string     `json:"certifier_id"`
	Status       string     `json:"status"`
	VotesFor     int        `json:"votes_for"`
	VotesAgainst int        `json:"votes_against"`
	CertifiedAt  time.Time  `json:"certified_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
}

// MapCertificationToResponse converts a domain Certification to its response form.
func MapCertificationToResponse(certification *capsuleDomain.Certification) CertificationResponse {
	return CertificationResponse{
		ID:           certification.ID.String(),
		CapsuleID:    certification.CapsuleID.String(),
		CertifierID:  certification.CertifierID.String(),
		Status:       string(certification.Status),
		VotesFor:     certification.VotesFor,
		VotesAgainst: certification.VotesAgainst,
		CertifiedAt:  certification.CertifiedAt,
		ExpiresAt:    certification.ExpiresAt,
		RevokedAt:    certification.RevokedAt,
	}
}

// StatusResponse represents the mint and certification state of a capsule.
type StatusResponse struct {
	CapsuleID     string                 `json:"capsule_id"`
	Minted        bool                   `json:"minted"`
	NFTTokenID    *string                `json:"nft_token_id,omitempty"`
	NFTTxHash     *string                `json:"nft_tx_hash,omitempty"`
	MintedAt      *time.Time             `json:"minted_at,omitempty"`
	Certified     bool                   `json:"certified"`
	Certification *CertificationResponse `json:"certification,omitempty"`
}

// MapStatusOutputToResponse converts a status output to its response form.
func MapStatusOutputToResponse(output *capsuleUseCase.StatusOutput) StatusResponse {
	response := StatusResponse{
		CapsuleID:  output.Capsule.ID.String(),
		Minted:     output.Capsule.IsMinted(),
		NFTTokenID: output.Capsule.NFTTokenID,
		NFTTxHash:  output.Capsule.NFTTxHash,
		MintedAt:   output.Capsule.MintedAt,
	}
	if output.Certification != nil {
		certification := MapCertificationToResponse(output.Certification)
		response.Certified = true
		response.Certification = &certification
	}
	return response
}
