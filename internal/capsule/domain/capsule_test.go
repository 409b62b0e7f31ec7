package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

func TestCapsuleIsMinted(t *testing.T) {
	tokenID := "nft-1"

	capsule := &Capsule{}
	assert.False(t, capsule.IsMinted())

	capsule.NFTTokenID = &tokenID
	assert.True(t, capsule.IsMinted())
}

func TestCertificationIsActive(t *testing.T) {
	now := time.Now().UTC()
	revokedAt := now.Add(-time.Hour)

	tests := []struct {
		name          string
		certification Certification
		expected      bool
	}{
		{
			name: "approved and unexpired",
			certification: Certification{
				Status:    CertificationStatusApproved,
				ExpiresAt: now.Add(time.Hour),
			},
			expected: true,
		},
		{
			name: "revoked status",
			certification: Certification{
				Status:    CertificationStatusRevoked,
				ExpiresAt: now.Add(time.Hour),
			},
			expected: false,
		},
		{
			name: "revoked timestamp set",
			certification: Certification{
				Status:    CertificationStatusApproved,
				ExpiresAt: now.Add(time.Hour),
				RevokedAt: &revokedAt,
			},
			expected: false,
		},
		{
			name: "expired",
			certification: Certification{
				Status:    CertificationStatusApproved,
				ExpiresAt: now.Add(-time.Minute),
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.certification.IsActive(now))
		})
	}
}

func TestMonthlyCapsuleQuota(t *testing.T) {
	tests := []struct {
		tier     identityDomain.Tier
		expected int64
	}{
		{identityDomain.TierExplorer, 5},
		{identityDomain.TierSeeker, 25},
		{identityDomain.TierCreator, 100},
		{identityDomain.TierSovereign, 500},
		{identityDomain.TierAdmin, QuotaUnlimited},
		{identityDomain.Tier(99), 5},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthlyCapsuleQuota(tt.tier))
		})
	}
}
