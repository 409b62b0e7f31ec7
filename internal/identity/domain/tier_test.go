package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierOrdering(t *testing.T) {
	assert.True(t, TierSeeker.AtLeast(TierExplorer))
	assert.True(t, TierSovereign.AtLeast(TierCreator))
	assert.True(t, TierCreator.AtLeast(TierCreator))
	assert.False(t, TierExplorer.AtLeast(TierSeeker))
	assert.False(t, TierCreator.AtLeast(TierSovereign))
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input    string
		expected Tier
	}{
		{"EXPLORER", TierExplorer},
		{"seeker", TierSeeker},
		{"Creator", TierCreator},
		{" SOVEREIGN ", TierSovereign},
		{"admin", TierAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tier, err := ParseTier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tier)
		})
	}

	_, err := ParseTier("PLATINUM")
	assert.Error(t, err)
	_, err = ParseTier("")
	assert.Error(t, err)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "EXPLORER", TierExplorer.String())
	assert.Equal(t, "SOVEREIGN", TierSovereign.String())
	assert.Equal(t, "UNKNOWN(42)", Tier(42).String())
}

func TestTierIsValid(t *testing.T) {
	assert.True(t, TierExplorer.IsValid())
	assert.True(t, TierAdmin.IsValid())
	assert.False(t, Tier(0).IsValid())
	assert.False(t, Tier(99).IsValid())
}

func TestUserMeetsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected bool
	}{
		{"admin role with low tier", User{Tier: TierExplorer, Role: RoleAdmin}, true},
		{"sovereign tier with user role", User{Tier: TierSovereign, Role: RoleUser}, true},
		{"admin tier with user role", User{Tier: TierAdmin, Role: RoleUser}, true},
		{"creator tier with user role", User{Tier: TierCreator, Role: RoleUser}, false},
		{"explorer tier with user role", User{Tier: TierExplorer, Role: RoleUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.MeetsAdmin())
		})
	}
}

func TestUserIsSovereign(t *testing.T) {
	assert.True(t, (&User{Tier: TierSovereign}).IsSovereign())
	assert.False(t, (&User{Tier: TierAdmin}).IsSovereign())
	assert.False(t, (&User{Tier: TierCreator, Role: RoleAdmin}).IsSovereign())
}
