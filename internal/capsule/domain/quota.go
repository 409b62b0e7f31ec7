package domain

import (
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// QuotaUnlimited disables the monthly capsule quota for a tier.
const QuotaUnlimited int64 = -1

// monthlyQuotas maps each membership tier to the number of capsules a member
// may create per calendar month. These match the published subscription plan
// limits.
var monthlyQuotas = map[identityDomain.Tier]int64{
	identityDomain.TierExplorer:  5,
	identityDomain.TierSeeker:    25,
	identityDomain.TierCreator:   100,
	identityDomain.TierSovereign: 500,
	identityDomain.TierAdmin:     QuotaUnlimited,
}

// MonthlyCapsuleQuota returns the number of capsules a member of the tier may
// create per calendar month, or QuotaUnlimited. Unknown tiers fall back to
// the EXPLORER quota.
func MonthlyCapsuleQuota(tier identityDomain.Tier) int64 {
	if quota, ok := monthlyQuotas[tier]; ok {
		return quota
	}
	return monthlyQuotas[identityDomain.TierExplorer]
}
