// Package domain defines identity domain models and authorization rules.
//
// Users carry an ordered membership tier plus an orthogonal role flag. Route
// guards compare tiers with a single ordered comparison instead of string
// equality chains.
package domain

import (
	"fmt"
	"strings"
)

// Tier is an ordered membership level. Higher values grant broader access.
type Tier int

// Membership tiers in ascending order.
const (
	TierExplorer Tier = iota + 1
	TierSeeker
	TierCreator
	TierSovereign
	TierAdmin
)

// tierNames maps tiers to their canonical wire names.
var tierNames = map[Tier]string{
	TierExplorer:  "EXPLORER",
	TierSeeker:    "SEEKER",
	TierCreator:   "CREATOR",
	TierSovereign: "SOVEREIGN",
	TierAdmin:     "ADMIN",
}

// String returns the canonical name of the tier.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	_, ok := tierNames[t]
	return ok
}

// AtLeast reports whether t meets the given minimum tier.
func (t Tier) AtLeast(minimum Tier) bool {
	return t >= minimum
}

// ParseTier converts a tier name to a Tier. Matching is case-insensitive.
func ParseTier(name string) (Tier, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for tier, tierName := range tierNames {
		if tierName == upper {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", name)
}

// TierNames returns the canonical tier names in ascending order.
func TierNames() []string {
	return []string{
		TierExplorer.String(),
		TierSeeker.String(),
		TierCreator.String(),
		TierSovereign.String(),
		TierAdmin.String(),
	}
}

// Role is an access role orthogonal to the membership tier.
type Role string

// Roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}
