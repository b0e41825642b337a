package membership

import (
	"strings"

	"golang.org/x/text/cases"
)

// Tier is a membership level assigned to a member by an external source of truth.
type Tier string

// Supported tiers, ordered Basic < Premium < Ultimate.
const (
	TierBasic    Tier = "basic"
	TierPremium  Tier = "premium"
	TierUltimate Tier = "ultimate"
)

var tierRanks = map[Tier]int{
	TierBasic:    1,
	TierPremium:  2,
	TierUltimate: 3,
}

var displayNames = map[Tier]string{
	TierBasic:    "Basic",
	TierPremium:  "Premium",
	TierUltimate: "Ultimate",
}

var badgeColors = map[Tier]string{
	TierBasic:    "blue",
	TierPremium:  "purple",
	TierUltimate: "yellow",
}

const (
	unknownDisplayName = "Unknown"
	unknownBadgeColor  = "gray"
)

// Tiers returns all known tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierBasic, TierPremium, TierUltimate}
}

// ParseTier normalizes s into a Tier. Input is trimmed and case folded, so
// "Premium" and " PREMIUM " both resolve to TierPremium. Unrecognized values
// are returned as-is and report false; every resolver fails closed on them.
func ParseTier(s string) (Tier, bool) {
	t := Tier(cases.Fold().String(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// Rank returns the ordinal position of t (1 for Basic). Unknown tiers rank 0.
func (t Tier) Rank() int {
	return tierRanks[t]
}

// AtLeast reports whether t is a known tier ranked at or above other.
func (t Tier) AtLeast(other Tier) bool {
	return t.Valid() && other.Valid() && t.Rank() >= other.Rank()
}

func (t Tier) String() string {
	return string(t)
}

// DisplayName returns the human readable name of the tier, or "Unknown".
func DisplayName(t Tier) string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return unknownDisplayName
}

// BadgeColor returns the color token used to render the tier badge, or "gray".
func BadgeColor(t Tier) string {
	if color, ok := badgeColors[t]; ok {
		return color
	}
	return unknownBadgeColor
}
