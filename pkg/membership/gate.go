package membership

import "fmt"

// defaultRequiredTiers is the minimum tier shown in upgrade prompts when the
// caller does not name one explicitly.
var defaultRequiredTiers = map[Feature]Tier{
	FeatureAnalytics:       TierPremium,
	FeatureCalendar:        TierPremium,
	FeatureLiveEvents:      TierPremium,
	FeaturePrioritySupport: TierPremium,
	FeatureCertificates:    TierPremium,
	FeaturePrivateCoaching: TierUltimate,
}

// Decision is the outcome of an access gate check.
// When Allowed is false, CurrentTier, RequiredTier and Upgrade describe the
// prompt a presentation layer should render.
type Decision struct {
	Allowed      bool    `json:"allowed"`
	Feature      Feature `json:"feature,omitempty"`
	CurrentTier  Tier    `json:"current_tier"`
	RequiredTier Tier    `json:"required_tier,omitempty"`
	Upgrade      string  `json:"upgrade,omitempty"`
}

// MeetsRequirement applies the ordinal tier rule: a Basic requirement always
// passes, Premium needs Premium or Ultimate, Ultimate needs Ultimate.
// Unknown required tiers fail closed. An unknown user tier only meets a Basic
// requirement; it is not treated as "anything but Basic" for Premium.
func MeetsRequirement(tier, required Tier) bool {
	switch required {
	case TierBasic:
		return true
	case TierPremium, TierUltimate:
		return tier.AtLeast(required)
	default:
		return false
	}
}

// DefaultRequiredTier returns the minimum tier advertised for a feature.
// Features without an entry default to Premium.
func DefaultRequiredTier(feature Feature) Tier {
	if tier, ok := defaultRequiredTiers[feature]; ok {
		return tier
	}
	return TierPremium
}

// Gate decides access using the capability table first and, when required
// is non-empty, the ordinal tier comparison as an override.
// Either rule granting access is enough. An empty feature skips the table.
func (t Table) Gate(tier, required Tier, feature Feature) Decision {
	allowed := feature != "" && t.HasFeatureAccess(tier, feature)
	if !allowed && required != "" {
		allowed = MeetsRequirement(tier, required)
	}

	d := Decision{
		Allowed:     allowed,
		Feature:     feature,
		CurrentTier: tier,
	}
	if allowed {
		return d
	}

	d.RequiredTier = required
	if d.RequiredTier == "" {
		d.RequiredTier = DefaultRequiredTier(feature)
	}
	d.Upgrade = fmt.Sprintf("Upgrade to %s to unlock this feature", DisplayName(d.RequiredTier))
	return d
}

// Gate decides access against the default table.
func Gate(tier, required Tier, feature Feature) Decision {
	return defaultTable.Gate(tier, required, feature)
}
