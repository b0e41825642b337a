package membership

import "maps"

// Table maps each tier to its feature specs.
// Tables are treated as immutable once built; lookups never mutate them.
type Table map[Tier]map[Feature]FeatureSpec

var defaultTable = Table{
	TierBasic: {
		FeatureResources:       Quota(5),
		FeatureDownloads:       Quota(10),
		FeatureGoals:           Quota(3),
		FeatureAnalytics:       Capability(false),
		FeatureCalendar:        Capability(false),
		FeatureLiveEvents:      Capability(false),
		FeaturePrioritySupport: Capability(false),
		FeatureCertificates:    Capability(false),
		FeaturePrivateCoaching: Capability(false),
	},
	TierPremium: {
		FeatureResources:       UnlimitedQuota(),
		FeatureDownloads:       UnlimitedQuota(),
		FeatureGoals:           UnlimitedQuota(),
		FeatureAnalytics:       Capability(true),
		FeatureCalendar:        Capability(true),
		FeatureLiveEvents:      Capability(true),
		FeaturePrioritySupport: Capability(true),
		FeatureCertificates:    Capability(true),
		FeaturePrivateCoaching: Capability(false),
	},
	TierUltimate: {
		FeatureResources:       UnlimitedQuota(),
		FeatureDownloads:       UnlimitedQuota(),
		FeatureGoals:           UnlimitedQuota(),
		FeatureAnalytics:       Capability(true),
		FeatureCalendar:        Capability(true),
		FeatureLiveEvents:      Capability(true),
		FeaturePrioritySupport: Capability(true),
		FeatureCertificates:    Capability(true),
		FeaturePrivateCoaching: Capability(true),
	},
}

// DefaultTable returns a copy of the compiled-in tier table.
func DefaultTable() Table {
	return defaultTable.Clone()
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for tier, specs := range t {
		out[tier] = maps.Clone(specs)
	}
	return out
}

// Spec looks up the spec for a tier and feature.
func (t Table) Spec(tier Tier, feature Feature) (FeatureSpec, bool) {
	specs, ok := t[tier]
	if !ok {
		return FeatureSpec{}, false
	}
	spec, ok := specs[feature]
	return spec, ok
}
