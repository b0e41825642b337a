package membership

// HasFeatureAccess reports whether the tier may use the feature at all.
// Quota features always grant access, even with a zero allowance; callers
// that care about the allowance should use GetFeatureLimit.
// Unknown tiers and features fail closed.
func (t Table) HasFeatureAccess(tier Tier, feature Feature) bool {
	spec, ok := t.Spec(tier, feature)
	if !ok {
		return false
	}
	return spec.Enabled()
}

// GetFeatureLimit returns the allowance for the tier and feature.
// Enabled capabilities and unbounded quotas report Unlimited, disabled
// capabilities report 0. Unknown tiers and features report 0.
func (t Table) GetFeatureLimit(tier Tier, feature Feature) int64 {
	spec, ok := t.Spec(tier, feature)
	if !ok {
		return 0
	}
	return spec.Limit()
}

// GetRemainingUsage returns how many uses are left given current usage,
// or Unlimited.
func (t Table) GetRemainingUsage(tier Tier, feature Feature, current int64) int64 {
	limit := t.GetFeatureLimit(tier, feature)
	if limit == Unlimited {
		return Unlimited
	}
	return max(limit-current, 0)
}

// HasFeatureAccess answers against the default table.
func HasFeatureAccess(tier Tier, feature Feature) bool {
	return defaultTable.HasFeatureAccess(tier, feature)
}

// GetFeatureLimit answers against the default table.
func GetFeatureLimit(tier Tier, feature Feature) int64 {
	return defaultTable.GetFeatureLimit(tier, feature)
}

// GetRemainingUsage answers against the default table.
func GetRemainingUsage(tier Tier, feature Feature, current int64) int64 {
	return defaultTable.GetRemainingUsage(tier, feature, current)
}
