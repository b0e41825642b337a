// Package membership holds the tier and feature table of the coaching portal
// and the pure queries answered from it.
//
// Three tiers exist, ordered Basic < Premium < Ultimate. Every feature in the
// table is either a boolean capability (analytics, calendar, liveEvents,
// prioritySupport, certificates, privateCoaching) or a quota (resources,
// downloads, goals) with a numeric limit or no ceiling at all.
//
// Nothing in this package returns an error. Unknown tiers, features and
// content classifications fail closed: false, 0, "Unknown" or "gray".
//
// Basic usage:
//
//	if membership.HasFeatureAccess(tier, membership.FeatureAnalytics) {
//	    // render analytics
//	}
//
//	limit := membership.GetFeatureLimit(tier, membership.FeatureResources)
//	if limit == membership.Unlimited {
//	    // no counter needed
//	}
//
//	if !membership.CanAccessCourse(tier, "ultimate-exclusive") {
//	    d := membership.Gate(tier, membership.TierUltimate, "")
//	    // render d.Upgrade
//	}
//
// A quota with limit 0 still reports HasFeatureAccess == true: access is
// granted, the allowance is empty. The two gate rules (capability table and
// explicit required tier) are evaluated independently and either one grants
// access.
package membership
