package membership

// Content classifications used by the content gate.
const (
	ContentFree              = "free"
	ContentGeneral           = "general"
	ContentStandard          = "standard"
	ContentUltimateExclusive = "ultimate-exclusive"
)

// CanAccessResource reports whether the tier may open a resource of the
// given classification. An empty classification means "general".
func CanAccessResource(tier Tier, resourceType string) bool {
	if resourceType == "" {
		resourceType = ContentGeneral
	}
	return canAccessContent(tier, resourceType)
}

// CanAccessCourse reports whether the tier may open a course of the given
// classification. An empty classification means "free".
func CanAccessCourse(tier Tier, courseType string) bool {
	if courseType == "" {
		courseType = ContentFree
	}
	return canAccessContent(tier, courseType)
}

func canAccessContent(tier Tier, contentType string) bool {
	switch tier {
	case TierUltimate:
		return true
	case TierPremium:
		return contentType != ContentUltimateExclusive
	case TierBasic:
		return contentType == ContentFree
	default:
		return false
	}
}
