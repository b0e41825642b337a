package membership

import (
	"encoding/json"
	"slices"
	"strings"
)

// Feature names a gated capability or a consumable quota.
type Feature string

// Boolean capabilities.
const (
	FeatureAnalytics       Feature = "analytics"
	FeatureCalendar        Feature = "calendar"
	FeatureLiveEvents      Feature = "liveEvents"
	FeaturePrioritySupport Feature = "prioritySupport"
	FeatureCertificates    Feature = "certificates"
	FeaturePrivateCoaching Feature = "privateCoaching"
)

// Quota features, counted by the usage tracker.
const (
	FeatureResources Feature = "resources"
	FeatureDownloads Feature = "downloads"
	FeatureGoals     Feature = "goals"
)

// Unlimited is the limit reported for quotas without a ceiling (-1, as stored in SQL).
const Unlimited int64 = -1

// Features returns every known feature, capabilities first.
func Features() []Feature {
	return []Feature{
		FeatureAnalytics,
		FeatureCalendar,
		FeatureLiveEvents,
		FeaturePrioritySupport,
		FeatureCertificates,
		FeaturePrivateCoaching,
		FeatureResources,
		FeatureDownloads,
		FeatureGoals,
	}
}

// QuotaFeatures returns the features tracked as monthly or lifetime counters.
func QuotaFeatures() []Feature {
	return []Feature{FeatureResources, FeatureDownloads, FeatureGoals}
}

// ParseFeature trims s and reports whether it names a known feature.
// Feature names are case sensitive ("liveEvents").
func ParseFeature(s string) (Feature, bool) {
	f := Feature(strings.TrimSpace(s))
	return f, slices.Contains(Features(), f)
}

// SpecKind tells which variant a FeatureSpec holds.
type SpecKind uint8

const (
	KindCapability SpecKind = iota + 1
	KindQuota
)

// FeatureSpec is the per tier entry for a feature: either a boolean
// capability or a quota with an optional limit.
// The zero value is an invalid spec and grants nothing.
type FeatureSpec struct {
	kind      SpecKind
	enabled   bool
	limit     int64
	unlimited bool
}

// Capability returns a boolean feature spec.
func Capability(enabled bool) FeatureSpec {
	return FeatureSpec{kind: KindCapability, enabled: enabled}
}

// Quota returns a limited quota spec. Negative limits are clamped to zero;
// use UnlimitedQuota for quotas without a ceiling.
func Quota(limit int64) FeatureSpec {
	return FeatureSpec{kind: KindQuota, limit: max(limit, 0)}
}

// UnlimitedQuota returns a quota spec without a ceiling.
func UnlimitedQuota() FeatureSpec {
	return FeatureSpec{kind: KindQuota, unlimited: true}
}

func (s FeatureSpec) Kind() SpecKind { return s.kind }

func (s FeatureSpec) IsQuota() bool { return s.kind == KindQuota }

// Enabled reports whether the feature is accessible at all.
// Every quota counts as enabled, including a quota with limit 0.
func (s FeatureSpec) Enabled() bool {
	switch s.kind {
	case KindCapability:
		return s.enabled
	case KindQuota:
		return true
	default:
		return false
	}
}

// Unlimited reports whether the spec is an unbounded quota.
func (s FeatureSpec) Unlimited() bool {
	return s.kind == KindQuota && s.unlimited
}

// Limit returns the numeric allowance for the spec: Unlimited for enabled
// capabilities and unbounded quotas, 0 for disabled capabilities, and the
// stored limit otherwise.
func (s FeatureSpec) Limit() int64 {
	switch s.kind {
	case KindCapability:
		if s.enabled {
			return Unlimited
		}
		return 0
	case KindQuota:
		if s.unlimited {
			return Unlimited
		}
		return s.limit
	default:
		return 0
	}
}

// specView is the wire form: a bare bool for capabilities and an object for quotas.
type specView struct {
	Limit     *int64 `json:"limit" yaml:"limit"`
	Unlimited bool   `json:"unlimited" yaml:"unlimited"`
}

func (s FeatureSpec) view() any {
	if s.kind != KindQuota {
		return s.Enabled()
	}
	v := specView{Unlimited: s.unlimited}
	if !s.unlimited {
		limit := s.limit
		v.Limit = &limit
	}
	return v
}

// MarshalJSON renders capabilities as true/false and quotas as {"limit","unlimited"}.
func (s FeatureSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.view())
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (s FeatureSpec) MarshalYAML() (any, error) {
	return s.view(), nil
}
