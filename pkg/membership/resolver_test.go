package membership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

func TestHasFeatureAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tier    membership.Tier
		feature membership.Feature
		want    bool
	}{
		{"basic analytics", membership.TierBasic, membership.FeatureAnalytics, false},
		{"basic resources quota", membership.TierBasic, membership.FeatureResources, true},
		{"premium analytics", membership.TierPremium, membership.FeatureAnalytics, true},
		{"premium calendar", membership.TierPremium, membership.FeatureCalendar, true},
		{"premium live events", membership.TierPremium, membership.FeatureLiveEvents, true},
		{"premium priority support", membership.TierPremium, membership.FeaturePrioritySupport, true},
		{"premium certificates", membership.TierPremium, membership.FeatureCertificates, true},
		{"premium private coaching", membership.TierPremium, membership.FeaturePrivateCoaching, false},
		{"ultimate private coaching", membership.TierUltimate, membership.FeaturePrivateCoaching, true},
		{"unknown tier", membership.Tier("nonexistent-tier"), membership.FeatureAnalytics, false},
		{"unknown feature", membership.TierUltimate, membership.Feature("teleport"), false},
		{"empty tier", membership.Tier(""), membership.FeatureResources, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, membership.HasFeatureAccess(tt.tier, tt.feature))
		})
	}
}

func TestHasFeatureAccess_ZeroQuotaStillGrantsAccess(t *testing.T) {
	t.Parallel()

	table := membership.Table{
		membership.TierBasic: {
			membership.FeatureDownloads: membership.Quota(0),
		},
	}

	assert.True(t, table.HasFeatureAccess(membership.TierBasic, membership.FeatureDownloads))
	assert.Equal(t, int64(0), table.GetFeatureLimit(membership.TierBasic, membership.FeatureDownloads))
	assert.Equal(t, int64(0), table.GetRemainingUsage(membership.TierBasic, membership.FeatureDownloads, 0))
}

func TestGetFeatureLimit(t *testing.T) {
	t.Parallel()

	t.Run("basic quotas", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(5), membership.GetFeatureLimit(membership.TierBasic, membership.FeatureResources))
		assert.Equal(t, int64(10), membership.GetFeatureLimit(membership.TierBasic, membership.FeatureDownloads))
		assert.Equal(t, int64(3), membership.GetFeatureLimit(membership.TierBasic, membership.FeatureGoals))
	})

	t.Run("paid tiers have unlimited quotas", func(t *testing.T) {
		t.Parallel()
		for _, tier := range []membership.Tier{membership.TierPremium, membership.TierUltimate} {
			for _, f := range membership.QuotaFeatures() {
				assert.Equal(t, membership.Unlimited, membership.GetFeatureLimit(tier, f), "%s/%s", tier, f)
			}
		}
	})

	t.Run("capabilities map to unlimited or zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, membership.Unlimited, membership.GetFeatureLimit(membership.TierPremium, membership.FeatureAnalytics))
		assert.Equal(t, int64(0), membership.GetFeatureLimit(membership.TierBasic, membership.FeatureAnalytics))
	})

	t.Run("unknown input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(0), membership.GetFeatureLimit(membership.TierBasic, membership.Feature("nonexistent-feature")))
		assert.Equal(t, int64(0), membership.GetFeatureLimit(membership.Tier("gold"), membership.FeatureResources))
	})
}

func TestGetRemainingUsage(t *testing.T) {
	t.Parallel()

	t.Run("limited quota", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(5), membership.GetRemainingUsage(membership.TierBasic, membership.FeatureResources, 0))
		assert.Equal(t, int64(2), membership.GetRemainingUsage(membership.TierBasic, membership.FeatureResources, 3))
		assert.Equal(t, int64(0), membership.GetRemainingUsage(membership.TierBasic, membership.FeatureResources, 5))
	})

	t.Run("overflow clamps to zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(0), membership.GetRemainingUsage(membership.TierBasic, membership.FeatureGoals, 42))
	})

	t.Run("unlimited ignores usage", func(t *testing.T) {
		t.Parallel()
		for _, used := range []int64{0, 1, 1000, 1 << 40} {
			assert.Equal(t, membership.Unlimited, membership.GetRemainingUsage(membership.TierPremium, membership.FeatureDownloads, used))
		}
	})
}

func TestDefaultTable_IsCopy(t *testing.T) {
	t.Parallel()

	table := membership.DefaultTable()
	table[membership.TierBasic][membership.FeatureResources] = membership.UnlimitedQuota()

	assert.Equal(t, int64(5), membership.GetFeatureLimit(membership.TierBasic, membership.FeatureResources))
	assert.Equal(t, membership.Unlimited, table.GetFeatureLimit(membership.TierBasic, membership.FeatureResources))
}

func TestParseFeature(t *testing.T) {
	t.Parallel()

	f, ok := membership.ParseFeature(" liveEvents ")
	assert.True(t, ok)
	assert.Equal(t, membership.FeatureLiveEvents, f)

	_, ok = membership.ParseFeature("liveevents")
	assert.False(t, ok, "feature names are case sensitive")

	_, ok = membership.ParseFeature("")
	assert.False(t, ok)
}
