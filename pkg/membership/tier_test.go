package membership_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		want  membership.Tier
		valid bool
	}{
		{"basic", membership.TierBasic, true},
		{"Premium", membership.TierPremium, true},
		{"  ULTIMATE ", membership.TierUltimate, true},
		{"gold", membership.Tier("gold"), false},
		{"", membership.Tier(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := membership.ParseTier(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestTier_Ordering(t *testing.T) {
	t.Parallel()

	assert.Less(t, membership.TierBasic.Rank(), membership.TierPremium.Rank())
	assert.Less(t, membership.TierPremium.Rank(), membership.TierUltimate.Rank())
	assert.Equal(t, 0, membership.Tier("gold").Rank())

	assert.True(t, membership.TierUltimate.AtLeast(membership.TierPremium))
	assert.True(t, membership.TierPremium.AtLeast(membership.TierPremium))
	assert.False(t, membership.TierBasic.AtLeast(membership.TierPremium))
	assert.False(t, membership.Tier("gold").AtLeast(membership.TierBasic))
	assert.Equal(t, []membership.Tier{membership.TierBasic, membership.TierPremium, membership.TierUltimate}, membership.Tiers())
}

func TestDisplayMetadata(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Basic", membership.DisplayName(membership.TierBasic))
	assert.Equal(t, "Premium", membership.DisplayName(membership.TierPremium))
	assert.Equal(t, "Ultimate", membership.DisplayName(membership.TierUltimate))
	assert.Equal(t, "Unknown", membership.DisplayName(membership.Tier("gold")))

	assert.Equal(t, "blue", membership.BadgeColor(membership.TierBasic))
	assert.Equal(t, "purple", membership.BadgeColor(membership.TierPremium))
	assert.Equal(t, "yellow", membership.BadgeColor(membership.TierUltimate))
	assert.Equal(t, "gray", membership.BadgeColor(membership.Tier("")))
}

func TestFeatureSpec(t *testing.T) {
	t.Parallel()

	t.Run("quota clamps negative limit", func(t *testing.T) {
		t.Parallel()
		spec := membership.Quota(-3)
		assert.True(t, spec.IsQuota())
		assert.False(t, spec.Unlimited())
		assert.Equal(t, int64(0), spec.Limit())
	})

	t.Run("zero value grants nothing", func(t *testing.T) {
		t.Parallel()
		var spec membership.FeatureSpec
		assert.False(t, spec.Enabled())
		assert.Equal(t, int64(0), spec.Limit())
	})

	t.Run("json shape", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(membership.Capability(true))
		require.NoError(t, err)
		assert.JSONEq(t, `true`, string(b))

		b, err = json.Marshal(membership.Quota(5))
		require.NoError(t, err)
		assert.JSONEq(t, `{"limit":5,"unlimited":false}`, string(b))

		b, err = json.Marshal(membership.UnlimitedQuota())
		require.NoError(t, err)
		assert.JSONEq(t, `{"limit":null,"unlimited":true}`, string(b))
	})
}
