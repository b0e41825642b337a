package usage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/memberkit/pkg/membership"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

func TestKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "usage:42:premium", usage.Key("42", membership.TierPremium))
}

func TestRecord_Encoding(t *testing.T) {
	t.Parallel()

	t.Run("wire format", func(t *testing.T) {
		t.Parallel()
		raw, err := usage.EncodeRecord(usage.Record{
			Resources: 1,
			Downloads: 2,
			Goals:     3,
			LastReset: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"resources":1,"downloads":2,"goals":3,"lastReset":"2026-05-01T00:00:00Z"}`, string(raw))
	})

	t.Run("negative counters are corrupt", func(t *testing.T) {
		t.Parallel()
		_, err := usage.DecodeRecord([]byte(`{"resources":-1,"downloads":0,"goals":0}`))
		assert.ErrorIs(t, err, usage.ErrCorruptedRecord)
	})

	t.Run("invalid json is corrupt", func(t *testing.T) {
		t.Parallel()
		_, err := usage.DecodeRecord([]byte(`[]`))
		assert.ErrorIs(t, err, usage.ErrCorruptedRecord)
	})

	t.Run("count of uncounted feature", func(t *testing.T) {
		t.Parallel()
		r := usage.Record{Resources: 4}
		assert.Equal(t, int64(4), r.Count(membership.FeatureResources))
		assert.Zero(t, r.Count(membership.FeatureAnalytics))
	})
}
