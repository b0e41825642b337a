package usage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

const keyPrefix = "usage"

// Key returns the storage key for a member's usage on a tier.
func Key(userID string, tier membership.Tier) string {
	return keyPrefix + ":" + userID + ":" + string(tier)
}

// Record is the persisted usage state for one member on one tier.
type Record struct {
	Resources int64     `json:"resources"`
	Downloads int64     `json:"downloads"`
	Goals     int64     `json:"goals"`
	LastReset time.Time `json:"lastReset"`
}

func newRecord(now time.Time) Record {
	return Record{LastReset: now}
}

// counter returns a pointer to the counter backing feature, or nil for
// features that are not counted.
func (r *Record) counter(feature membership.Feature) *int64 {
	switch feature {
	case membership.FeatureResources:
		return &r.Resources
	case membership.FeatureDownloads:
		return &r.Downloads
	case membership.FeatureGoals:
		return &r.Goals
	default:
		return nil
	}
}

// Count returns the counter value for feature; uncounted features report 0.
func (r Record) Count(feature membership.Feature) int64 {
	if c := r.counter(feature); c != nil {
		return *c
	}
	return 0
}

// EncodeRecord serializes a record for a Store.
func EncodeRecord(r Record) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRecord parses a stored record. Negative counters are rejected.
func DecodeRecord(b []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return Record{}, errors.Join(ErrCorruptedRecord, err)
	}
	if r.Resources < 0 || r.Downloads < 0 || r.Goals < 0 {
		return Record{}, ErrCorruptedRecord
	}
	return r, nil
}
