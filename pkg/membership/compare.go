package membership

// TierComparison lists what changes when moving from one tier to another.
type TierComparison struct {
	From            Tier                    `json:"from"`
	To              Tier                    `json:"to"`
	NewFeatures     []Feature               `json:"new_features"`
	LostFeatures    []Feature               `json:"lost_features"`
	IncreasedLimits map[Feature]LimitChange `json:"increased_limits"`
	DecreasedLimits map[Feature]LimitChange `json:"decreased_limits"`
}

// LimitChange represents a change in quota allowance.
type LimitChange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// IsUpgrade reports whether the target tier ranks above the current one.
func (c *TierComparison) IsUpgrade() bool {
	return c.To.Rank() > c.From.Rank()
}

// HasLosses reports whether the move removes features or lowers a quota.
func (c *TierComparison) HasLosses() bool {
	return len(c.LostFeatures) > 0 || len(c.DecreasedLimits) > 0
}

// CompareTiers returns the differences between two tiers in the table.
// Returns nil when either tier is unknown.
func (t Table) CompareTiers(current, target Tier) *TierComparison {
	if _, ok := t[current]; !ok {
		return nil
	}
	if _, ok := t[target]; !ok {
		return nil
	}

	c := &TierComparison{
		From:            current,
		To:              target,
		NewFeatures:     make([]Feature, 0),
		LostFeatures:    make([]Feature, 0),
		IncreasedLimits: make(map[Feature]LimitChange),
		DecreasedLimits: make(map[Feature]LimitChange),
	}

	for _, feature := range Features() {
		from, _ := t.Spec(current, feature)
		to, _ := t.Spec(target, feature)

		if !to.IsQuota() || !from.IsQuota() {
			switch {
			case to.Enabled() && !from.Enabled():
				c.NewFeatures = append(c.NewFeatures, feature)
			case from.Enabled() && !to.Enabled():
				c.LostFeatures = append(c.LostFeatures, feature)
			}
			continue
		}

		fromLimit, toLimit := from.Limit(), to.Limit()
		if fromLimit == toLimit {
			continue
		}
		change := LimitChange{From: fromLimit, To: toLimit}

		// Unlimited-to-limited is a decrease.
		switch {
		case fromLimit == Unlimited:
			c.DecreasedLimits[feature] = change
		case toLimit == Unlimited, toLimit > fromLimit:
			c.IncreasedLimits[feature] = change
		default:
			c.DecreasedLimits[feature] = change
		}
	}

	return c
}

// CompareTiers compares tiers in the default table.
func CompareTiers(current, target Tier) *TierComparison {
	return defaultTable.CompareTiers(current, target)
}
