package membership

import "context"

type tierCtxKey struct{}

// WithTier stores the member's tier in the context for downstream access.
func WithTier(ctx context.Context, tier Tier) context.Context {
	return context.WithValue(ctx, tierCtxKey{}, tier)
}

// TierFromContext returns the tier stored by WithTier.
// A missing tier yields the empty tier, which every resolver treats as unknown.
func TierFromContext(ctx context.Context) (Tier, bool) {
	tier, ok := ctx.Value(tierCtxKey{}).(Tier)
	return tier, ok
}
