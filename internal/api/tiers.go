package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

type tierInfo struct {
	Tier        membership.Tier                                `json:"tier"`
	Rank        int                                            `json:"rank"`
	DisplayName string                                         `json:"display_name"`
	BadgeColor  string                                         `json:"badge_color"`
	Features    map[membership.Feature]membership.FeatureSpec `json:"features"`
}

func (s *Server) listTiers(w http.ResponseWriter, r *http.Request) {
	tiers := make([]tierInfo, 0, len(membership.Tiers()))
	for _, t := range membership.Tiers() {
		tiers = append(tiers, tierInfo{
			Tier:        t,
			Rank:        t.Rank(),
			DisplayName: membership.DisplayName(t),
			BadgeColor:  membership.BadgeColor(t),
			Features:    s.table[t],
		})
	}
	respondMeta(w, tiers, map[string]any{"current_tier": currentTier(r)})
}

type featureAccess struct {
	Tier      membership.Tier    `json:"tier"`
	Feature   membership.Feature `json:"feature"`
	HasAccess bool               `json:"has_access"`
	Limit     int64              `json:"limit"`
}

func (s *Server) tierFeature(w http.ResponseWriter, r *http.Request) {
	tier, ok := membership.ParseTier(chi.URLParam(r, "tier"))
	if !ok {
		respondError(w, ErrUnknownTier)
		return
	}
	feature, ok := membership.ParseFeature(chi.URLParam(r, "feature"))
	if !ok {
		respondError(w, ErrUnknownFeature)
		return
	}

	respond(w, featureAccess{
		Tier:      tier,
		Feature:   feature,
		HasAccess: s.table.HasFeatureAccess(tier, feature),
		Limit:     s.table.GetFeatureLimit(tier, feature),
	})
}

type comparison struct {
	*membership.TierComparison
	IsUpgrade bool `json:"is_upgrade"`
	HasLosses bool `json:"has_losses"`
}

func (s *Server) compareTiers(w http.ResponseWriter, r *http.Request) {
	from, _ := membership.ParseTier(chi.URLParam(r, "tier"))
	to, _ := membership.ParseTier(chi.URLParam(r, "target"))

	cmp := s.table.CompareTiers(from, to)
	if cmp == nil {
		respondError(w, ErrUnknownTier)
		return
	}
	respond(w, comparison{TierComparison: cmp, IsUpgrade: cmp.IsUpgrade(), HasLosses: cmp.HasLosses()})
}

type contentAccess struct {
	Tier      membership.Tier `json:"tier"`
	Type      string          `json:"type"`
	HasAccess bool            `json:"has_access"`
}

func (s *Server) accessResource(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	if typ == "" {
		typ = membership.ContentGeneral
	}
	tier := currentTier(r)
	respond(w, contentAccess{Tier: tier, Type: typ, HasAccess: membership.CanAccessResource(tier, typ)})
}

func (s *Server) accessCourse(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	if typ == "" {
		typ = membership.ContentFree
	}
	tier := currentTier(r)
	respond(w, contentAccess{Tier: tier, Type: typ, HasAccess: membership.CanAccessCourse(tier, typ)})
}

// gate answers with 200 in both cases; the decision itself says whether
// the member gets in and, if not, what to upgrade to.
func (s *Server) gate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	feature := membership.Feature(q.Get("feature"))

	var required membership.Tier
	if raw := q.Get("required"); raw != "" {
		required, _ = membership.ParseTier(raw)
	}
	if feature == "" && required == "" {
		respondError(w, HTTPError{Status: http.StatusBadRequest, Key: "bad_request", Msg: "feature or required tier is required"})
		return
	}

	respond(w, s.table.Gate(currentTier(r), required, feature))
}
