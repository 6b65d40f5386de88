package deals

import (
	"strings"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// Filter keeps deals that satisfy both the area rule and the neighborhood rule.
//
// Area rule: area 0 (unknown) passes; otherwise area <= MaxAreaSqm + AreaTolerance.
// A non-positive MaxAreaSqm disables the rule.
// Neighborhood rule: any keyword occurs in region+neighborhood+complex+road.
// An empty keyword set disables the rule.
//
// An empty result is reported as contracts.ErrNoQualifyingDeals.
func Filter(deals []contracts.Deal, cfg contracts.FilterConfig) ([]contracts.Deal, error) {
	keywords := cleanKeywords(cfg.NeighborhoodKeywords)

	out := make([]contracts.Deal, 0, len(deals))
	for _, d := range deals {
		if MatchesArea(d, cfg) && matchesNeighborhood(d, keywords) {
			out = append(out, d)
		}
	}

	if len(out) == 0 {
		return out, contracts.ErrNoQualifyingDeals
	}
	return out, nil
}

// MatchesArea applies the area rule alone
func MatchesArea(d contracts.Deal, cfg contracts.FilterConfig) bool {
	if cfg.MaxAreaSqm <= 0 || d.Area == 0 {
		return true
	}
	return d.Area <= cfg.MaxAreaSqm+cfg.AreaTolerance
}

// MatchesNeighborhood applies the neighborhood rule alone
func MatchesNeighborhood(d contracts.Deal, keywords []string) bool {
	return matchesNeighborhood(d, cleanKeywords(keywords))
}

func matchesNeighborhood(d contracts.Deal, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	location := d.Location()
	for _, kw := range keywords {
		if strings.Contains(location, kw) {
			return true
		}
	}
	return false
}

// cleanKeywords drops blank keywords so "" cannot match everything
func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
