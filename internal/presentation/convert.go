package presentation

import (
	"math"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/types"
)

// tierProbability maps the advisor's tiers onto success probability labels.
var tierProbability = map[types.Tier]string{
	types.TierSafe:  types.ProbabilityHigh,
	types.TierMatch: types.ProbabilityMedium,
	types.TierReach: types.ProbabilityLow,
}

// UniversityFromRecommendation turns a fetched recommendation into a card entity.
// An unknown tier is carried through as the probability label and so sorts last.
// QS rankings are whole numbers: a fractional rank is rounded to the nearest one,
// and a rank below 1 is treated as unknown.
func UniversityFromRecommendation(rec types.Recommendation) types.University {
	u := types.University{
		Name:               rec.Name,
		Country:            joinLocation(rec.City, rec.Country),
		SuccessProbability: string(rec.Tier),
		Reasoning:          rec.Rationale,
		RecommendedMajors:  []string{},
	}
	if p, ok := tierProbability[rec.Tier]; ok {
		u.SuccessProbability = p
	}
	if rec.HasRank() && *rec.QSRank >= 1 {
		u.QSRanking = int(math.Round(*rec.QSRank))
	}
	return u
}

// UniversitiesFromResult converts every recommendation in result, keeping order.
func UniversitiesFromResult(result *types.RecommendationResult) []types.University {
	if result == nil {
		return []types.University{}
	}
	out := make([]types.University, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		out = append(out, UniversityFromRecommendation(rec))
	}
	return out
}

func joinLocation(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
