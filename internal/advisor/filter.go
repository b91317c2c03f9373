package advisor

import "github.com/jonathan/admissions-advisor/internal/types"

// MaxQSRank is the highest QS rank a recommendation may carry.
const MaxQSRank = 200

// FilterByRank keeps recommendations that have no rank or a rank of at most
// maxRank. It returns a new slice and the number dropped.
func FilterByRank(recs []types.Recommendation, maxRank float64) ([]types.Recommendation, int) {
	kept := make([]types.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if rec.HasRank() && *rec.QSRank > maxRank {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(recs) - len(kept)
}
