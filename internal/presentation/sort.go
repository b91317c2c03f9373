// Package presentation orders and shapes recommendation results for display.
package presentation

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/jonathan/admissions-advisor/internal/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names the field results are ordered by.
type SortKey string

const (
	SortByQSRanking          SortKey = "qsRanking"
	SortByName               SortKey = "name"
	SortBySuccessProbability SortKey = "successProbability"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// SortOption is one entry of the sort control.
type SortOption struct {
	Key   SortKey `json:"key"`
	Label string  `json:"label"`
}

// SortOptions lists the sort controls in display order.
func SortOptions() []SortOption {
	return []SortOption{
		{Key: SortByQSRanking, Label: "QS Rank"},
		{Key: SortByName, Label: "Name"},
		{Key: SortBySuccessProbability, Label: "Probability"},
	}
}

// SortState is the active sort key and direction.
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSortState orders by QS rank, best first.
func DefaultSortState() SortState {
	return SortState{Key: SortByQSRanking, Direction: Ascending}
}

// ParseSortState builds a state from request strings. Empty values take the defaults.
func ParseSortState(key, direction string) (SortState, error) {
	state := DefaultSortState()
	if key != "" {
		switch k := SortKey(key); k {
		case SortByQSRanking, SortByName, SortBySuccessProbability:
			state.Key = k
		default:
			return state, fmt.Errorf("unknown sort key %q", key)
		}
	}
	if direction != "" {
		switch d := Direction(direction); d {
		case Ascending, Descending:
			state.Direction = d
		default:
			return state, fmt.Errorf("unknown sort direction %q", direction)
		}
	}
	return state, nil
}

// Toggle returns the state after selecting key: selecting the active key while
// ascending flips to descending, anything else sorts ascending by key.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key && s.Direction == Ascending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// probabilityOrder ranks the recognised labels; anything else ranks 4.
var probabilityOrder = map[string]int{
	types.ProbabilityHigh:   1,
	types.ProbabilityMedium: 2,
	types.ProbabilityLow:    3,
}

// ProbabilityRank returns the ordinal of a success probability label.
// Matching is exact; unrecognised labels rank after Low.
func ProbabilityRank(p string) int {
	if r, ok := probabilityOrder[p]; ok {
		return r
	}
	return 4
}

// rankValue treats an unknown QS ranking as worse than any known one.
func rankValue(u types.University) int {
	if !u.HasRanking() {
		return math.MaxInt
	}
	return u.QSRanking
}

// Sort returns a sorted copy of universities. The sort is stable, so equal keys
// keep their input order. An unknown key returns the copy unchanged.
func Sort(universities []types.University, state SortState) []types.University {
	sorted := slices.Clone(universities)
	if sorted == nil {
		sorted = []types.University{}
	}

	dir := 1
	if state.Direction == Descending {
		dir = -1
	}

	var compare func(a, b types.University) int
	switch state.Key {
	case SortByQSRanking:
		compare = func(a, b types.University) int {
			return cmp.Compare(rankValue(a), rankValue(b))
		}
	case SortByName:
		// Collators are not safe for concurrent use.
		col := collate.New(language.English)
		compare = func(a, b types.University) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortBySuccessProbability:
		compare = func(a, b types.University) int {
			return cmp.Compare(ProbabilityRank(a.SuccessProbability), ProbabilityRank(b.SuccessProbability))
		}
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b types.University) int {
		return compare(a, b) * dir
	})
	return sorted
}
