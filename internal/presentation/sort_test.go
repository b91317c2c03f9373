package presentation

import (
	"testing"

	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranks(us []types.University) []int {
	out := make([]int, 0, len(us))
	for _, u := range us {
		out = append(out, u.QSRanking)
	}
	return out
}

func names(us []types.University) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.Name)
	}
	return out
}

func TestSort_QSRankingAndToggle(t *testing.T) {
	input := []types.University{{QSRanking: 100}, {QSRanking: 20}, {QSRanking: 50}}

	state := DefaultSortState()
	assert.Equal(t, []int{20, 50, 100}, ranks(Sort(input, state)))

	state = state.Toggle(SortByQSRanking)
	assert.Equal(t, Descending, state.Direction)
	assert.Equal(t, []int{100, 50, 20}, ranks(Sort(input, state)))

	assert.Equal(t, []int{100, 20, 50}, ranks(input), "input is not mutated")
}

func TestSort_SuccessProbability(t *testing.T) {
	input := []types.University{
		{Name: "a", SuccessProbability: "Low"},
		{Name: "b", SuccessProbability: "High"},
		{Name: "c", SuccessProbability: "Medium"},
		{Name: "d", SuccessProbability: "Unknown"},
	}

	sorted := Sort(input, SortState{Key: SortBySuccessProbability, Direction: Ascending})
	assert.Equal(t, []string{"b", "c", "a", "d"}, names(sorted))

	sorted = Sort(input, SortState{Key: SortBySuccessProbability, Direction: Descending})
	assert.Equal(t, []string{"d", "a", "c", "b"}, names(sorted))
}

func TestSort_ProbabilityIsCaseSensitive(t *testing.T) {
	input := []types.University{
		{Name: "lower", SuccessProbability: "high"},
		{Name: "exact", SuccessProbability: "Low"},
	}
	sorted := Sort(input, SortState{Key: SortBySuccessProbability, Direction: Ascending})
	assert.Equal(t, []string{"exact", "lower"}, names(sorted))
}

func TestSort_NameLocaleAware(t *testing.T) {
	input := []types.University{
		{Name: "university of Zurich"},
		{Name: "École Polytechnique"},
		{Name: "Aalto University"},
		{Name: "ETH Zurich"},
	}

	sorted := Sort(input, SortState{Key: SortByName, Direction: Ascending})
	assert.Equal(t, []string{"Aalto University", "École Polytechnique", "ETH Zurich", "university of Zurich"}, names(sorted))

	sorted = Sort(input, SortState{Key: SortByName, Direction: Descending})
	assert.Equal(t, []string{"university of Zurich", "ETH Zurich", "École Polytechnique", "Aalto University"}, names(sorted))
}

func TestSort_StableOnTies(t *testing.T) {
	input := []types.University{
		{Name: "first", QSRanking: 10, SuccessProbability: "High"},
		{Name: "second", QSRanking: 5, SuccessProbability: "High"},
		{Name: "third", QSRanking: 10, SuccessProbability: "High"},
	}

	sorted := Sort(input, SortState{Key: SortBySuccessProbability, Direction: Ascending})
	assert.Equal(t, []string{"first", "second", "third"}, names(sorted))

	sorted = Sort(input, SortState{Key: SortByQSRanking, Direction: Ascending})
	assert.Equal(t, []string{"second", "first", "third"}, names(sorted))

	sorted = Sort(input, SortState{Key: SortByQSRanking, Direction: Descending})
	assert.Equal(t, []string{"first", "third", "second"}, names(sorted))
}

func TestSort_MissingRankSortsLast(t *testing.T) {
	input := []types.University{{Name: "unranked"}, {Name: "ranked", QSRanking: 150}}

	sorted := Sort(input, DefaultSortState())
	assert.Equal(t, []string{"ranked", "unranked"}, names(sorted))
}

func TestSort_UnknownKeyAndEmpty(t *testing.T) {
	input := []types.University{{QSRanking: 3}, {QSRanking: 1}}
	sorted := Sort(input, SortState{Key: "city", Direction: Ascending})
	assert.Equal(t, []int{3, 1}, ranks(sorted))

	sorted[0].QSRanking = 99
	assert.Equal(t, 3, input[0].QSRanking, "result is a copy")

	empty := Sort(nil, DefaultSortState())
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSortState_Toggle(t *testing.T) {
	tests := []struct {
		name  string
		from  SortState
		click SortKey
		want  SortState
	}{
		{"same key ascending", SortState{SortByName, Ascending}, SortByName, SortState{SortByName, Descending}},
		{"same key descending", SortState{SortByName, Descending}, SortByName, SortState{SortByName, Ascending}},
		{"new key from descending", SortState{SortByName, Descending}, SortByQSRanking, SortState{SortByQSRanking, Ascending}},
		{"new key from ascending", SortState{SortByQSRanking, Ascending}, SortBySuccessProbability, SortState{SortBySuccessProbability, Ascending}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Toggle(tt.click))
		})
	}
}

func TestParseSortState(t *testing.T) {
	state, err := ParseSortState("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSortState(), state)

	state, err = ParseSortState("name", "descending")
	require.NoError(t, err)
	assert.Equal(t, SortState{Key: SortByName, Direction: Descending}, state)

	_, err = ParseSortState("city", "")
	assert.Error(t, err)
	_, err = ParseSortState("", "up")
	assert.Error(t, err)
}

func TestProbabilityRank(t *testing.T) {
	assert.Equal(t, 1, ProbabilityRank("High"))
	assert.Equal(t, 2, ProbabilityRank("Medium"))
	assert.Equal(t, 3, ProbabilityRank("Low"))
	assert.Equal(t, 4, ProbabilityRank("Very High"))
	assert.Equal(t, 4, ProbabilityRank(""))
}

func TestSortOptions(t *testing.T) {
	opts := SortOptions()
	require.Len(t, opts, 3)
	assert.Equal(t, SortByQSRanking, opts[0].Key)
	assert.Equal(t, "Probability", opts[2].Label)
}
