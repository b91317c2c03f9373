package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendation_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRank *float64
		wantName string
	}{
		{name: "numeric rank", input: `{"name":"UCL","qsRank":9}`, wantRank: ptr(9), wantName: "UCL"},
		{name: "fractional rank", input: `{"name":"X","qsRank":200.5}`, wantRank: ptr(200.5), wantName: "X"},
		{name: "missing rank", input: `{"name":"Y"}`, wantRank: nil, wantName: "Y"},
		{name: "null rank", input: `{"name":"Z","qsRank":null}`, wantRank: nil, wantName: "Z"},
		{name: "string rank is not a number", input: `{"name":"W","qsRank":"23"}`, wantRank: nil, wantName: "W"},
		{name: "non-string name", input: `{"name":42,"qsRank":1}`, wantRank: ptr(1), wantName: ""},
		{name: "exponent rank", input: `{"name":"E","qsRank":1.5e2}`, wantRank: ptr(150), wantName: "E"},
		{name: "overflowing rank", input: `{"name":"Huge","qsRank":1e400}`, wantRank: ptr(math.Inf(1)), wantName: "Huge"},
		{name: "overflowing negative rank", input: `{"name":"Neg","qsRank":-1e400}`, wantRank: ptr(math.Inf(-1)), wantName: "Neg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Recommendation
			require.NoError(t, json.Unmarshal([]byte(tt.input), &rec))
			assert.Equal(t, tt.wantName, rec.Name)
			if tt.wantRank == nil {
				assert.False(t, rec.HasRank())
			} else {
				require.True(t, rec.HasRank())
				assert.Equal(t, *tt.wantRank, *rec.QSRank)
			}
		})
	}
}

func TestRecommendation_UnmarshalJSON_AllFields(t *testing.T) {
	input := `{"name":"Fudan University","qsRank":39,"city":"上海","country":"中国","tier":"Match","rationale":"Strong fit"}`

	var rec Recommendation
	require.NoError(t, json.Unmarshal([]byte(input), &rec))

	assert.Equal(t, "Fudan University", rec.Name)
	assert.Equal(t, "上海", rec.City)
	assert.Equal(t, "中国", rec.Country)
	assert.Equal(t, TierMatch, rec.Tier)
	assert.Equal(t, "Strong fit", rec.Rationale)
	assert.Equal(t, 39.0, *rec.QSRank)
}

func TestRecommendation_UnmarshalJSON_NotObject(t *testing.T) {
	var rec Recommendation
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &rec))
}

func TestEmptyResult(t *testing.T) {
	result := EmptyResult()
	assert.Equal(t, "", result.Summary)
	assert.NotNil(t, result.Recommendations)
	assert.Empty(t, result.Recommendations)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"","recommendations":[]}`, string(data))
}

func TestRequirement(t *testing.T) {
	var u University
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","minIELTS":6.5,"minTOEFL":"90"}`), &u))
	assert.Equal(t, "6.5", u.MinIELTS.Display())
	assert.Equal(t, "90", u.MinTOEFL.Display())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"B","minIELTS":0,"minTOEFL":null}`), &u))
	assert.Equal(t, "N/A", u.MinIELTS.Display())
	assert.Equal(t, "N/A", u.MinTOEFL.Display())

	assert.Equal(t, "N/A", Requirement("not required").Display())
	assert.Equal(t, "7.0", Requirement("7.0").Display())
}

func ptr(f float64) *float64 {
	return &f
}
