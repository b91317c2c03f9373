package schemas

import (
	"errors"
	"testing"

	embedded "github.com/jonathan/admissions-advisor/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type":"object"}`, `{ invalid json }`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
	assert.Equal(t, []string{"name", "age"}, err.Fields())
}

func TestValidateEmbedded_Recommendations(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{
			name: "well formed",
			json: `{"summary":"ok","recommendations":[
				{"name":"University of Melbourne","qsRank":13,"city":"Melbourne","country":"Australia","tier":"Match","rationale":"strong"}
			]}`,
		},
		{
			name: "summary optional",
			json: `{"recommendations":[]}`,
		},
		{
			name:      "rank above ceiling",
			json:      `{"recommendations":[{"name":"X","qsRank":250,"tier":"Safe"}]}`,
			wantError: true,
		},
		{
			name:      "rank missing",
			json:      `{"recommendations":[{"name":"X","tier":"Safe"}]}`,
			wantError: true,
		},
		{
			name:      "unknown tier",
			json:      `{"recommendations":[{"name":"X","qsRank":10,"tier":"Maybe"}]}`,
			wantError: true,
		},
		{
			name:      "recommendations not an array",
			json:      `{"recommendations":{}}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbedded(embedded.Recommendations, tt.json)
			if tt.wantError {
				var validationErr *ValidationError
				require.True(t, errors.As(err, &validationErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("missing.schema.json", `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "missing.schema.json")
}

func TestValidateValue_RecommendResponse(t *testing.T) {
	valid := map[string]any{
		"summary": "",
		"universities": []any{
			map[string]any{
				"name":               "ETH Zurich",
				"qsRanking":          7,
				"minIELTS":           "7.0",
				"minTOEFL":           100,
				"successProbability": "Medium",
				"reasoning":          "fit",
				"recommendedMajors":  []string{},
			},
		},
		"sort": map[string]string{"key": "qsRanking", "direction": "ascending"},
	}
	assert.NoError(t, ValidateValue(embedded.RecommendResponse, valid))

	valid["sort"] = map[string]string{"key": "city", "direction": "ascending"}
	assert.Error(t, ValidateValue(embedded.RecommendResponse, valid))
}
