package advisor

import (
	"encoding/json"
	"regexp"

	"github.com/jonathan/admissions-advisor/internal/types"
)

// objectSpan matches from the first '{' to the last '}'. The match is greedy, so
// text holding several separate objects yields one span covering all of them.
var objectSpan = regexp.MustCompile(`\{[\s\S]*\}`)

// RecoverJSON returns the JSON value carried by model text. Text that parses as
// JSON is returned whole; otherwise the brace span is tried. ok is false when the
// text is not JSON and has no span. A span that is not valid JSON is a *ParseError.
func RecoverJSON(text string) (raw json.RawMessage, ok bool, err error) {
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), true, nil
	}

	span := objectSpan.FindString(text)
	if span == "" {
		return nil, false, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(span), &decoded); err != nil {
		return nil, false, &ParseError{Message: "recovered span is not valid JSON", Cause: err}
	}
	return json.RawMessage(span), true, nil
}

// DecodeResult normalizes a recovered JSON value. A value that is not an object,
// or whose recommendations field is not an array, decodes to an empty result.
// Array elements that are not objects are skipped.
func DecodeResult(raw json.RawMessage) *types.RecommendationResult {
	result := types.EmptyResult()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return result
	}

	var summary string
	if json.Unmarshal(fields["summary"], &summary) == nil {
		result.Summary = summary
	}

	var items []json.RawMessage
	if err := json.Unmarshal(fields["recommendations"], &items); err != nil {
		return result
	}
	for _, item := range items {
		if string(item) == "null" {
			continue
		}
		var rec types.Recommendation
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		result.Recommendations = append(result.Recommendations, rec)
	}
	return result
}

// ParseModelOutput recovers and normalizes the model's reply. Text without any
// JSON object yields an empty result rather than an error.
func ParseModelOutput(text string) (*types.RecommendationResult, error) {
	raw, ok, err := RecoverJSON(text)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.EmptyResult(), nil
	}
	return DecodeResult(raw), nil
}
