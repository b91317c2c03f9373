package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Tier is the fit category the advisor assigns to a recommendation.
type Tier string

const (
	TierMatch Tier = "Match"
	TierReach Tier = "Reach"
	TierSafe  Tier = "Safe"
)

// Recommendation is a single university entry recovered from the model's reply.
type Recommendation struct {
	Name      string   `json:"name"`
	QSRank    *float64 `json:"qsRank,omitempty"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Rationale string   `json:"rationale"`
	Tier      Tier     `json:"tier"`
}

// UnmarshalJSON decodes a recommendation leniently: fields of the wrong JSON type
// are left empty and qsRank is only set when it is a JSON number.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Recommendation{
		Name:      rawString(fields["name"]),
		City:      rawString(fields["city"]),
		Country:   rawString(fields["country"]),
		Rationale: rawString(fields["rationale"]),
		Tier:      Tier(rawString(fields["tier"])),
	}

	if raw, ok := fields["qsRank"]; ok {
		if rank, ok := parseRank(raw); ok {
			r.QSRank = &rank
		}
	}

	return nil
}

// HasRank reports whether the model supplied a numeric QS rank.
func (r Recommendation) HasRank() bool {
	return r.QSRank != nil
}

// RecommendationResult is the normalized outcome of one fetch.
type RecommendationResult struct {
	Summary         string           `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
}

// EmptyResult returns a result with no summary and no recommendations.
func EmptyResult() *RecommendationResult {
	return &RecommendationResult{Summary: "", Recommendations: []Recommendation{}}
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// parseRank reads a JSON number as a rank. Numbers beyond the float64 range
// become ±Inf rather than absent, so an overflowing rank is still filtered.
func parseRank(raw json.RawMessage) (float64, bool) {
	if !isJSONNumber(raw) {
		return 0, false
	}
	rank, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return rank, true
}

func isJSONNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}
