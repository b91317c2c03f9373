package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Success probability labels recognised for ordering and badges.
const (
	ProbabilityHigh   = "High"
	ProbabilityMedium = "Medium"
	ProbabilityLow    = "Low"
)

// University is the presentation entity rendered as one result card.
type University struct {
	Name               string      `json:"name"`
	NameCN             string      `json:"nameCN,omitempty"`
	Country            string      `json:"country,omitempty"`
	QSRanking          int         `json:"qsRanking"`
	MinIELTS           Requirement `json:"minIELTS"`
	MinTOEFL           Requirement `json:"minTOEFL"`
	SuccessProbability string      `json:"successProbability"`
	Reasoning          string      `json:"reasoning"`
	Website            string      `json:"website,omitempty"`
	RecommendedMajors  []string    `json:"recommendedMajors"`
}

// HasRanking reports whether a QS ranking is known. Zero means unknown.
func (u University) HasRanking() bool {
	return u.QSRanking > 0
}

// Requirement is a minimum test score that the model may emit as a number or a string.
type Requirement string

// UnmarshalJSON accepts a JSON number, string, or null.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Requirement(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = Requirement(n.String())
	return nil
}

// Value parses the requirement as a number.
func (r Requirement) Value() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(r)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Display returns the requirement text, or "N/A" unless it is a positive number.
func (r Requirement) Display() string {
	if v, ok := r.Value(); ok && v > 0 {
		return string(r)
	}
	return "N/A"
}
