// Package types provides type definitions for structured data used throughout the admissions advisor.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TestKind identifies the English proficiency test a score set belongs to.
type TestKind string

const (
	// TestIELTS is the IELTS Academic test (0-9 bands in half steps)
	TestIELTS TestKind = "IELTS"
	// TestTOEFL is the TOEFL iBT test (0-120 overall, 0-30 per section)
	TestTOEFL TestKind = "TOEFL"
)

// ScoreBounds describes the accepted range of one score field.
type ScoreBounds struct {
	Min  float64
	Max  float64
	Step float64
}

// ScoreInput holds the five score fields exactly as the user typed them.
// Values stay strings so a partially filled form can be represented.
type ScoreInput struct {
	Kind      TestKind `json:"testType"`
	Overall   string   `json:"overall"`
	Reading   string   `json:"reading"`
	Writing   string   `json:"writing"`
	Listening string   `json:"listening"`
	Speaking  string   `json:"speaking"`
}

// DefaultIELTSScores returns the IELTS form's initial values.
func DefaultIELTSScores() ScoreInput {
	return ScoreInput{Kind: TestIELTS, Overall: "7.5", Reading: "7.0", Writing: "7.0", Listening: "7.0", Speaking: "7.0"}
}

// DefaultTOEFLScores returns the TOEFL form's initial values.
func DefaultTOEFLScores() ScoreInput {
	return ScoreInput{Kind: TestTOEFL, Overall: "100", Reading: "25", Writing: "25", Listening: "25", Speaking: "25"}
}

// Fields returns the five score values keyed by field name, in display order.
func (s ScoreInput) Fields() []ScoreField {
	return []ScoreField{
		{Name: "overall", Value: s.Overall},
		{Name: "reading", Value: s.Reading},
		{Name: "writing", Value: s.Writing},
		{Name: "listening", Value: s.Listening},
		{Name: "speaking", Value: s.Speaking},
	}
}

// ScoreField is a single named score value.
type ScoreField struct {
	Name  string
	Value string
}

// CanSubmit reports whether every score field is filled in.
// Only emptiness is checked; numeric content is not validated here.
func (s ScoreInput) CanSubmit() bool {
	for _, f := range s.Fields() {
		if strings.TrimSpace(f.Value) == "" {
			return false
		}
	}
	return true
}

// Bounds returns the input range for the named field under this test kind.
func (s ScoreInput) Bounds(field string) ScoreBounds {
	if s.Kind == TestTOEFL {
		if field == "overall" {
			return ScoreBounds{Min: 0, Max: 120, Step: 1}
		}
		return ScoreBounds{Min: 0, Max: 30, Step: 1}
	}
	return ScoreBounds{Min: 0, Max: 9, Step: 0.5}
}

// OverallScore parses the overall field as a decimal number.
func (s ScoreInput) OverallScore() (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(s.Overall), 64)
	if err != nil {
		return 0, fmt.Errorf("overall score %q is not a number", s.Overall)
	}
	return score, nil
}

// ToRecommendInput converts the form into a recommendation request carrying the overall score.
func (s ScoreInput) ToRecommendInput() (RecommendInput, error) {
	score, err := s.OverallScore()
	if err != nil {
		return RecommendInput{}, err
	}
	return RecommendInput{Score: score}, nil
}

// Vibe selects the tone of the advisor's reasoning text.
type Vibe string

const (
	VibeSubtle Vibe = "S"
	VibeMedium Vibe = "M"
	VibeHigh   Vibe = "H"
)

// RecommendInput is the structured input to the prompt builder.
// Only Score is required; the remaining fields render as "unspecified" when empty.
type RecommendInput struct {
	Score          float64  `json:"score" validate:"gte=0"`
	Province       string   `json:"province,omitempty"`
	CityPreference string   `json:"cityPreference,omitempty"`
	Subjects       []string `json:"subjects,omitempty"`
	Vibe           Vibe     `json:"vibe,omitempty" validate:"omitempty,oneof=S M H"`
}

// Validate validates the RecommendInput using the validator.
func (r *RecommendInput) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
