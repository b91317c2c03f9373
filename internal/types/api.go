package types

import (
	"github.com/go-playground/validator/v10"
)

// RecommendRequest is the body accepted by POST /api/recommend.
type RecommendRequest struct {
	TestType       TestKind `json:"testType" validate:"required,oneof=IELTS TOEFL"`
	Overall        string   `json:"overall"`
	Reading        string   `json:"reading"`
	Writing        string   `json:"writing"`
	Listening      string   `json:"listening"`
	Speaking       string   `json:"speaking"`
	Province       string   `json:"province,omitempty"`
	CityPreference string   `json:"cityPreference,omitempty"`
	Subjects       []string `json:"subjects,omitempty" validate:"omitempty,dive,required"`
	Vibe           Vibe     `json:"vibe,omitempty" validate:"omitempty,oneof=S M H"`
	SortKey        string   `json:"sortKey,omitempty" validate:"omitempty,oneof=qsRanking name successProbability"`
	Direction      string   `json:"direction,omitempty" validate:"omitempty,oneof=ascending descending"`
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RecommendInput converts the request into prompt input using the overall score.
func (r *RecommendRequest) RecommendInput() (RecommendInput, error) {
	in, err := r.Scores().ToRecommendInput()
	if err != nil {
		return RecommendInput{}, err
	}
	in.Province = r.Province
	in.CityPreference = r.CityPreference
	in.Subjects = r.Subjects
	in.Vibe = r.Vibe
	return in, nil
}

// Scores extracts the score form from the request.
func (r *RecommendRequest) Scores() ScoreInput {
	return ScoreInput{
		Kind:      r.TestType,
		Overall:   r.Overall,
		Reading:   r.Reading,
		Writing:   r.Writing,
		Listening: r.Listening,
		Speaking:  r.Speaking,
	}
}
