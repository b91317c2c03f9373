package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/admissions-advisor/internal/presentation"
	"github.com/jonathan/admissions-advisor/internal/types"
	"go.uber.org/zap"
)

// RecommendResponse represents the response for /api/recommend
type RecommendResponse struct {
	Summary      string                    `json:"summary"`
	Universities []types.University        `json:"universities"`
	Cards        []presentation.Card       `json:"cards"`
	Sort         presentation.SortState    `json:"sort"`
	SortOptions  []presentation.SortOption `json:"sortOptions"`
}

// handleRecommend runs one search for the submitted scores and returns the
// results in the requested order.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	sortState, err := presentation.ParseSortState(req.SortKey, req.Direction)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	scores := req.Scores()
	if !scores.CanSubmit() {
		err := &ErrValidation{Field: "scores", Message: "all five score fields are required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if _, err := scores.OverallScore(); err != nil {
		verr := &ErrValidation{Field: "overall", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	session := presentation.NewSession(s.fetcher, s.logger)
	session.SetSort(sortState)
	prefs := presentation.Preferences{
		Province:       req.Province,
		CityPreference: req.CityPreference,
		Subjects:       req.Subjects,
		Vibe:           req.Vibe,
	}
	if err := session.Submit(r.Context(), scores, prefs); err != nil {
		s.logger.Warn("recommendation failed", zap.String("test_type", string(req.TestType)), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	view := session.View()
	s.jsonResponse(w, http.StatusOK, RecommendResponse{
		Summary:      view.Summary,
		Universities: view.Universities,
		Cards:        presentation.Cards(view.Universities),
		Sort:         view.Sort,
		SortOptions:  presentation.SortOptions(),
	})
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return (&ErrValidation{Field: first.Field(), Message: "failed on the '" + first.Tag() + "' rule"}).Error()
	}
	return err.Error()
}
