package presentation

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/admissions-advisor/internal/logger"
	"github.com/jonathan/admissions-advisor/internal/types"
	"go.uber.org/zap"
)

// ErrSubmitDisabled is returned when a submission is attempted while a fetch is
// outstanding or a score field is empty.
var ErrSubmitDisabled = errors.New("submit is disabled")

const unknownErrorMessage = "An unknown error occurred"

// Fetcher obtains recommendations. *advisor.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, in types.RecommendInput) (*types.RecommendationResult, error)
}

// Preferences are the optional profile fields sent with the scores.
type Preferences struct {
	Province       string
	CityPreference string
	Subjects       []string
	Vibe           types.Vibe
}

// Status is the display state of a session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusResults Status = "results"
	StatusEmpty   Status = "empty"
)

// View is a snapshot of a session ready for rendering.
type View struct {
	Status       Status             `json:"status"`
	Error        string             `json:"error,omitempty"`
	Summary      string             `json:"summary"`
	Universities []types.University `json:"universities"`
	Sort         SortState          `json:"sort"`
}

// Session holds the state of one user's search: the loading flag, the last
// error, the last results and the sort selection. Results are replaced on every
// submission and never persisted.
type Session struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu          sync.Mutex
	loading     bool
	hasSearched bool
	errMessage  string
	summary     string
	results     []types.University
	sort        SortState
}

// NewSession creates an idle session sorted by QS rank ascending.
func NewSession(fetcher Fetcher, log *zap.Logger) *Session {
	return &Session{
		fetcher: fetcher,
		logger:  logger.OrNop(log),
		sort:    DefaultSortState(),
	}
}

// CanSubmit reports whether a submission with scores would be accepted.
func (s *Session) CanSubmit(scores types.ScoreInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && scores.CanSubmit()
}

// Submit runs one search. It returns ErrSubmitDisabled without fetching when a
// search is already running or a score field is empty. Any fetch failure is
// recorded as the session's error message and returned.
func (s *Session) Submit(ctx context.Context, scores types.ScoreInput, prefs Preferences) error {
	s.mu.Lock()
	if s.loading || !scores.CanSubmit() {
		s.mu.Unlock()
		return ErrSubmitDisabled
	}
	s.hasSearched = true
	s.loading = true
	s.errMessage = ""
	s.summary = ""
	s.results = nil
	s.mu.Unlock()

	result, err := s.fetch(ctx, scores, prefs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMessage = err.Error()
		if s.errMessage == "" {
			s.errMessage = unknownErrorMessage
		}
		s.logger.Warn("search failed", zap.Error(err))
		return err
	}
	s.summary = result.Summary
	s.results = UniversitiesFromResult(result)
	return nil
}

func (s *Session) fetch(ctx context.Context, scores types.ScoreInput, prefs Preferences) (*types.RecommendationResult, error) {
	in, err := scores.ToRecommendInput()
	if err != nil {
		return nil, err
	}
	in.Province = prefs.Province
	in.CityPreference = prefs.CityPreference
	in.Subjects = prefs.Subjects
	in.Vibe = prefs.Vibe
	return s.fetcher.Fetch(ctx, in)
}

// ToggleSort applies a click on the sort control for key.
func (s *Session) ToggleSort(key SortKey) SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.Toggle(key)
	return s.sort
}

// SetSort replaces the sort selection.
func (s *Session) SetSort(state SortState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = state
}

// View returns the current state with results sorted by the active selection.
// The stored results are not reordered.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Error:        s.errMessage,
		Summary:      s.summary,
		Universities: Sort(s.results, s.sort),
		Sort:         s.sort,
	}
	switch {
	case s.loading:
		v.Status = StatusLoading
	case s.errMessage != "":
		v.Status = StatusError
	case !s.hasSearched:
		v.Status = StatusIdle
	case len(s.results) == 0:
		v.Status = StatusEmpty
	default:
		v.Status = StatusResults
	}
	return v
}
