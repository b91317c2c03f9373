package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/admissions-advisor/internal/logger"
	"github.com/jonathan/admissions-advisor/internal/metrics"
	"github.com/jonathan/admissions-advisor/internal/schemas"
	"github.com/jonathan/admissions-advisor/internal/types"
	embedded "github.com/jonathan/admissions-advisor/schemas"
	"go.uber.org/zap"
)

// Fetcher runs the recommendation pipeline. It holds no per-request state.
type Fetcher struct {
	generator Generator
	logger    *zap.Logger
}

// NewFetcher creates a fetcher that obtains model text from generator.
func NewFetcher(generator Generator, log *zap.Logger) *Fetcher {
	return &Fetcher{generator: generator, logger: logger.OrNop(log)}
}

// Fetch builds the prompt for in, asks the generator once, recovers the JSON
// object from the reply and drops entries ranked below the QS top 200.
// Malformed model output without any JSON object yields an empty result.
func (f *Fetcher) Fetch(ctx context.Context, in types.RecommendInput) (*types.RecommendationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend input: %w", err)
	}

	prompt := BuildPrompt(in)
	f.logger.Debug("built prompt", zap.Float64("score", in.Score), zap.Int("prompt_chars", len([]rune(prompt))))

	text, err := f.generator.Generate(ctx, prompt)
	if err != nil {
		var upstream *UpstreamError
		var callErr *APICallError
		switch {
		case errors.As(err, &upstream):
			metrics.FetchTotal.WithLabelValues(metrics.OutcomeUpstream).Inc()
			f.logger.Warn("upstream rejected generation request", zap.Int("status", upstream.StatusCode))
			return nil, err
		case errors.As(err, &callErr):
			metrics.FetchTotal.WithLabelValues(metrics.OutcomeTransport).Inc()
			f.logger.Error("generation call failed", zap.Error(err))
			return nil, err
		default:
			metrics.FetchTotal.WithLabelValues(metrics.OutcomeTransport).Inc()
			f.logger.Error("generation call failed", zap.Error(err))
			return nil, &APICallError{Message: "generation failed", Cause: err}
		}
	}

	raw, ok, err := RecoverJSON(text)
	if err != nil {
		metrics.FetchTotal.WithLabelValues(metrics.OutcomeParse).Inc()
		f.logger.Error("model output could not be parsed", zap.Error(err))
		return nil, err
	}
	if !ok {
		metrics.FetchTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		f.logger.Warn("model output contained no JSON object", zap.Int("text_chars", len([]rune(text))))
		return types.EmptyResult(), nil
	}

	if err := schemas.ValidateEmbedded(embedded.Recommendations, string(raw)); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			f.logger.Warn("model output does not match schema", zap.Strings("fields", verr.Fields()))
		} else {
			f.logger.Warn("model output schema check skipped", zap.Error(err))
		}
	}

	result := DecodeResult(raw)
	kept, dropped := FilterByRank(result.Recommendations, MaxQSRank)
	result.Recommendations = kept
	if dropped > 0 {
		metrics.RecommendationsDropped.Add(float64(dropped))
		f.logger.Info("dropped recommendations outside QS top 200", zap.Int("dropped", dropped))
	}

	outcome := metrics.OutcomeOK
	if len(kept) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.FetchTotal.WithLabelValues(outcome).Inc()
	f.logger.Info("fetched recommendations", zap.Int("count", len(kept)))

	return result, nil
}
