package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/advisor"
	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/jonathan/admissions-advisor/internal/llm"
	"github.com/jonathan/admissions-advisor/internal/logger"
	"github.com/jonathan/admissions-advisor/internal/observability"
	"github.com/jonathan/admissions-advisor/internal/presentation"
	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Providers accepted by --provider.
const (
	providerRelay     = "relay"
	providerDashScope = "dashscope"
	providerGemini    = "gemini"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend QS top-200 universities for a test score",
	Long: `Run one recommendation search and print the results.

Score flags left unset take the form defaults for the chosen test
(IELTS 7.5 / 7.0, TOEFL 100 / 25). By default the model is reached through a
running relay (advisor serve); --provider dashscope or gemini calls the model
directly with the key from the environment.`,
	RunE: runRecommend,
}

var (
	recTestType  string
	recOverall   string
	recReading   string
	recWriting   string
	recListening string
	recSpeaking  string
	recProvince  string
	recCity      string
	recSubjects  []string
	recVibe      string
	recProvider  string
	recRelayURL  string
	recModel     string
	recSortKey   string
	recDirection string
	recJSON      bool
	recVerbose   bool
)

func init() {
	f := recommendCmd.Flags()
	f.StringVarP(&recTestType, "test-type", "t", string(types.TestIELTS), "Test type: IELTS or TOEFL")
	f.StringVar(&recOverall, "overall", "", "Overall score")
	f.StringVar(&recReading, "reading", "", "Reading score")
	f.StringVar(&recWriting, "writing", "", "Writing score")
	f.StringVar(&recListening, "listening", "", "Listening score")
	f.StringVar(&recSpeaking, "speaking", "", "Speaking score")
	f.StringVar(&recProvince, "province", "", "Home province")
	f.StringVar(&recCity, "city", "", "Preferred city or region")
	f.StringSliceVar(&recSubjects, "subjects", nil, "Subject keywords (comma-separated)")
	f.StringVar(&recVibe, "vibe", "", "Tone of the reasoning: S, M or H")
	f.StringVar(&recProvider, "provider", providerRelay, "Model access: relay, dashscope or gemini")
	f.StringVar(&recRelayURL, "relay-url", "", "Relay endpoint (default: ADVISOR_RELAY_URL)")
	f.StringVar(&recModel, "model", "", "Model name (default: ADVISOR_MODEL, or GEMINI_MODEL for gemini)")
	f.StringVar(&recSortKey, "sort", string(presentation.SortByQSRanking), "Sort key: qsRanking, name or successProbability")
	f.StringVar(&recDirection, "direction", string(presentation.Ascending), "Sort direction: ascending or descending")
	f.BoolVar(&recJSON, "json", false, "Print the results as JSON")
	f.BoolVarP(&recVerbose, "verbose", "v", false, "Log pipeline progress to stderr")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	scores, err := scoresFromFlags(cmd)
	if err != nil {
		return err
	}
	if !scores.CanSubmit() {
		return fmt.Errorf("all five scores are required")
	}
	sortState, err := presentation.ParseSortState(recSortKey, recDirection)
	if err != nil {
		return err
	}
	vibe := types.Vibe(strings.ToUpper(recVibe))
	switch vibe {
	case "", types.VibeSubtle, types.VibeMedium, types.VibeHigh:
	default:
		return fmt.Errorf("unknown vibe %q (want S, M or H)", recVibe)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if recVerbose {
		if log, err = logger.New("debug", "console"); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if in, err := scores.ToRecommendInput(); err == nil {
			in.Province, in.CityPreference, in.Subjects, in.Vibe = recProvince, recCity, recSubjects, vibe
			observability.NewPrinter(cmd.ErrOrStderr()).PrintRequest(scores, in)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	generator, closeFn, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	session := presentation.NewSession(advisor.NewFetcher(generator, log), log)
	session.SetSort(sortState)
	prefs := presentation.Preferences{
		Province:       recProvince,
		CityPreference: recCity,
		Subjects:       recSubjects,
		Vibe:           vibe,
	}
	if err := session.Submit(ctx, scores, prefs); err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	view := session.View()
	out := cmd.OutOrStdout()
	if recJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(view)
	}
	observability.NewPrinter(out).PrintView(view)
	return nil
}

// scoresFromFlags starts from the test's form defaults and applies the score
// flags that were given.
func scoresFromFlags(cmd *cobra.Command) (types.ScoreInput, error) {
	var scores types.ScoreInput
	switch types.TestKind(strings.ToUpper(recTestType)) {
	case types.TestIELTS:
		scores = types.DefaultIELTSScores()
	case types.TestTOEFL:
		scores = types.DefaultTOEFLScores()
	default:
		return scores, fmt.Errorf("unknown test type %q (want IELTS or TOEFL)", recTestType)
	}

	for name, dst := range map[string]*string{
		"overall":   &scores.Overall,
		"reading":   &scores.Reading,
		"writing":   &scores.Writing,
		"listening": &scores.Listening,
		"speaking":  &scores.Speaking,
	} {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			*dst = strings.TrimSpace(flag.Value.String())
		}
	}
	return scores, nil
}

// newGenerator builds the model access path selected by --provider. The
// returned func releases any client resources.
func newGenerator(ctx context.Context, cfg *config.Config) (advisor.Generator, func(), error) {
	noop := func() {}

	switch recProvider {
	case providerRelay:
		url := recRelayURL
		if url == "" {
			url = cfg.RelayURL
		}
		gen := advisor.NewRelayGenerator(url)
		gen.Model = firstNonEmpty(recModel, cfg.Model)
		return gen, noop, nil

	case providerDashScope:
		if err := cfg.RequireDashScopeKey(); err != nil {
			return nil, noop, err
		}
		model := firstNonEmpty(recModel, cfg.Model)
		client, err := llm.NewDashScopeClient(cfg.DashScopeURL, cfg.DashScopeAPIKey, llm.DefaultDashScopeConfig().WithModel(model), nil)
		if err != nil {
			return nil, noop, err
		}
		return &advisor.DashScopeGenerator{Client: client, Model: model}, noop, nil

	case providerGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, noop, fmt.Errorf("GEMINI_API_KEY environment variable is required for --provider gemini")
		}
		llmCfg := llm.DefaultGeminiConfig().WithModel(firstNonEmpty(recModel, cfg.GeminiModel))
		client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.GeminiAPIKey)
		if err != nil {
			return nil, noop, err
		}
		return client, func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown provider %q (want relay, dashscope or gemini)", recProvider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
