// Package advisor turns a score profile into university recommendations:
// it builds the prompt, obtains model text, recovers the JSON object and
// filters it to the QS top 200.
package advisor

import (
	"strconv"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/prompts"
	"github.com/jonathan/admissions-advisor/internal/types"
)

const promptFile = "advisor.json"

// BuildPrompt renders the recommendation prompt for in. It is pure: equal
// inputs always produce the same string.
func BuildPrompt(in types.RecommendInput) string {
	unspecified := prompts.MustGet(promptFile, "default-unspecified")

	province := in.Province
	if province == "" {
		province = prompts.MustGet(promptFile, "default-province")
	}
	city := in.CityPreference
	if city == "" {
		city = unspecified
	}
	subjects := unspecified
	if len(in.Subjects) > 0 {
		subjects = strings.Join(in.Subjects, ", ")
	}

	guide := prompts.Format(prompts.MustGet(promptFile, "style-guide"), map[string]string{
		"Tone": toneFor(in.Vibe),
	})

	prompt := prompts.Format(prompts.MustGet(promptFile, "recommend-universities"), map[string]string{
		"StyleGuide":     guide,
		"Score":          formatScore(in.Score),
		"Province":       province,
		"CityPreference": city,
		"Subjects":       subjects,
	})
	return strings.TrimSpace(prompt)
}

// toneFor returns the style line for vibe. Unknown or empty vibes use the medium tone.
func toneFor(vibe types.Vibe) string {
	switch vibe {
	case types.VibeSubtle, types.VibeHigh:
	default:
		vibe = types.VibeMedium
	}
	return prompts.MustGet(promptFile, "tone-"+string(vibe))
}

// formatScore renders the score in its shortest form: 7.5 as "7.5", 100 as "100".
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
