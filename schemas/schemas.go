// Package schemas embeds the JSON Schemas for model output and API responses.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	Recommendations   = "recommendations.schema.json"
	RecommendResponse = "recommend_response.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the schema document called name.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files.
func Names() []string {
	entries, _ := files.ReadDir(".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
