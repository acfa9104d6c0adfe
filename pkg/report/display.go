package report

import "strings"

// DisplayMeta is the presentation name and chart color for one
// dimension value.
type DisplayMeta struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// DisplayConfig maps dimension keys (lower-cased) to display metadata.
// Unknown keys fall back to a generic entry rather than erroring.
type DisplayConfig map[string]DisplayMeta

// genericColor is used for dimension values with no configured entry.
const genericColor = "#9ca3af"

// DefaultDisplay covers the providers and models the dashboards chart
// most often.
var DefaultDisplay = DisplayConfig{
	"openai":    {Name: "OpenAI", Color: "#10a37f"},
	"anthropic": {Name: "Anthropic", Color: "#d97757"},
	"google":    {Name: "Google", Color: "#4285f4"},
	"azure":     {Name: "Azure OpenAI", Color: "#0078d4"},
	"mistral":   {Name: "Mistral", Color: "#ff7000"},
	"meta":      {Name: "Meta", Color: "#0668e1"},
	"cohere":    {Name: "Cohere", Color: "#39594d"},
}

// Lookup returns display metadata for a key, falling back to the key
// itself with a generic color.
func (d DisplayConfig) Lookup(key string) DisplayMeta {
	if meta, ok := d[strings.ToLower(key)]; ok {
		return meta
	}
	return DisplayMeta{Name: key, Color: genericColor}
}
