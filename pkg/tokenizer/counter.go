// Package tokenizer estimates token consumption for prompt text so
// projected usage can be fed through the tier and cost engine before
// any API call is made.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// encodingForModel maps OpenAI model names to tiktoken encoding names.
var encodingForModel = map[string]string{
	"gpt-4o":        "o200k_base",
	"gpt-4o-mini":   "o200k_base",
	"o1":            "o200k_base",
	"o1-mini":       "o200k_base",
	"o3-mini":       "o200k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-4":         "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",
}

// Estimate returns the token count for the given text and model.
// OpenAI models use tiktoken; other providers use character-based
// estimation.
func Estimate(text, provider, model string) (int64, error) {
	if strings.EqualFold(provider, "openai") {
		return countOpenAI(text, model)
	}
	return estimateByLength(text), nil
}

// countOpenAI uses tiktoken to count tokens for OpenAI models.
func countOpenAI(text, model string) (int64, error) {
	encName, ok := encodingForModel[strings.ToLower(model)]
	if !ok {
		// Fall back to cl100k_base for unknown OpenAI models
		encName = "cl100k_base"
	}

	var enc tokenizer.Codec
	var err error

	switch encName {
	case "o200k_base":
		enc, err = tokenizer.Get(tokenizer.O200kBase)
	case "cl100k_base":
		enc, err = tokenizer.Get(tokenizer.Cl100kBase)
	default:
		return estimateByLength(text), nil
	}

	if err != nil {
		return 0, fmt.Errorf("load encoding %s: %w", encName, err)
	}

	ids, _, err := enc.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}

	return int64(len(ids)), nil
}

// estimateByLength approximates 4 characters per token. Used for
// providers without a public tokenizer.
func estimateByLength(text string) int64 {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return 0
	}
	return int64((len(text) + 3) / 4) // ceiling division by 4
}

// EstimateDaily projects token consumption for a daily call volume:
// tokens for one prompt times calls per day.
func EstimateDaily(text, provider, model string, callsPerDay int64) (int64, error) {
	perCall, err := Estimate(text, provider, model)
	if err != nil {
		return 0, err
	}
	return perCall * callsPerDay, nil
}
