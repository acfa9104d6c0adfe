package currency

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RateSource loads an exchange-rate table from an external source.
// This is the converter's only asynchronous boundary; load failures
// are absorbed by the fallback table and never surface to callers.
type RateSource interface {
	Load(ctx context.Context) ([]ExchangeRate, error)
}

// FileRateSource reads rates from a YAML file maintained by an
// out-of-band sync job.
type FileRateSource struct {
	Path string
}

type rateFile struct {
	Updated string         `yaml:"updated"`
	Rates   []ExchangeRate `yaml:"rates"`
}

// Load reads and parses the rate file.
func (s FileRateSource) Load(_ context.Context) ([]ExchangeRate, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read rate file %s: %w", s.Path, err)
	}

	var f rateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rate file %s: %w", s.Path, err)
	}
	if len(f.Rates) == 0 {
		return nil, fmt.Errorf("rate file %s: no rates defined", s.Path)
	}
	return f.Rates, nil
}

// StaticRateSource serves a fixed rate slice; used in tests and for
// rate tables injected by callers.
type StaticRateSource struct {
	Rates []ExchangeRate
	Err   error
}

// Load returns the fixed rates or the configured error.
func (s StaticRateSource) Load(_ context.Context) ([]ExchangeRate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rates, nil
}
