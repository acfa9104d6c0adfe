// Package currency converts monetary amounts between currencies,
// bridging through USD with per-currency rounding, a TTL-cached rate
// table and a hardcoded fallback of last resort.
package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupportedCurrency is returned by strict conversions when a rate
// is missing from the active table.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// cacheTTL is how long a loaded rate table is served before the source
// is consulted again.
const cacheTTL = 5 * time.Minute

// stalenessThreshold is how old the fallback table may grow before the
// advisory staleness report flags it.
const stalenessThreshold = 30 * 24 * time.Hour

// Status tags a Conversion result so callers branch consciously
// instead of trusting a bare number.
type Status string

const (
	// StatusConverted means the amount was converted at table rates.
	StatusConverted Status = "converted"
	// StatusUnchanged means a rate was missing and the original amount
	// passed through untouched.
	StatusUnchanged Status = "unchanged"
)

// Conversion is the result of a currency conversion.
type Conversion struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Status Status  `json:"status"`
	Reason string  `json:"reason,omitempty"`
}

// AuditedConversion pairs a conversion with its effective rate and a
// traceable id.
type AuditedConversion struct {
	Conversion
	ID        string    `json:"id"`
	Rate      float64   `json:"rate"` // toRate/fromRate, 4 decimals
	Timestamp time.Time `json:"timestamp"`
}

// StalenessReport describes how old the fallback rate table is.
// Advisory only; it never blocks conversion.
type StalenessReport struct {
	IsStale bool   `json:"is_stale"`
	DaysOld int    `json:"days_old"`
	Warning string `json:"warning,omitempty"`
}

// Converter converts amounts between currencies. Safe for concurrent
// use; the rate cache tolerates racing refreshes (the fetch is
// idempotent and the last writer wins).
type Converter struct {
	source RateSource
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	rates    map[string]float64
	loadedAt time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithNowFunc overrides the converter's time source for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// NewConverter creates a converter. A nil source pins the converter to
// the hardcoded fallback table; a nil logger uses slog.Default.
func NewConverter(source RateSource, logger *slog.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Converter{
		source: source,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// activeRates returns the rate table to convert with: the TTL-cached
// source table when a source is configured, the fallback otherwise or
// on load failure.
func (c *Converter) activeRates(ctx context.Context) map[string]float64 {
	if c.source == nil {
		return fallbackRates
	}

	c.mu.Lock()
	if c.rates != nil && c.now().Sub(c.loadedAt) < cacheTTL {
		rates := c.rates
		c.mu.Unlock()
		return rates
	}
	c.mu.Unlock()

	loaded, err := c.source.Load(ctx)
	if err != nil {
		c.logger.Warn("rate source load failed, using fallback table", "error", err)
		return fallbackRates
	}

	rates := make(map[string]float64, len(loaded))
	for _, r := range loaded {
		rates[strings.ToUpper(r.Code)] = r.PerUSD
	}

	c.mu.Lock()
	c.rates = rates
	c.loadedAt = c.now()
	c.mu.Unlock()
	return rates
}

// Convert converts amount from one currency to another, degrading
// gracefully: a missing rate logs a warning and passes the original
// amount through with StatusUnchanged.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) Conversion {
	conv, _ := c.convert(ctx, amount, from, to, false)
	return conv
}

// ConvertStrict is Convert with missing rates treated as an error
// rather than a passthrough.
func (c *Converter) ConvertStrict(ctx context.Context, amount float64, from, to string) (Conversion, error) {
	return c.convert(ctx, amount, from, to, true)
}

func (c *Converter) convert(ctx context.Context, amount float64, from, to string, strict bool) (Conversion, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return Conversion{Amount: amount, From: from, To: to, Status: StatusConverted}, nil
	}

	rates := c.activeRates(ctx)
	fromRate, fromOK := rates[from]
	toRate, toOK := rates[to]

	if !fromOK || !toOK || fromRate == 0 {
		missing := from
		if fromOK && fromRate != 0 {
			missing = to
		}
		if strict {
			return Conversion{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, missing)
		}
		c.logger.Warn("missing exchange rate, returning amount unchanged",
			"from", from, "to", to, "missing", missing)
		return Conversion{
			Amount: amount,
			From:   from,
			To:     to,
			Status: StatusUnchanged,
			Reason: fmt.Sprintf("no rate for %s", missing),
		}, nil
	}

	usdAmount := amount / fromRate
	result := roundTo(usdAmount*toRate, Decimals(to))
	return Conversion{Amount: result, From: from, To: to, Status: StatusConverted}, nil
}

// ConvertWithAudit converts non-strictly and records the effective
// rate ratio and timestamp for traceability.
func (c *Converter) ConvertWithAudit(ctx context.Context, amount float64, from, to string) AuditedConversion {
	conv := c.Convert(ctx, amount, from, to)

	rate := 1.0
	if conv.Status == StatusConverted {
		rates := c.activeRates(ctx)
		fromRate := rates[strings.ToUpper(from)]
		toRate := rates[strings.ToUpper(to)]
		if strings.EqualFold(from, to) {
			rate = 1.0
		} else if fromRate != 0 {
			rate = roundTo(toRate/fromRate, 4)
		}
	}

	return AuditedConversion{
		Conversion: conv,
		ID:         uuid.New().String(),
		Rate:       rate,
		Timestamp:  c.now(),
	}
}

// Staleness reports how old the fallback table snapshot is against a
// 30-day threshold.
func (c *Converter) Staleness() StalenessReport {
	updated, err := time.Parse("2006-01-02", fallbackUpdated)
	if err != nil {
		return StalenessReport{IsStale: true, Warning: "fallback table has no valid snapshot date"}
	}

	age := c.now().Sub(updated)
	daysOld := int(age.Hours() / 24)
	if daysOld < 0 {
		daysOld = 0
	}

	report := StalenessReport{DaysOld: daysOld}
	if age > stalenessThreshold {
		report.IsStale = true
		report.Warning = fmt.Sprintf("exchange rates are %d days old; conversions may be inaccurate", daysOld)
	}
	return report
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(x*factor) / factor
}
