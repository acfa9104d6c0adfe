package currency

import "strings"

// ExchangeRate is one row of a rate table: how many units of the
// currency one US dollar buys.
type ExchangeRate struct {
	Code   string  `yaml:"code" json:"code"`
	PerUSD float64 `yaml:"per_usd" json:"per_usd"`
}

// fallbackUpdated is the snapshot date of the hardcoded table, used by
// the staleness check.
const fallbackUpdated = "2026-08-01"

// fallbackRates is the table of last resort when no rate source is
// configured or the source fails to load.
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.50,
	"INR": 83.12,
	"CNY": 7.24,
	"AUD": 1.52,
	"CAD": 1.36,
	"CHF": 0.88,
	"KRW": 1330.0,
	"SGD": 1.34,
	"SEK": 10.48,
	"NOK": 10.62,
	"BRL": 5.43,
	"MXN": 17.08,
	"TRY": 32.50,
	"KWD": 0.31,
	"BHD": 0.376,
	"OMR": 0.385,
}

// decimalsByCode overrides the 2-decimal default for zero-decimal and
// three-decimal currencies.
var decimalsByCode = map[string]int{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"KWD": 3,
	"BHD": 3,
	"OMR": 3,
}

// Decimals returns the number of decimal places amounts in the given
// currency round to.
func Decimals(code string) int {
	if d, ok := decimalsByCode[strings.ToUpper(code)]; ok {
		return d
	}
	return 2
}

// FallbackRates returns a copy of the hardcoded rate table.
func FallbackRates() map[string]float64 {
	out := make(map[string]float64, len(fallbackRates))
	for k, v := range fallbackRates {
		out[k] = v
	}
	return out
}
