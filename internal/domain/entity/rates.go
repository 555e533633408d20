package entity

import "strings"

// BaseCurrency is the common unit every other currency is expressed in.
const BaseCurrency = "chaos"

// RateLine is one entry of the exchange-rate feed.
type RateLine struct {
	ID           string
	PrimaryValue float64
}

// RateTable maps a lower-cased currency identifier to its value in the base
// unit. A populated table always holds BaseCurrency at exactly 1.
type RateTable map[string]float64

// Rate returns the base-unit value of one unit of the currency, 0 for unknown
// identifiers.
func (t RateTable) Rate(currency string) float64 {
	return t[strings.ToLower(currency)]
}

// ChaosValue converts an amount of the given currency into the base unit.
// Zero amounts and unknown or empty currencies valuate to 0, never an error.
func (t RateTable) ChaosValue(amount float64, currency string) float64 {
	if amount == 0 || currency == "" {
		return 0
	}

	return amount * t.Rate(currency)
}

// PriceTier buckets a price for display emphasis.
type PriceTier string

const (
	TierS PriceTier = "S"
	TierA PriceTier = "A"
	TierB PriceTier = "B"
	TierC PriceTier = "C"
)

// Tier classifies a price into a display tier. Total: every input maps to
// exactly one tier.
func (t RateTable) Tier(amount float64, currency string) PriceTier {
	value := t.ChaosValue(amount, currency)
	id := strings.ToLower(currency)

	switch {
	case value >= 100 || strings.Contains(id, "divine") || strings.Contains(id, "mirror"):
		return TierS
	case value >= 15 || strings.Contains(id, "exalted"):
		return TierA
	case value >= 4:
		return TierB
	default:
		return TierC
	}
}
