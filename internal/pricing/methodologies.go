// Package pricing holds the per-methodology carbon price table used to derive
// investment estimates from token supply.
package pricing

import "strings"

// DefaultPricePerTon is applied to methodologies not in the table, in USD.
const DefaultPricePerTon = 15.0

// Currency for every price in the table.
const Currency = "USD"

// pricePerTon maps a methodology or standard code to its indicative USD price
// per ton of CO2e. Figures track the voluntary market's typical ranges per
// standard, not live quotes.
var pricePerTon = map[string]float64{
	"VCS":    12.50,
	"VM0007": 14.00,
	"VM0015": 13.25,
	"GS":     18.00,
	"CDM":    9.75,
	"IREC":   22.00,
	"ACR":    11.00,
	"CAR":    10.50,
}

// PricePerTon returns the indicative USD price per ton for a methodology,
// falling back to DefaultPricePerTon for unknown codes.
func PricePerTon(methodology string) float64 {
	code := strings.ToUpper(strings.TrimSpace(methodology))
	if price, ok := pricePerTon[code]; ok {
		return price
	}
	return DefaultPricePerTon
}

// InvestmentEstimate values a token supply at the methodology's price.
func InvestmentEstimate(tokens float64, methodology string) float64 {
	return tokens * PricePerTon(methodology)
}

// Known reports whether the methodology has an explicit table entry.
func Known(methodology string) bool {
	_, ok := pricePerTon[strings.ToUpper(strings.TrimSpace(methodology))]
	return ok
}
