// Package tokenmath converts raw on-chain token supply strings into
// human-readable token amounts without going through floating point on the
// raw integer.
package tokenmath

import (
	"fmt"
	"math/big"
	"strings"
)

// DefaultDecimals is assumed when the explorer omits the decimals field.
const DefaultDecimals = 18

// DisplayPrecision is the number of fractional digits in formatted amounts.
const DisplayPrecision = 2

// FormatUnits divides a raw big-integer supply string by 10^decimals and
// renders the result with two fractional digits. The division is exact; extra
// fractional digits are truncated, not rounded.
func FormatUnits(raw string, decimals int) (string, error) {
	units, err := scale(raw, decimals)
	if err != nil {
		return "", err
	}

	// FloatString rounds; render via the truncated quotient instead.
	intPart := new(big.Int)
	rem := new(big.Int)
	intPart.QuoRem(units.Num(), units.Denom(), rem)

	// rem / denom scaled to DisplayPrecision digits, truncated.
	frac := new(big.Int).Mul(rem, pow10(DisplayPrecision))
	frac.Quo(frac, units.Denom())

	fracStr := frac.String()
	for len(fracStr) < DisplayPrecision {
		fracStr = "0" + fracStr
	}

	return intPart.String() + "." + fracStr, nil
}

// Tokens returns the scaled supply as a float64 for derived arithmetic
// (investment estimates, aggregate sums). The exact rational quotient is
// computed first, so supplies representable in a float64 convert losslessly.
func Tokens(raw string, decimals int) (float64, error) {
	units, err := scale(raw, decimals)
	if err != nil {
		return 0, err
	}
	f, _ := units.Float64()
	return f, nil
}

// scale parses raw as a base-10 integer and returns raw / 10^decimals.
func scale(raw string, decimals int) (*big.Rat, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty supply string")
	}
	if decimals <= 0 {
		decimals = DefaultDecimals
	}

	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid supply string %q", raw)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("negative supply %q", raw)
	}

	return new(big.Rat).SetFrac(n, pow10(decimals)), nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
