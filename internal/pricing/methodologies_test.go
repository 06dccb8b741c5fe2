package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricePerTon(t *testing.T) {
	assert.Equal(t, 12.50, PricePerTon("VCS"))
	assert.Equal(t, 18.00, PricePerTon("GS"))
	assert.Equal(t, 22.00, PricePerTon("IREC"))

	// Case and whitespace are normalized.
	assert.Equal(t, 12.50, PricePerTon(" vcs "))

	// Unknown methodologies fall back to the default.
	assert.Equal(t, DefaultPricePerTon, PricePerTon("SOMETHING_NEW"))
	assert.Equal(t, DefaultPricePerTon, PricePerTon(""))
}

func TestInvestmentEstimate(t *testing.T) {
	assert.Equal(t, 202.0*12.50, InvestmentEstimate(202, "VCS"))
	assert.Equal(t, 100.0*DefaultPricePerTon, InvestmentEstimate(100, "unknown"))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("VCS"))
	assert.False(t, Known("XYZ"))
}
