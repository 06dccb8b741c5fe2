// Package export renders the project table as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
)

// columns is the export layout, shared by both formats. The provenance
// column is last so estimated rows stay identifiable outside the app.
var columns = []string{
	"Project ID",
	"Name",
	"Type",
	"Location",
	"Country",
	"Registry",
	"Methodology",
	"Total Supply",
	"Available",
	"Retired",
	"CO2 Reduction (tCO2e)",
	"Price (USD/t)",
	"Investment Estimate (USD)",
	"Holders",
	"Data Source",
}

// rowFor flattens one project into the export layout.
func rowFor(p *projects.ProjectData) []string {
	return []string{
		p.ID,
		p.Name,
		p.Type,
		p.Location,
		p.Country,
		p.Registry,
		p.Methodology,
		formatFloat(p.Supply.Total),
		formatFloat(p.Supply.Available),
		formatFloat(p.Supply.Retired),
		p.CO2Reduction.Total,
		formatFloat(p.Pricing.CurrentPrice),
		formatFloat(p.InvestmentEstimate),
		strconv.FormatInt(p.Holders, 10),
		string(p.DataSource),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteCSV writes the project table to w with a header row.
func WriteCSV(w io.Writer, list []*projects.ProjectData) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range list {
		if err := writer.Write(rowFor(p)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", p.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
