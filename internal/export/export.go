// Package export renders the two tabular report surfaces: the full athlete
// registry and the sold-only auction report. Both are pure derivations of
// current state with no feedback into the core.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/madrasbay/auctionhall/internal/models"
)

// Registry writes the full athlete registry as CSV: every athlete with its
// role, current valuation (sold price when sold, base price otherwise), and
// acquisition status.
func Registry(w io.Writer, athletes []models.Athlete) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Role", "Purse Value", "Status"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range athletes {
		a := &athletes[i]
		value := a.BasePrice
		status := "Free Agent"
		if a.IsSold {
			value = a.SoldPrice
			status = "Acquired"
		}
		row := []string{a.Name, a.Role, strconv.Itoa(value), status}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", a.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SoldReport writes the sold-only auction report as CSV: each acquired
// athlete with its purchasing franchise and hammer price. The purchaser is
// resolved from the franchise list, "N/A" when the owning ID is unknown.
func SoldReport(w io.Writer, athletes []models.Athlete, franchises []models.Franchise) error {
	names := make(map[string]string, len(franchises))
	for i := range franchises {
		names[franchises[i].ID] = franchises[i].Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Player", "Role", "Purchaser", "Value"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range athletes {
		a := &athletes[i]
		if !a.IsSold {
			continue
		}
		purchaser, ok := names[a.TeamID]
		if !ok {
			purchaser = "N/A"
		}
		row := []string{a.Name, a.Role, purchaser, strconv.Itoa(a.SoldPrice)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", a.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
