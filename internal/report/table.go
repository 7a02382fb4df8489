package report

import (
	"fmt"
	"io"

	"github.com/guttosm/pricemachine/internal/domain/models"
)

const tableLayout = "%-4v %-40v %-10v %-8v %-15v %-12v\n"

// WriteTable prints records as a fixed-width console table with a header line.
// Widths are counted in runes, so Cyrillic names line up.
func WriteTable(w io.Writer, records []models.PriceRecord) error {
	if _, err := fmt.Fprintf(w, tableLayout, Columns[0], Columns[1], Columns[2], Columns[3], Columns[4], Columns[5]); err != nil {
		return err
	}
	for _, r := range Rows(records) {
		if _, err := fmt.Fprintf(w, tableLayout, r.Number, r.Product, r.Price, r.Weight, r.SourceFile, r.PricePerUnit); err != nil {
			return err
		}
	}
	return nil
}
