// Package report renders the aggregate as an HTML document or a console table.
package report

import (
	"slices"
	"strconv"

	"github.com/guttosm/pricemachine/internal/domain/models"
)

// Column titles shared by the HTML report and the console table.
var Columns = []string{"№", "Наименование", "Цена", "Вес", "Файл", "Цена за кг."}

// Row is one formatted line of a report.
type Row struct {
	Number       int
	Product      string
	Price        string
	Weight       string
	SourceFile   string
	PricePerUnit string // always two fraction digits
}

// Rows sorts a copy of records by ascending price per unit and numbers them from 1.
func Rows(records []models.PriceRecord) []Row {
	sorted := slices.Clone(records)
	models.SortByPricePerUnit(sorted)

	rows := make([]Row, 0, len(sorted))
	for i, r := range sorted {
		rows = append(rows, Row{
			Number:       i + 1,
			Product:      r.Product,
			Price:        formatNumber(r.Price),
			Weight:       formatNumber(r.Weight),
			SourceFile:   r.SourceFile,
			PricePerUnit: FormatPricePerUnit(r.PricePerUnit),
		})
	}
	return rows
}

// FormatPricePerUnit renders v with exactly two fraction digits (12.5 -> "12.50").
func FormatPricePerUnit(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
