package report

import (
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/guttosm/pricemachine/internal/domain/models"
	"github.com/guttosm/pricemachine/internal/metrics"
)

// DefaultPath is where the interactive export writes the report.
const DefaultPath = "prices.html"

var htmlTemplate = template.Must(template.New("report").Parse(`<html><head><meta charset="UTF-8"><title>Price List</title></head><body><table border="1">
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><td>{{.Number}}</td><td>{{.Product}}</td><td>{{.Price}}</td><td>{{.Weight}}</td><td>{{.SourceFile}}</td><td>{{.PricePerUnit}}</td></tr>
{{end}}</table></body></html>
`))

// WriteHTML renders records as an HTML table ordered by ascending price per unit.
func WriteHTML(w io.Writer, records []models.PriceRecord) error {
	data := struct {
		Columns []string
		Rows    []Row
	}{Columns: Columns, Rows: Rows(records)}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// ExportHTML writes the HTML report to path, replacing any existing file.
func ExportHTML(path string, records []models.PriceRecord) (err error) {
	defer func() { metrics.RecordExport("html", err) }()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return WriteHTML(f, records)
}
