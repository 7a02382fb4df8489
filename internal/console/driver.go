// Package console implements the interactive search prompt.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/pricemachine/internal/ingestion"
	"github.com/guttosm/pricemachine/internal/logger"
	"github.com/guttosm/pricemachine/internal/report"
	"github.com/guttosm/pricemachine/internal/service"
)

const (
	searchPrompt = `Введите название товара для поиска или "exit" для выхода: `
	exportPrompt = "Хотите экспортировать данные в HTML? (да/нет): "

	exitCommand = "exit"
	affirmative = "да"
)

// Exporter writes the full report to path; app.Exporter in production.
type Exporter func(path string) error

// Driver runs the query loop over an already ingested aggregate.
type Driver struct {
	svc        service.PriceService
	export     Exporter
	exportPath string
}

// NewDriver builds a Driver. exportPath defaults to report.DefaultPath.
func NewDriver(svc service.PriceService, export Exporter, exportPath string) *Driver {
	if exportPath == "" {
		exportPath = report.DefaultPath
	}
	return &Driver{svc: svc, export: export, exportPath: exportPath}
}

// PrintProblems writes one diagnostic line per ingestion problem.
func PrintProblems(out io.Writer, problems []*ingestion.Problem) {
	for _, p := range problems {
		switch p.Kind {
		case ingestion.KindMissingColumn:
			fmt.Fprintf(out, "В файле '%s' не найдены все необходимые столбцы.\n", p.File)
		default:
			fmt.Fprintf(out, "Ошибка обработки данных в файле %s (строка %d): %v\n", p.File, p.Line, p.Err)
		}
	}
}

// Run reads queries from in until "exit" (any case) or end of input, printing
// result tables to out. It then offers to export and exports only on "да".
func (d *Driver) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, searchPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		query := strings.TrimRight(scanner.Text(), "\r")
		if strings.EqualFold(query, exitCommand) {
			fmt.Fprintln(out, "Работа завершена.")
			break
		}

		results := d.svc.Search(ctx, query)
		logger.L().Debug().Str("query", query).Int("matches", len(results)).Msg("search")
		if len(results) == 0 {
			fmt.Fprintln(out, "Совпадения не найдены.")
			continue
		}
		if err := report.WriteTable(out, results); err != nil {
			return fmt.Errorf("print results: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read query: %w", err)
	}

	fmt.Fprint(out, exportPrompt)
	if !scanner.Scan() {
		fmt.Fprintln(out)
		return scanner.Err()
	}
	if !strings.EqualFold(strings.TrimRight(scanner.Text(), "\r"), affirmative) {
		return nil
	}

	if err := d.export(d.exportPath); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(out, "Данные экспортированы в '%s'.\n", d.exportPath)
	logger.L().Info().Str("path", d.exportPath).Msg("report exported")
	return nil
}
