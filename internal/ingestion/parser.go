package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guttosm/pricemachine/internal/domain/models"
	"github.com/guttosm/pricemachine/internal/logger"
	"github.com/guttosm/pricemachine/internal/storage"
)

const utf8BOM = "\uFEFF"

// FileResult summarizes the ingestion of one price list file.
type FileResult struct {
	Name      string // base name
	Records   int    // rows stored
	Skipped   int    // rows rejected
	Abandoned bool   // a required column was missing; nothing was stored
}

// columns holds the resolved positions of the three required columns.
type columns struct {
	product, price, weight int
}

// resolveColumns maps the header onto the required columns. It returns the
// roles that could not be resolved.
func resolveColumns(header []string) (columns, []string) {
	cols := columns{
		product: resolveIndex(header, ProductFragments),
		price:   resolveIndex(header, PriceFragments),
		weight:  resolveIndex(header, WeightFragments),
	}

	var missing []string
	if cols.product < 0 {
		missing = append(missing, "product")
	}
	if cols.price < 0 {
		missing = append(missing, "price")
	}
	if cols.weight < 0 {
		missing = append(missing, "weight")
	}
	return cols, missing
}

// parseAndStoreFile opens, validates and parses one file, appending the valid
// rows to store once the whole file has been read.
//
// It reports (but does not fail on):
//   - a header without a product, price or weight column (whole file skipped)
//   - rows whose price/weight cannot be converted (row skipped)
//
// It fails on unrecoverable I/O errors.
func parseAndStoreFile(path string, store storage.PriceStore) (FileResult, []*Problem, error) {
	base := filepath.Base(path)
	res := FileResult{Name: base}

	f, err := os.Open(path)
	if err != nil {
		return res, nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ','
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // short rows are reported per row

	// An empty file or an unparsable header leaves no columns to resolve.
	header, err := r.Read()
	var pe *csv.ParseError
	if err != nil && !errors.Is(err, io.EOF) && !errors.As(err, &pe) {
		return res, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	cols, missing := resolveColumns(header)
	if len(missing) > 0 {
		res.Abandoned = true
		p := missingColumnProblem(base, missing)
		logger.L().Debug().Str("file", base).Strs("missing", missing).Msg("required columns not found, file skipped")
		return res, []*Problem{p}, nil
	}

	var (
		buf      []models.PriceRecord
		problems []*Problem
	)

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.As(err, &pe) {
				problems = append(problems, rowProblem(base, pe.StartLine, pe.Err))
				res.Skipped++
				logger.L().Debug().Str("file", base).Int("line", pe.StartLine).Err(pe.Err).Msg("row skipped")
				continue
			}
			return res, problems, fmt.Errorf("read: %w", err)
		}
		line, _ := r.FieldPos(0)

		pr, err := recordToPrice(rec, cols, base)
		if err != nil {
			problems = append(problems, rowProblem(base, line, err))
			res.Skipped++
			logger.L().Debug().Str("file", base).Int("line", line).Err(err).Msg("row skipped")
			continue
		}
		buf = append(buf, pr)
	}

	store.Append(buf...)
	res.Records = len(buf)
	return res, problems, nil
}

// recordToPrice converts one CSV record into a PriceRecord using the resolved
// columns. The product text is kept verbatim; numeric cells are trimmed.
func recordToPrice(rec []string, cols columns, file string) (models.PriceRecord, error) {
	product, err := cell(rec, cols.product, "product")
	if err != nil {
		return models.PriceRecord{}, err
	}
	priceText, err := cell(rec, cols.price, "price")
	if err != nil {
		return models.PriceRecord{}, err
	}
	weightText, err := cell(rec, cols.weight, "weight")
	if err != nil {
		return models.PriceRecord{}, err
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(priceText), 64)
	if err != nil {
		return models.PriceRecord{}, fmt.Errorf("invalid price %q: %w", priceText, err)
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(weightText), 64)
	if err != nil {
		return models.PriceRecord{}, fmt.Errorf("invalid weight %q: %w", weightText, err)
	}

	return models.NewPriceRecord(product, price, weight, file)
}

func cell(rec []string, idx int, role string) (string, error) {
	if idx >= len(rec) {
		return "", fmt.Errorf("no value for %s column (row has %d fields)", role, len(rec))
	}
	return rec[idx], nil
}
