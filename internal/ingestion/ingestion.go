package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guttosm/pricemachine/internal/logger"
	"github.com/guttosm/pricemachine/internal/metrics"
	"github.com/guttosm/pricemachine/internal/storage"
)

const (
	defaultNameFragment = "price"
	defaultExtension    = ".csv"
)

// Options controls which directory entries are treated as price lists.
//
//   - NameFragment: matched case-insensitively against the file name.
//   - Extension: required file name suffix, matched case-sensitively.
type Options struct {
	NameFragment string
	Extension    string
}

// DefaultOptions selects "*price*.csv" files.
func DefaultOptions() Options {
	return Options{NameFragment: defaultNameFragment, Extension: defaultExtension}
}

func (o Options) withDefaults() Options {
	if o.NameFragment == "" {
		o.NameFragment = defaultNameFragment
	}
	if o.Extension == "" {
		o.Extension = defaultExtension
	}
	return o
}

// Report is the outcome of one ingestion run.
type Report struct {
	Files    []FileResult
	Problems []*Problem
}

// Records returns the number of records stored across all files.
func (r *Report) Records() int {
	n := 0
	for _, f := range r.Files {
		n += f.Records
	}
	return n
}

// DiscoverFiles lists the price list files directly inside dir (no recursion),
// in the lexical order returned by os.ReadDir.
func DiscoverFiles(dir string, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	fragment := strings.ToLower(opts.NameFragment)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(strings.ToLower(name), fragment) {
			continue
		}
		if !strings.HasSuffix(name, opts.Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// ProcessDirectory ingests every price list in dir into store.
//
// Behavior:
//   - Files are processed one at a time, in discovery order.
//   - A file without product/price/weight columns is skipped and reported.
//   - A row that cannot be converted is skipped and reported; the rest of the
//     file is still read.
//
// Returns:
//   - *Report: per-file results and every reported problem (also on error).
//   - error: unreadable directory, I/O failure or cancelled context.
func ProcessDirectory(ctx context.Context, dir string, store storage.PriceStore, opts Options) (*Report, error) {
	files, err := DiscoverFiles(dir, opts)
	if err != nil {
		return nil, err
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("ingestion start")

	report := &Report{}
	for idx, file := range files {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("ingestion cancelled: %w", err)
		}

		start := time.Now()
		base := filepath.Base(file)
		logger.L().Debug().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

		res, problems, err := parseAndStoreFile(file, store)
		report.Problems = append(report.Problems, problems...)
		if err != nil {
			logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
			return report, fmt.Errorf("file %s: %w", file, err)
		}
		report.Files = append(report.Files, res)

		if res.Abandoned {
			metrics.RecordFileAbandoned()
			continue
		}
		metrics.RecordFileIngested(res.Records, res.Skipped, time.Since(start))
		logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).
			Int("rows", res.Records).Int("skipped", res.Skipped).Dur("elapsed", time.Since(start)).Msg("file done")
	}

	metrics.UpdateStoreRecords(store.Len())
	logger.L().Info().Int("files", len(report.Files)).Int("records", report.Records()).
		Int("store", store.Len()).Int("problems", len(report.Problems)).Msg("ingestion completed")
	return report, nil
}
