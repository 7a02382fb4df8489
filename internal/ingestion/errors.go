package ingestion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn marks a file that lacks a resolvable product, price or weight column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrRowConversion marks a data row whose price or weight could not be turned into a record.
	ErrRowConversion = errors.New("row conversion failed")
)

// ProblemKind classifies a non-fatal ingestion problem.
type ProblemKind string

const (
	KindMissingColumn ProblemKind = "missing_column"
	KindRowConversion ProblemKind = "row_conversion"
)

func (k ProblemKind) sentinel() error {
	if k == KindMissingColumn {
		return ErrMissingColumn
	}
	return ErrRowConversion
}

// Problem is a diagnostic collected during ingestion. Problems are reported,
// never returned as errors: a file-level problem skips one file, a row-level
// problem skips one row.
//
// errors.Is matches both the kind sentinel and anything in the Err chain.
type Problem struct {
	Kind ProblemKind
	File string // base name of the file
	Line int    // 0 for file-level problems
	Err  error  // underlying cause
}

func (p *Problem) Error() string {
	if p.Line > 0 {
		return fmt.Sprintf("file %s, line %d: %v: %v", p.File, p.Line, p.Kind.sentinel(), p.Err)
	}
	return fmt.Sprintf("file %s: %v: %v", p.File, p.Kind.sentinel(), p.Err)
}

func (p *Problem) Unwrap() []error { return []error{p.Kind.sentinel(), p.Err} }

func missingColumnProblem(file string, roles []string) *Problem {
	return &Problem{
		Kind: KindMissingColumn,
		File: file,
		Err:  fmt.Errorf("no column for %s", strings.Join(roles, ", ")),
	}
}

func rowProblem(file string, line int, err error) *Problem {
	return &Problem{
		Kind: KindRowConversion,
		File: file,
		Line: line,
		Err:  err,
	}
}
