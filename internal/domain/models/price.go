package models

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
)

var (
	// ErrInvalidPrice is returned when a listed price is negative or not a finite number.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidWeight is returned when a package weight is zero, negative or not finite.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrInvalidPricePerUnit is returned when price / weight is not a finite number.
	ErrInvalidPricePerUnit = errors.New("invalid price per unit")
)

// PriceRecord represents one row ingested from a price list file.
//
// Fields:
//   - Product: item name exactly as found in its source column.
//   - Price: listed price (>= 0).
//   - Weight: listed package mass/volume (> 0).
//   - SourceFile: base name of the file the row came from.
//   - PricePerUnit: Price / Weight, computed once at construction.
//
// Records are passed by value; the aggregate store never hands out
// references to its own copies.
type PriceRecord struct {
	Product      string
	Price        float64
	Weight       float64
	SourceFile   string
	PricePerUnit float64
}

// NewPriceRecord validates the inputs and builds a PriceRecord with its
// derived per-unit price. Only the base name of sourceFile is kept.
func NewPriceRecord(product string, price, weight float64, sourceFile string) (PriceRecord, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return PriceRecord{}, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return PriceRecord{}, fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}

	perUnit := price / weight
	if math.IsInf(perUnit, 0) {
		return PriceRecord{}, fmt.Errorf("%w: %v / %v", ErrInvalidPricePerUnit, price, weight)
	}

	return PriceRecord{
		Product:      product,
		Price:        price,
		Weight:       weight,
		SourceFile:   filepath.Base(sourceFile),
		PricePerUnit: perUnit,
	}, nil
}

// SortByPricePerUnit sorts records in place by ascending price per unit,
// keeping insertion order among equal values.
func SortByPricePerUnit(records []PriceRecord) {
	slices.SortStableFunc(records, func(a, b PriceRecord) int {
		return cmp.Compare(a.PricePerUnit, b.PricePerUnit)
	})
}
