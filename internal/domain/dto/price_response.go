package dto

import "github.com/guttosm/pricemachine/internal/domain/models"

// PriceItem is one row of a search result, numbered in price-per-unit order.
type PriceItem struct {
	Row          int     `json:"row" example:"1"`
	Product      string  `json:"product" example:"Молоко 3,2%"`
	Price        float64 `json:"price" example:"60"`
	Weight       float64 `json:"weight" example:"2"`
	SourceFile   string  `json:"source_file" example:"price_1.csv"`
	PricePerUnit float64 `json:"price_per_unit" example:"30"`
}

// SearchResponse represents the JSON structure returned by GET /api/v1/prices.
type SearchResponse struct {
	Query string      `json:"query" example:"молоко"`
	Count int         `json:"count" example:"1"`
	Items []PriceItem `json:"items"`
}

// NewSearchResponse maps already-sorted records to the API contract.
func NewSearchResponse(query string, records []models.PriceRecord) SearchResponse {
	items := make([]PriceItem, 0, len(records))
	for i, r := range records {
		items = append(items, PriceItem{
			Row:          i + 1,
			Product:      r.Product,
			Price:        r.Price,
			Weight:       r.Weight,
			SourceFile:   r.SourceFile,
			PricePerUnit: r.PricePerUnit,
		})
	}
	return SearchResponse{Query: query, Count: len(items), Items: items}
}
