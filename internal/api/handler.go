package api

import (
	"bytes"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pricemachine/internal/domain/dto"
	"github.com/guttosm/pricemachine/internal/middleware"
	"github.com/guttosm/pricemachine/internal/report"
	"github.com/guttosm/pricemachine/internal/service"
)

// maxQueryLen bounds the search fragment, in runes.
const maxQueryLen = 200

// Handler exposes the aggregated price lists over HTTP.
//
// Responsibilities:
//   - Validate the search fragment
//   - Delegate matching and ordering to the PriceService
//   - Render results as JSON or as the HTML report
type Handler struct {
	svc service.PriceService
}

// NewHandler constructs a Handler around svc.
func NewHandler(svc service.PriceService) *Handler {
	return &Handler{svc: svc}
}

// SearchPrices handles GET /api/v1/prices.
//
// Query Parameters:
//   - q (string, optional): product name fragment, case-insensitive. Empty lists everything.
//
// Responses:
//   - 200 OK: matching items ordered by price per unit (possibly none).
//   - 400 Bad Request: q longer than the allowed length.
//
// SearchPrices godoc
// @Summary      Search prices by product name
// @Description  Returns the products whose name contains q, cheapest per unit first
// @Tags         prices
// @Produce      json
// @Param        q    query     string  false  "Product name fragment" example(молоко)
// @Success      200  {object}  dto.SearchResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse   "Bad Request"
// @Router       /api/v1/prices [get]
func (h *Handler) SearchPrices(c *gin.Context) {
	query := c.Query("q")
	if utf8.RuneCountInString(query) > maxQueryLen {
		middleware.AbortWithError(c, http.StatusBadRequest, "query too long", nil)
		return
	}

	matches := h.svc.Search(c.Request.Context(), query)
	c.JSON(http.StatusOK, dto.NewSearchResponse(query, matches))
}

// GetReport handles GET /api/v1/report and renders the same HTML document the
// export writes to disk.
//
// GetReport godoc
// @Summary      HTML price report
// @Description  Every product ordered by price per unit, as an HTML table
// @Tags         prices
// @Produce      html
// @Success      200  {string}  string             "HTML document"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, h.svc.All(c.Request.Context())); err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
