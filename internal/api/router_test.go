package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pricemachine/internal/domain/dto"
	"github.com/guttosm/pricemachine/internal/domain/models"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockPriceService{records: []models.PriceRecord{mustRecord(t, "Сметана", 100, 0.5, "price_a.csv")}}
	r := NewRouter(NewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prices?q=%D1%81%D0%BC%D0%B5%D1%82", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out dto.SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Count != 1 || out.Items[0].Product != "Сметана" || out.Items[0].PricePerUnit != 200 {
		t.Fatalf("unexpected body: %+v", out)
	}
	if svc.lastQuery != "смет" {
		t.Fatalf("query not forwarded, got %q", svc.lastQuery)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockPriceService{}))

	// one request so the http collectors have a sample
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "pricemachine_") {
		t.Fatalf("expected namespaced metrics in output")
	}
}
