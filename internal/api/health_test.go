package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := func() error { return nil }
	fail := func() error { return assertErr{} }

	cases := []struct {
		name   string
		checks []func() error
		path   string
		want   int
	}{
		{name: "healthz ok", checks: []func() error{fail}, path: "/healthz", want: 200},
		{name: "readyz no checks", path: "/readyz", want: 200},
		{name: "readyz nil check ignored", checks: []func() error{nil, ok}, path: "/readyz", want: 200},
		{name: "readyz all pass", checks: []func() error{ok, ok}, path: "/readyz", want: 200},
		{name: "readyz degraded", checks: []func() error{ok, fail}, path: "/readyz", want: 503},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.checks...).Register(r)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }
