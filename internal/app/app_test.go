package app

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/pricemachine/config"
	"github.com/guttosm/pricemachine/internal/service"
	"github.com/guttosm/pricemachine/internal/storage"
)

func TestOpenReportSink_Disabled(t *testing.T) {
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) {
		t.Fatalf("opener must not be called when the sink is disabled")
		return nil, nil
	}
	t.Cleanup(func() { postgresOpener = old })

	cfg := testConfig()
	cfg.Export.Postgres = false
	sink, err := OpenReportSink(cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sink.Repo != nil || sink.Ping() != nil {
		t.Fatalf("disabled sink should have no repo and ping ok")
	}
	sink.Close()
}

func TestOpenReportSink_OpenFailure(t *testing.T) {
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("down") }
	t.Cleanup(func() { postgresOpener = old })

	if _, err := OpenReportSink(testConfig()); err == nil {
		t.Fatalf("expected error when postgres is unreachable")
	}
}

func TestInitializeApp_HealthAndReadiness(t *testing.T) {
	cases := []struct {
		name    string
		pingErr error
		ready   int
	}{
		{name: "sink reachable", ready: http.StatusOK},
		{name: "sink down", pingErr: errors.New("gone"), ready: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			if err != nil {
				t.Fatalf("sqlmock new: %v", err)
			}
			mock.ExpectPing().WillReturnError(tc.pingErr)
			mock.ExpectClose()

			old := postgresOpener
			postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
			t.Cleanup(func() { postgresOpener = old })

			sink, err := OpenReportSink(testConfig())
			if err != nil {
				t.Fatalf("open sink: %v", err)
			}

			router := InitializeApp(service.NewPriceService(storage.NewMemoryStore()), sink)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("healthz status=%d", w.Code)
			}

			w2 := httptest.NewRecorder()
			router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if w2.Code != tc.ready {
				t.Fatalf("readyz status=%d, want %d", w2.Code, tc.ready)
			}

			sink.Close()
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestInitializeApp_NilSink(t *testing.T) {
	router := InitializeApp(service.NewPriceService(storage.NewMemoryStore()), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}
}

func TestReportSink_PingGoesThroughRepository(t *testing.T) {
	cases := []struct {
		name string
		sink *ReportSink
		want error
	}{
		{name: "disabled", sink: &ReportSink{}},
		{name: "reachable", sink: &ReportSink{Repo: &fakeReportRepo{}}},
		{name: "unreachable", sink: &ReportSink{Repo: &fakeReportRepo{pingErr: errDown}}, want: errDown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.sink.Ping(); !errors.Is(err, tc.want) {
				t.Fatalf("ping err=%v, want %v", err, tc.want)
			}
		})
	}
}

var errDown = errors.New("connection refused")
