package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/guttosm/pricemachine/internal/domain/models"
	"github.com/guttosm/pricemachine/internal/ingestion"
	"github.com/guttosm/pricemachine/internal/service"
	"github.com/guttosm/pricemachine/internal/storage"
)

type fakeExporter struct {
	calls []string
	err   error
}

func (f *fakeExporter) Export(path string) error {
	f.calls = append(f.calls, path)
	return f.err
}

func newService(t *testing.T) service.PriceService {
	t.Helper()
	store := storage.NewMemoryStore()
	for _, r := range []struct {
		product       string
		price, weight float64
	}{
		{"Молоко 3,2%", 60, 2},
		{"Хлеб", 40, 0.5},
		{"Молоко топлёное", 30, 2},
	} {
		rec, err := models.NewPriceRecord(r.product, r.price, r.weight, "price_1.csv")
		if err != nil {
			t.Fatalf("NewPriceRecord: %v", err)
		}
		store.Append(rec)
	}
	return service.NewPriceService(store)
}

func TestRun_TableDriven(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		wantExport bool
		wantOut    []string
		notOut     []string
	}{
		{
			name:       "search then export",
			input:      "молоко\nexit\nда\n",
			wantExport: true,
			wantOut:    []string{"Молоко топлёное", "15.00", "30.00", "Работа завершена.", "Данные экспортированы в 'out.html'."},
		},
		{
			name:    "no matches then decline",
			input:   "кефир\nEXIT\nнет\n",
			wantOut: []string{"Совпадения не найдены."},
			notOut:  []string{"Данные экспортированы"},
		},
		{
			name:       "affirmative is case insensitive",
			input:      "Exit\nДА\n",
			wantExport: true,
		},
		{
			name:  "other affirmatives are not accepted",
			input: "exit\nyes\n",
		},
		{
			name:    "end of input stops the loop",
			input:   "хлеб\n",
			wantOut: []string{"Хлеб", "80.00"},
		},
		{
			name:    "exit must match exactly",
			input:   "exit now\nexit\n\n",
			wantOut: []string{"Совпадения не найдены."},
		},
		{
			name:       "windows line endings",
			input:      "exit\r\nда\r\n",
			wantExport: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exp := &fakeExporter{}
			d := NewDriver(newService(t), exp.Export, "out.html")
			var out bytes.Buffer

			if err := d.Run(context.Background(), strings.NewReader(tc.input), &out); err != nil {
				t.Fatalf("Run err: %v", err)
			}

			if got := len(exp.calls) == 1; got != tc.wantExport {
				t.Fatalf("export called=%v, want %v (calls=%v)", got, tc.wantExport, exp.calls)
			}
			if tc.wantExport && exp.calls[0] != "out.html" {
				t.Fatalf("exported to %q", exp.calls[0])
			}
			for _, w := range tc.wantOut {
				if !strings.Contains(out.String(), w) {
					t.Fatalf("output missing %q:\n%s", w, out.String())
				}
			}
			for _, w := range tc.notOut {
				if strings.Contains(out.String(), w) {
					t.Fatalf("output should not contain %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestRun_EmptyQueryListsEverythingSorted(t *testing.T) {
	d := NewDriver(newService(t), (&fakeExporter{}).Export, "")
	var out bytes.Buffer
	if err := d.Run(context.Background(), strings.NewReader("\nexit\nнет\n"), &out); err != nil {
		t.Fatalf("Run err: %v", err)
	}
	s := out.String()
	first, second, third := strings.Index(s, "Молоко топлёное"), strings.Index(s, "Молоко 3,2%"), strings.Index(s, "Хлеб")
	if first < 0 || second < first || third < second {
		t.Fatalf("rows not in price-per-unit order:\n%s", s)
	}
}

func TestRun_ExportError(t *testing.T) {
	exp := &fakeExporter{err: errors.New("disk full")}
	d := NewDriver(newService(t), exp.Export, "")
	err := d.Run(context.Background(), strings.NewReader("exit\nда\n"), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected export error, got %v", err)
	}
	if exp.calls[0] != "prices.html" {
		t.Fatalf("default export path not used: %v", exp.calls)
	}
}

func TestPrintProblems(t *testing.T) {
	problems := []*ingestion.Problem{
		{Kind: ingestion.KindMissingColumn, File: "price_3.csv", Err: errors.New("no column for weight")},
		{Kind: ingestion.KindRowConversion, File: "price_1.csv", Line: 3, Err: models.ErrInvalidWeight},
	}
	var out bytes.Buffer
	PrintProblems(&out, problems)

	s := out.String()
	if !strings.Contains(s, "В файле 'price_3.csv' не найдены все необходимые столбцы.") {
		t.Fatalf("missing column diagnostic not printed:\n%s", s)
	}
	if !strings.Contains(s, "price_1.csv (строка 3): invalid weight") {
		t.Fatalf("row diagnostic not printed:\n%s", s)
	}
}
