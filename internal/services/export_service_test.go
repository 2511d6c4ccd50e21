package services

import (
	"bytes"
	"go/build"
	"os"
	"path/filepath"
	"testing"
	"time"

	"listing/internal/domain/models"
	"listing/internal/query"
)

func TestExportServiceRenderPDF(t *testing.T) {
	svc := ExportService{
		Title: "Listing",
		Now:   func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
	}
	view := query.View{
		Items: []models.Record{
			{ID: models.NumericID(1), Name: "Hana", SalonName: "A very long salon name that will not fit the column", SKR: 12.5},
			{ID: models.TextID("x-2"), Name: "Mio", Style: "Relax"},
		},
		Total:     12,
		PageCount: 6,
		Page:      2,
		PageSize:  2,
	}

	pdf, filename, err := svc.RenderPDF(view)
	if err != nil {
		t.Fatalf("RenderPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "listing-page-2.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestExportServiceRenderPDF_Empty(t *testing.T) {
	pdf, filename, err := ExportService{}.RenderPDF(query.View{Items: []models.Record{}, PageCount: 1, Page: 1})
	if err != nil {
		t.Fatalf("RenderPDF returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("RenderPDF returned empty data")
	}
}

func TestCellTextAndClip(t *testing.T) {
	r := models.Record{SKR: 33.3, Reviews: 10}

	if got := cellText(r, exportColumn{field: models.FieldSKR, percent: true}); got != "33.3%" {
		t.Fatalf("percent cell = %q", got)
	}
	if got := cellText(r, exportColumn{field: models.FieldReviews}); got != "10" {
		t.Fatalf("number cell = %q", got)
	}
	if got := clip("abcdefghijklmnop", 17); got != "abcdefghi." {
		t.Fatalf("clip = %q", got)
	}
	if got := clip("short", 17); got != "short" {
		t.Fatalf("clip = %q", got)
	}
}

// testFontPath finds a UTF-8 TrueType font: PDF_FONT_PATH, or the DejaVu
// font shipped with the gofpdf module.
func testFontPath(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("PDF_FONT_PATH"); p != "" {
		return p
	}
	modCache := os.Getenv("GOMODCACHE")
	if modCache == "" {
		modCache = filepath.Join(build.Default.GOPATH, "pkg", "mod")
	}
	p := filepath.Join(modCache, "github.com", "phpdave11", "gofpdf@v1.4.3", "font", "DejaVuSansCondensed.ttf")
	if _, err := os.Stat(p); err != nil {
		t.Skipf("no UTF-8 font available: %v", err)
	}
	return p
}

func TestExportServiceRenderPDF_UTF8Font(t *testing.T) {
	svc := ExportService{Title: "セラピスト一覧", FontPath: testFontPath(t)}
	view := query.View{
		Items: []models.Record{
			{ID: models.NumericID(1), Name: "花子", SalonName: "癒しサロン", Reviews: 12},
		},
		Total:     1,
		PageCount: 1,
		Page:      1,
	}

	pdf, _, err := svc.RenderPDF(view)
	if err != nil {
		t.Fatalf("RenderPDF returned error: %v", err)
	}
	if !bytes.Contains(pdf, []byte("/FontFile2")) || !bytes.Contains(pdf, []byte("/Identity-H")) {
		t.Fatalf("UTF-8 font is not embedded")
	}
}

func TestExportServiceRenderPDF_UnreadableFontFallsBack(t *testing.T) {
	svc := ExportService{FontPath: filepath.Join(t.TempDir(), "missing.ttf")}

	pdf, _, err := svc.RenderPDF(query.View{Items: []models.Record{{Name: "花子"}}, PageCount: 1, Page: 1})
	if err != nil {
		t.Fatalf("RenderPDF returned error: %v", err)
	}
	if bytes.Contains(pdf, []byte("/FontFile2")) {
		t.Fatalf("fallback should not embed a font")
	}
	if !bytes.Contains(pdf, []byte("/Helvetica")) {
		t.Fatalf("fallback should use Helvetica")
	}
}
