package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"listing/internal/domain/models"
	"listing/internal/query"
	"listing/internal/utils"
)

const utf8Family = "listing"

// ExportService renders a derived page as a printable PDF table.
// FontPath points to a UTF-8 TrueType font; without it only cp1252 text
// is printable and other characters render as dots.
type ExportService struct {
	Title     string
	FontPath  string
	RequestID string
	Now       func() time.Time
}

type exportColumn struct {
	header  string
	width   float64
	align   string
	field   models.Field
	percent bool
}

var exportColumns = []exportColumn{
	{header: "ID", width: 16, align: "R", field: models.FieldID},
	{header: "Salon ID", width: 16, align: "R", field: models.FieldSalonID},
	{header: "Name", width: 34, align: "L", field: models.FieldName},
	{header: "Age", width: 10, align: "R", field: models.FieldAge},
	{header: "Salon", width: 42, align: "L", field: models.FieldSalonName},
	{header: "Style", width: 30, align: "L", field: models.FieldStyle},
	{header: "Score", width: 14, align: "R", field: models.FieldScore},
	{header: "Reviews", width: 16, align: "R", field: models.FieldReviews},
	{header: "SKR", width: 16, align: "R", field: models.FieldSKR, percent: true},
	{header: "HJ", width: 16, align: "R", field: models.FieldHJ, percent: true},
	{header: "F", width: 16, align: "R", field: models.FieldF, percent: true},
	{header: "NN", width: 16, align: "R", field: models.FieldNN, percent: true},
	{header: "NS", width: 16, align: "R", field: models.FieldNS, percent: true},
}

// RenderPDF returns the PDF bytes and a download filename for v.
func (s ExportService) RenderPDF(v query.View) ([]byte, string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	title := utils.FirstNonEmpty(s.Title, "Provider listing")

	pdf := gofpdf.New("L", "mm", "A4", "")
	family, tr := s.setupFont(pdf)
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(now())
	pdf.AddPage()

	pdf.SetFont(family, "B", 14)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(9)
	pdf.SetFont(family, "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Page %d / %d  -  %d of %d shown  -  generated %s",
		v.Page, v.PageCount, len(v.Items), v.Total, now().Format("2006-01-02 15:04")))
	pdf.Ln(8)

	pdf.SetFont(family, "B", 8)
	pdf.SetFillColor(240, 240, 240)
	for _, c := range exportColumns {
		pdf.CellFormat(c.width, 7, c.header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	if len(v.Items) == 0 {
		total := 0.0
		for _, c := range exportColumns {
			total += c.width
		}
		pdf.CellFormat(total, 7, "No data found", "1", 1, "C", false, 0, "")
	}
	for _, r := range v.Items {
		for _, c := range exportColumns {
			pdf.CellFormat(c.width, 6, tr(clip(cellText(r, c), c.width)), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "render_pdf", fmt.Sprintf("page=%d items=%d", v.Page, len(v.Items)))
	return buf.Bytes(), fmt.Sprintf("listing-page-%d.pdf", v.Page), nil
}

// setupFont registers the UTF-8 font when one is configured and readable.
// Otherwise it falls back to Helvetica with a cp1252 translator.
func (s ExportService) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string) {
	fallback := func() (string, func(string) string) {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	}
	path := strings.TrimSpace(s.FontPath)
	if path == "" {
		utils.LogWarn(s.RequestID, "export", "font", "no PDF font configured, non-latin text will not render")
		return fallback()
	}
	ttf, err := os.ReadFile(path)
	if err != nil {
		utils.LogWarn(s.RequestID, "export", "font", "PDF font unreadable, using Helvetica",
			zap.String("path", path), zap.Error(err))
		return fallback()
	}
	pdf.AddUTF8FontFromBytes(utf8Family, "", ttf)
	pdf.AddUTF8FontFromBytes(utf8Family, "B", ttf)
	if pdf.GetFontDesc(utf8Family, "").Ascent == 0 {
		utils.LogWarn(s.RequestID, "export", "font", "PDF font could not be parsed, using Helvetica",
			zap.String("path", path))
		return fallback()
	}
	return utf8Family, func(text string) string { return text }
}

func cellText(r models.Record, c exportColumn) string {
	s := c.field.Text(r)
	if c.percent {
		return s + "%"
	}
	return s
}

// clip keeps text within roughly the column width at 8pt.
func clip(s string, width float64) string {
	limit := int(width / 1.6)
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit || limit < 2 {
		return string(runes)
	}
	return string(runes[:limit-1]) + "."
}
