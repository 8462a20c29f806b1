package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"

	"crudexample/internal/domain/models"
)

// PersonsPDFService renders the persons list as a landscape A4 table.
type PersonsPDFService struct {
	Logger *slog.Logger
	Now    func() time.Time
}

type pdfColumn struct {
	title string
	width float64
	value func(models.PersonResponse) string
}

var personsPDFColumns = []pdfColumn{
	{"Person Name", 40, func(p models.PersonResponse) string { return p.PersonName }},
	{"Email", 55, func(p models.PersonResponse) string { return p.Email }},
	{"Date of Birth", 28, func(p models.PersonResponse) string {
		if p.DateOfBirth == nil {
			return ""
		}
		return p.DateOfBirth.Format(models.DateLayout)
	}},
	{"Age", 12, func(p models.PersonResponse) string {
		if p.Age == nil {
			return ""
		}
		return strconv.Itoa(*p.Age)
	}},
	{"Gender", 20, func(p models.PersonResponse) string { return string(p.Gender) }},
	{"Country", 28, func(p models.PersonResponse) string { return p.Country }},
	{"Address", 70, func(p models.PersonResponse) string { return p.Address }},
	{"Newsletters", 24, func(p models.PersonResponse) string { return strconv.FormatBool(p.ReceiveNewsLetters) }},
}

// PersonsPDF returns the document bytes and a download filename.
func (s PersonsPDFService) PersonsPDF(persons []models.PersonResponse) ([]byte, string, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Persons", false)
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Persons")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+now.Format("2006-01-02 15:04"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range personsPDFColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range persons {
		for _, col := range personsPDFColumns {
			pdf.CellFormat(col.width, 6, col.value(p), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render persons pdf: %w", err)
	}
	logger(s.Logger).Info("persons pdf rendered", slog.Int("rows", len(persons)), slog.Int("bytes", buf.Len()))
	return buf.Bytes(), "persons.pdf", nil
}
