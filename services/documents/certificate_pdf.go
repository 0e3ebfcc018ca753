package documents

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// CertificateData is everything printed on an adoption certificate.
type CertificateData struct {
	AdopterName string
	AlpacaName  string
	Tier        string
	StartedOn   time.Time
}

// CertificatePDF renders a one-page A4 landscape adoption certificate and
// returns the bytes plus a suggested filename.
func (s *Service) CertificatePDF(c CertificateData) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	pdf.SetFillColor(warmCream[0], warmCream[1], warmCream[2])
	pdf.Rect(0, 0, w, h, "F")
	pdf.SetDrawColor(goldAccent[0], goldAccent[1], goldAccent[2])
	pdf.SetLineWidth(1.6)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(13, 13, w-26, h-26, "D")

	pdf.SetTextColor(forestGreen[0], forestGreen[1], forestGreen[2])
	pdf.SetFont("Times", "B", 30)
	pdf.SetY(28)
	pdf.CellFormat(w-40, 14, "Certificate of Adoption", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(w-40, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "BI", 24)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(w-40, 14, c.AdopterName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(forestGreen[0], forestGreen[1], forestGreen[2])
	pdf.CellFormat(w-40, 8, "is the proud adoptive guardian of", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "B", 28)
	pdf.SetTextColor(goldAccent[0], goldAccent[1], goldAccent[2])
	pdf.CellFormat(w-40, 16, c.AlpacaName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	tier := c.Tier
	if tier != "" {
		tier = strings.ToUpper(tier[:1]) + tier[1:]
		pdf.CellFormat(w-40, 7, fmt.Sprintf("%s adoption plan", tier), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(w-40, 7, fmt.Sprintf("Adopted on %s", c.StartedOn.Format("2 January 2006")), "", 1, "C", false, 0, "")

	pdf.SetY(h - 40)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(forestGreen[0], forestGreen[1], forestGreen[2])
	pdf.CellFormat(w-40, 6, brandName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(w-40, 5, brandSite, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render certificate pdf: %w", err)
	}
	slug := strings.ToLower(strings.ReplaceAll(c.AlpacaName, " ", "-"))
	return buf.Bytes(), fmt.Sprintf("adoption-certificate-%s.pdf", slug), nil
}
