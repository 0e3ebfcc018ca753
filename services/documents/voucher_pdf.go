// Package documents renders the printable artifacts the farm hands to
// guests: gift voucher PDFs and alpaca adoption certificates.
package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	brandName    = "Zagroda Alpakoterapii"
	brandSite    = "zagrodaalpakoterapii.com"
	redeemURLFmt = "https://zagrodaalpakoterapii.com/redeem?code=%s"
)

// Farm brand palette.
var (
	forestGreen = [3]int{46, 90, 57}
	warmCream   = [3]int{250, 246, 238}
	goldAccent  = [3]int{191, 155, 48}
)

// VoucherData is everything printed on a gift voucher.
type VoucherData struct {
	Code          string
	Amount        float64
	Currency      string
	RecipientName string
	BuyerName     string
	ExpiresOn     time.Time
}

// Service renders PDFs in memory. QRImage is injectable so tests do not
// depend on the QR encoder.
type Service struct {
	QRImage func(content string, size int) ([]byte, error)
}

func NewService() *Service {
	return &Service{
		QRImage: func(content string, size int) ([]byte, error) {
			return qrcode.Encode(content, qrcode.Medium, size)
		},
	}
}

// VoucherPDF renders a single-page A5 landscape gift voucher and returns the
// bytes plus a suggested filename.
func (s *Service) VoucherPDF(v VoucherData) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// Cream background with a green frame.
	pdf.SetFillColor(warmCream[0], warmCream[1], warmCream[2])
	pdf.Rect(0, 0, w, h, "F")
	pdf.SetDrawColor(forestGreen[0], forestGreen[1], forestGreen[2])
	pdf.SetLineWidth(1.2)
	pdf.Rect(6, 6, w-12, h-12, "D")

	pdf.SetTextColor(forestGreen[0], forestGreen[1], forestGreen[2])
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(14, 16)
	pdf.CellFormat(w-28, 10, brandName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(w-28, 7, "Gift Voucher", "", 1, "C", false, 0, "")

	pdf.SetTextColor(goldAccent[0], goldAccent[1], goldAccent[2])
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetY(42)
	pdf.CellFormat(w-28, 14, fmt.Sprintf("%.0f %s", v.Amount, v.Currency), "", 1, "C", false, 0, "")

	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Courier", "B", 16)
	pdf.CellFormat(w-28, 10, v.Code, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if v.RecipientName != "" {
		pdf.CellFormat(w-28, 6, fmt.Sprintf("For: %s", v.RecipientName), "", 1, "C", false, 0, "")
	}
	if v.BuyerName != "" {
		pdf.CellFormat(w-28, 6, fmt.Sprintf("From: %s", v.BuyerName), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(w-28, 6, fmt.Sprintf("Valid until: %s", v.ExpiresOn.Format("2 January 2006")), "", 1, "C", false, 0, "")

	if s.QRImage != nil {
		img, err := s.QRImage(fmt.Sprintf(redeemURLFmt, v.Code), 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("voucher-qr", opts, bytes.NewReader(img))
			pdf.ImageOptions("voucher-qr", w-44, h-44, 28, 28, false, opts, 0, "")
		}
	}

	pdf.SetY(h - 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(w-28, 5, fmt.Sprintf("Redeem when booking your stay at %s", brandSite), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render voucher pdf: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("voucher-%s.pdf", v.Code), nil
}
