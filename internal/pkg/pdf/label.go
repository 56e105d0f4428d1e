// internal/pkg/pdf/label.go
package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/your-org/fashion-store/internal/domain/order"
)

// LabelPayload is the text encoded in a shipping label's QR code
func LabelPayload(o *order.Order) string {
	return fmt.Sprintf("%s|%d|%s", o.OrderNumber, o.ID, o.AddressInfo.Pincode)
}

// GenerateShippingLabel draws a 4x6 inch label with the delivery address,
// the order lines and a QR code of the order reference
func (s *Service) GenerateShippingLabel(o *order.Order, customerName string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(LabelPayload(o), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 101.6, Ht: 152.4},
	})
	doc.SetMargins(6, 6, 6)
	doc.SetAutoPageBreak(false, 6)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Arial", "B", 14)
	doc.CellFormat(0, 8, tr(s.company.Name), "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 9)
	if s.company.Address != "" {
		doc.MultiCell(0, 4, tr("From: "+s.company.Address), "", "L", false)
	}
	doc.Ln(2)
	doc.Line(6, doc.GetY(), 95.6, doc.GetY())
	doc.Ln(3)

	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(0, 6, "SHIP TO", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 6, tr(customerName), "", 1, "L", false, 0, "")
	doc.MultiCell(55, 5, tr(o.AddressInfo.Address), "", "L", false)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("%s - %s", o.AddressInfo.City, o.AddressInfo.Pincode)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "Phone: "+o.AddressInfo.Phone, "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	doc.ImageOptions("qr", 64, 40, 32, 32, false, opts, 0, "")

	doc.SetY(78)
	doc.Line(6, doc.GetY(), 95.6, doc.GetY())
	doc.Ln(3)
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(0, 5, "Order "+o.OrderNumber, "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 9)
	if o.PaymentMethod == order.PaymentMethodCOD && !o.IsPaid() {
		doc.CellFormat(0, 5, tr("COLLECT ON DELIVERY: "+formatAmount(o.TotalAmount)), "", 1, "L", false, 0, "")
	} else {
		doc.CellFormat(0, 5, "PREPAID", "", 1, "L", false, 0, "")
	}
	doc.Ln(1)

	for _, item := range o.Items {
		line := fmt.Sprintf("%d x %s", item.Quantity, item.Title)
		if item.SelectedSize != "" {
			line += " / " + item.SelectedSize
		}
		if item.SelectedColor != "" {
			line += " / " + item.SelectedColor
		}
		if doc.GetY() > 140 {
			doc.CellFormat(0, 4, "...", "", 1, "L", false, 0, "")
			break
		}
		doc.CellFormat(0, 4, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
