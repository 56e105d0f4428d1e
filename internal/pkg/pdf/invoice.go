// internal/pkg/pdf/invoice.go
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/domain/order"
)

//go:embed templates/invoice.html
var templateFS embed.FS

// Service renders order documents
type Service struct {
	company CompanyInfo
	invoice *template.Template
}

// CompanyInfo is printed on every document
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// InvoiceData is the invoice template input
type InvoiceData struct {
	InvoiceNumber string
	Order         *order.Order
	CustomerName  string
	PaymentMethod string
	Refunded      int64
	Company       CompanyInfo
}

// NewService parses the embedded templates
func NewService(cfg *config.Config) (*Service, error) {
	tmpl, err := template.New("invoice.html").Funcs(template.FuncMap{
		"money":     formatAmount,
		"lineTotal": func(price int64, qty int) int64 { return price * int64(qty) },
	}).ParseFS(templateFS, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %w", err)
	}

	return &Service{
		company: CompanyInfo{
			Name:    cfg.App.CompanyName,
			Address: cfg.App.CompanyAddress,
			Phone:   cfg.App.CompanyPhone,
			Email:   cfg.App.CompanyEmail,
		},
		invoice: tmpl,
	}, nil
}

// RenderInvoiceHTML renders the invoice page that GenerateInvoice converts
func (s *Service) RenderInvoiceHTML(o *order.Order, customerName string) ([]byte, error) {
	data := InvoiceData{
		InvoiceNumber: "INV-" + o.OrderNumber,
		Order:         o,
		CustomerName:  customerName,
		PaymentMethod: paymentLabel(o.PaymentMethod),
		Company:       s.company,
	}
	if o.PaymentStatus == order.PaymentStatusRefunded {
		data.Refunded = o.Cancellation.RefundAmount + o.Return.RefundAmount
	}

	var buf bytes.Buffer
	if err := s.invoice.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateInvoice converts the rendered invoice to PDF with wkhtmltopdf
func (s *Service) GenerateInvoice(o *order.Order, customerName string) ([]byte, error) {
	html, err := s.RenderInvoiceHTML(o, customerName)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return pdfg.Bytes(), nil
}

func formatAmount(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}

func paymentLabel(m order.PaymentMethod) string {
	if m == order.PaymentMethodCOD {
		return "Cash on Delivery"
	}
	return "Online"
}
