// internal/domain/order/notifier.go
package order

import (
	"context"
	"strings"

	"github.com/your-org/fashion-store/internal/pkg/email"
)

// EmailNotifier sends order e-mails through the email service
type EmailNotifier struct {
	mailer *email.EmailService
}

// NewEmailNotifier wraps an email service as a Notifier
func NewEmailNotifier(mailer *email.EmailService) *EmailNotifier {
	return &EmailNotifier{mailer: mailer}
}

func (n *EmailNotifier) OrderConfirmed(ctx context.Context, to Recipient, o *Order) error {
	lines := make([]email.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, email.OrderLine{
			Title:    item.Title,
			Size:     item.SelectedSize,
			Color:    item.SelectedColor,
			Quantity: item.Quantity,
			Price:    email.FormatAmount(item.Price),
			Total:    email.FormatAmount(item.Price * int64(item.Quantity)),
		})
	}

	return n.mailer.SendOrderConfirmationEmail(ctx, email.OrderConfirmationData{
		BaseData:      email.BaseData{UserName: to.Name, UserEmail: to.Email},
		OrderNumber:   o.OrderNumber,
		OrderDate:     o.OrderDate.Format("02 Jan 2006"),
		PaymentMethod: paymentLabel(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Total:         email.FormatAmount(o.TotalAmount),
		Address:       o.AddressInfo.String(),
		Items:         lines,
	})
}

func (n *EmailNotifier) OrderStatusChanged(ctx context.Context, to Recipient, o *Order, previous OrderStatus) error {
	return n.mailer.SendOrderStatusUpdateEmail(ctx, email.OrderStatusUpdateData{
		BaseData:       email.BaseData{UserName: to.Name, UserEmail: to.Email},
		OrderNumber:    o.OrderNumber,
		PreviousStatus: humanize(string(previous)),
		Status:         humanize(string(o.Status)),
		StatusMessage:  email.StatusMessage(string(o.Status)),
	})
}

func (n *EmailNotifier) RequestReviewed(ctx context.Context, to Recipient, o *Order, kind string, req Request) error {
	data := email.RequestReviewedData{
		BaseData:    email.BaseData{UserName: to.Name, UserEmail: to.Email},
		OrderNumber: o.OrderNumber,
		RequestKind: kind,
		Decision:    string(req.Status),
		AdminNotes:  req.AdminNotes,
	}
	if req.Status == RequestApproved && req.RefundAmount > 0 {
		data.RefundAmount = email.FormatAmount(req.RefundAmount)
	}
	if kind == KindReturn && req.Status == RequestApproved {
		data.PickupAddress = o.Return.PickupAddress
	}
	return n.mailer.SendRequestReviewedEmail(ctx, data)
}

func paymentLabel(m PaymentMethod) string {
	if m == PaymentMethodCOD {
		return "Cash on delivery"
	}
	return "Paid online"
}

func humanize(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}
