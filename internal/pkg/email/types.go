// internal/pkg/email/types.go
package email

import (
	"fmt"
	"time"
)

// Kind identifies the template an e-mail is rendered from
type Kind string

const (
	KindWelcome           Kind = "welcome"
	KindOrderConfirmation Kind = "order_confirmation"
	KindOrderStatusUpdate Kind = "order_status_update"
	KindRequestReviewed   Kind = "request_reviewed"
)

var allKinds = []Kind{KindWelcome, KindOrderConfirmation, KindOrderStatusUpdate, KindRequestReviewed}

// Email represents an email message
type Email struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"html_content"`
	Kind        Kind     `json:"kind"`
}

// BaseData is shared by every template
type BaseData struct {
	StoreName    string
	StoreURL     string
	SupportEmail string
	UserName     string
	UserEmail    string
	Year         int
}

// WelcomeData is rendered after registration
type WelcomeData struct {
	BaseData
	ShopURL string
}

// OrderLine is one item of an order e-mail
type OrderLine struct {
	Title    string
	Size     string
	Color    string
	Quantity int
	Price    string
	Total    string
}

// OrderConfirmationData is rendered when an order is confirmed
type OrderConfirmationData struct {
	BaseData
	OrderNumber   string
	OrderDate     string
	PaymentMethod string
	PaymentStatus string
	Total         string
	Address       string
	Items         []OrderLine
	OrderURL      string
}

// OrderStatusUpdateData is rendered when an admin changes the status
type OrderStatusUpdateData struct {
	BaseData
	OrderNumber    string
	PreviousStatus string
	Status         string
	StatusMessage  string
	OrderURL       string
}

// RequestReviewedData is rendered when a cancellation or return is decided
type RequestReviewedData struct {
	BaseData
	OrderNumber   string
	RequestKind   string
	Decision      string
	RefundAmount  string
	PickupAddress string
	AdminNotes    string
	OrderURL      string
}

// FormatAmount renders minor units as rupees
func FormatAmount(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}

// StatusMessage is the customer facing sentence for an order status
func StatusMessage(status string) string {
	switch status {
	case "confirmed":
		return "Your order has been confirmed and will be prepared soon."
	case "processing":
		return "We are packing your order."
	case "shipped":
		return "Your order is on its way."
	case "out_for_delivery":
		return "Your order is out for delivery today."
	case "delivered":
		return "Your order has been delivered. We hope you love it."
	case "cancelled":
		return "Your order has been cancelled."
	case "returned":
		return "Your return has been completed."
	default:
		return "Your order status has been updated."
	}
}

func newBaseData(storeName, storeURL, supportEmail, userName, userEmail string) BaseData {
	return BaseData{
		StoreName:    storeName,
		StoreURL:     storeURL,
		SupportEmail: supportEmail,
		UserName:     userName,
		UserEmail:    userEmail,
		Year:         time.Now().Year(),
	}
}
