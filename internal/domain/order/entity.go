// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrOrderNotPending        = errors.New("order is not awaiting payment")
	ErrPaymentVerification    = errors.New("payment verification failed")
	ErrCancellationNotAllowed = errors.New("order cannot be cancelled")
	ErrReturnNotAllowed       = errors.New("order cannot be returned")
	ErrReasonTooShort         = errors.New("reason must be at least 10 characters")
	ErrNoPendingRequest       = errors.New("no pending request to review")
	ErrAdminNotesRequired     = errors.New("admin notes are required when rejecting")
	ErrInvalidAction          = errors.New("action must be approve or reject")
	ErrInvalidRefund          = errors.New("refund amount must be between 0 and the order total")
)

// MinReasonLength is the shortest accepted cancellation or return reason
const MinReasonLength = 10

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusReturned       OrderStatus = "returned"
)

// Statuses lists every order status in lifecycle order
var Statuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// RequestStatus is the state of a cancellation or return request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Order is a snapshot of a cart at placement time plus its fulfilment state.
// Orders are never deleted.
type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderNumber     string        `gorm:"size:50;index" json:"orderNumber"`
	UserID          uint          `gorm:"not null;index" json:"userId"`
	CartID          uint          `gorm:"index" json:"cartId"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cartItems"`
	AddressInfo     AddressInfo   `gorm:"embedded;embeddedPrefix:address_" json:"addressInfo"`
	PaymentMethod   PaymentMethod `gorm:"not null;size:20" json:"paymentMethod"`
	PaymentStatus   PaymentStatus `gorm:"not null;size:20;default:'pending'" json:"paymentStatus"`
	Status          OrderStatus   `gorm:"column:order_status;not null;size:30;default:'pending';index" json:"orderStatus"`
	TotalAmount     int64         `gorm:"not null" json:"totalAmount"`
	OrderDate       time.Time     `gorm:"not null" json:"orderDate"`
	OrderUpdateDate time.Time     `gorm:"not null" json:"orderUpdateDate"`
	PaymentID       string        `gorm:"size:100" json:"paymentId,omitempty"`
	PayerID         string        `gorm:"size:100" json:"payerId,omitempty"`
	GatewayOrderID  string        `gorm:"size:100;index" json:"gatewayOrderId,omitempty"`
	Cancellation    Request       `gorm:"embedded;embeddedPrefix:cancellation_" json:"cancellationRequest"`
	Return          ReturnRequest `gorm:"embedded;embeddedPrefix:return_" json:"returnRequest"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// OrderItem is a denormalized cart line
type OrderItem struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	OrderID       uint   `gorm:"not null;index" json:"-"`
	ProductID     uint   `gorm:"not null;index" json:"productId"`
	Title         string `gorm:"not null;size:255" json:"title"`
	Image         string `gorm:"size:500" json:"image"`
	Price         int64  `gorm:"not null" json:"price"`
	SelectedSize  string `gorm:"size:20" json:"selectedSize"`
	SelectedColor string `gorm:"size:50" json:"selectedColor"`
	Quantity      int    `gorm:"not null" json:"quantity"`
}

// AddressInfo is the delivery address copied onto the order
type AddressInfo struct {
	AddressID uint   `json:"addressId,omitempty"`
	Address   string `gorm:"size:500" json:"address" binding:"required"`
	City      string `gorm:"size:100" json:"city" binding:"required"`
	Pincode   string `gorm:"size:20" json:"pincode" binding:"required"`
	Phone     string `gorm:"size:20" json:"phone" binding:"required"`
	Notes     string `gorm:"type:text" json:"notes"`
}

// String renders the address on one line
func (a AddressInfo) String() string {
	return fmt.Sprintf("%s, %s - %s (ph: %s)", a.Address, a.City, a.Pincode, a.Phone)
}

// Request is a customer's cancellation request and its review outcome
type Request struct {
	Requested    bool          `gorm:"default:false" json:"requested"`
	Reason       string        `gorm:"type:text" json:"reason,omitempty"`
	Status       RequestStatus `gorm:"size:20" json:"status,omitempty"`
	RequestedAt  *time.Time    `json:"requestedAt,omitempty"`
	ProcessedAt  *time.Time    `json:"processedAt,omitempty"`
	RefundAmount int64         `gorm:"default:0" json:"refundAmount"`
	AdminNotes   string        `gorm:"type:text" json:"adminNotes,omitempty"`
}

// ReturnRequest is a Request that also carries where to collect the goods
type ReturnRequest struct {
	Request
	PickupAddress string `gorm:"size:500" json:"pickupAddress,omitempty"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber formats the customer facing order number
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", o.OrderDate.Format("20060102"), o.ID)
}

// IsPaid reports whether the customer's money was captured
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// IsOpen reports whether the request is awaiting review or was approved
func (r *Request) IsOpen() bool {
	return r.Requested && (r.Status == RequestPending || r.Status == RequestApproved)
}

// CanRequestCancellation checks the order is still before shipping and has
// no open cancellation
func (o *Order) CanRequestCancellation() error {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
	default:
		return fmt.Errorf("%w: order is %s", ErrCancellationNotAllowed, o.Status)
	}
	if o.Cancellation.IsOpen() {
		return fmt.Errorf("%w: a cancellation request is already %s", ErrCancellationNotAllowed, o.Cancellation.Status)
	}
	return nil
}

// CanRequestReturn checks the order was delivered and has no open return
func (o *Order) CanRequestReturn() error {
	if o.Status != OrderStatusDelivered {
		return fmt.Errorf("%w: order is %s", ErrReturnNotAllowed, o.Status)
	}
	if o.Return.IsOpen() {
		return fmt.Errorf("%w: a return request is already %s", ErrReturnNotAllowed, o.Return.Status)
	}
	return nil
}
