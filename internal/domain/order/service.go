// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/audit"
	"github.com/your-org/fashion-store/internal/domain/cart"
	"github.com/your-org/fashion-store/internal/domain/product"
)

// CartReader returns a user's current cart
type CartReader interface {
	FetchCartItems(ctx context.Context, userID uint) (*cart.Summary, error)
}

// ProductReader returns live catalog rows for stock checks
type ProductReader interface {
	GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]*product.Product, error)
}

// GatewayOrder is the payment gateway's handle for an online payment
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// PaymentGateway creates gateway orders and checks payment signatures
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// Recipient is who an order e-mail goes to
type Recipient struct {
	Email string
	Name  string
}

// Notifier sends customer e-mails about an order
type Notifier interface {
	OrderConfirmed(ctx context.Context, to Recipient, o *Order) error
	OrderStatusChanged(ctx context.Context, to Recipient, o *Order, previous OrderStatus) error
	RequestReviewed(ctx context.Context, to Recipient, o *Order, kind string, req Request) error
}

// CustomerDirectory resolves a user's contact details
type CustomerDirectory interface {
	Contact(ctx context.Context, userID uint) (email, name string, err error)
}

// Deps are the collaborators of the order service
type Deps struct {
	Repo      Repository
	Carts     CartReader
	Products  ProductReader
	Gateway   PaymentGateway
	Notifier  Notifier
	Customers CustomerDirectory
	Recorder  audit.Recorder
}

// Service handles order business logic
type Service struct {
	repo      Repository
	carts     CartReader
	products  ProductReader
	gateway   PaymentGateway
	notifier  Notifier
	customers CustomerDirectory
	recorder  audit.Recorder
	now       func() time.Time
}

// NewService creates a new order service
func NewService(deps Deps) *Service {
	s := &Service{
		repo:      deps.Repo,
		carts:     deps.Carts,
		products:  deps.Products,
		gateway:   deps.Gateway,
		notifier:  deps.Notifier,
		customers: deps.Customers,
		recorder:  deps.Recorder,
		now:       func() time.Time { return time.Now().UTC() },
	}
	if s.recorder == nil {
		s.recorder = audit.NopRecorder{}
	}
	return s
}

// CreateOrderRequest represents order placement data
type CreateOrderRequest struct {
	AddressInfo   AddressInfo   `json:"addressInfo" binding:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required,oneof=online cod"`
}

// CreateOrderResponse carries the stored order and, for online payment,
// what the client needs to open the gateway checkout
type CreateOrderResponse struct {
	Order    *Order        `json:"order"`
	Checkout *GatewayOrder `json:"checkout,omitempty"`
}

// CaptureRequest is the gateway callback data relayed by the client
type CaptureRequest struct {
	OrderID        uint   `json:"orderId" binding:"required"`
	PaymentID      string `json:"paymentId" binding:"required"`
	PayerID        string `json:"payerId"`
	GatewayOrderID string `json:"gatewayOrderId" binding:"required"`
	Signature      string `json:"signature" binding:"required"`
}

// UpdateStatusRequest is an admin status change
type UpdateStatusRequest struct {
	OrderStatus OrderStatus `json:"orderStatus" binding:"required,orderstatus"`
}

// CreateOrder snapshots the user's cart into an order. Cash on delivery
// orders are confirmed right away; online orders wait for CapturePayment.
func (s *Service) CreateOrder(ctx context.Context, userID uint, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	if req.PaymentMethod != PaymentMethodOnline && req.PaymentMethod != PaymentMethodCOD {
		return nil, ErrInvalidPaymentMethod
	}

	summary, err := s.carts.FetchCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items, total, err := s.snapshot(ctx, summary.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o := &Order{
		UserID:          userID,
		CartID:          userID,
		Items:           items,
		AddressInfo:     req.AddressInfo,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   PaymentStatusPending,
		TotalAmount:     total,
		OrderDate:       now,
		OrderUpdateDate: now,
	}

	if req.PaymentMethod == PaymentMethodCOD {
		o.Status = OrderStatusConfirmed
		if err := s.repo.Confirm(ctx, o); err != nil {
			return nil, err
		}
		s.record(ctx, o, audit.ActionOrderPlaced, userID, "", string(o.Status), string(o.PaymentMethod))
		s.notifyConfirmed(ctx, o)
		return &CreateOrderResponse{Order: o}, nil
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, total, "rcpt_"+uuid.NewString()[:28])
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	o.Status = OrderStatusPending
	o.GatewayOrderID = gatewayOrder.ID
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.record(ctx, o, audit.ActionOrderPlaced, userID, "", string(o.Status), string(o.PaymentMethod))

	return &CreateOrderResponse{Order: o, Checkout: gatewayOrder}, nil
}

// CapturePayment verifies the gateway signature and confirms an online order.
// Stock for all items is decremented together or not at all.
func (s *Service) CapturePayment(ctx context.Context, userID uint, req *CaptureRequest) (*Order, error) {
	o, err := s.GetOrderDetails(ctx, userID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != PaymentMethodOnline || o.Status != OrderStatusPending || o.PaymentStatus != PaymentStatusPending {
		return nil, ErrOrderNotPending
	}

	if req.GatewayOrderID != o.GatewayOrderID || !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		o.PaymentStatus = PaymentStatusFailed
		o.OrderUpdateDate = s.now()
		if err := s.repo.Save(ctx, o); err != nil {
			logrus.WithError(err).WithField("order_id", o.ID).Error("failed to mark payment as failed")
		}
		s.record(ctx, o, audit.ActionPaymentFailed, userID, string(PaymentStatusPending), string(PaymentStatusFailed), "signature mismatch")
		return nil, ErrPaymentVerification
	}

	o.Status = OrderStatusConfirmed
	o.PaymentStatus = PaymentStatusPaid
	o.PaymentID = req.PaymentID
	o.PayerID = req.PayerID
	o.OrderUpdateDate = s.now()

	if err := s.repo.Confirm(ctx, o); err != nil {
		if errors.Is(err, product.ErrInsufficientStock) {
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id":   o.ID,
				"user_id":    userID,
				"payment_id": req.PaymentID,
			}).Warn("payment captured but stock ran out; order left pending")
		}
		return nil, err
	}

	s.record(ctx, o, audit.ActionPaymentCaptured, userID, string(OrderStatusPending), string(o.Status), req.PaymentID)
	s.notifyConfirmed(ctx, o)

	return o, nil
}

// GetAllOrdersByUser lists a customer's orders, newest first
func (s *Service) GetAllOrdersByUser(ctx context.Context, userID uint) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetOrderDetails returns an order owned by userID
func (s *Service) GetOrderDetails(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// GetAllOrders lists every order for the admin panel
func (s *Service) GetAllOrders(ctx context.Context, filter ListFilter) ([]Order, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

// GetOrderDetailsForAdmin returns any order
func (s *Service) GetOrderDetailsForAdmin(ctx context.Context, orderID uint) (*Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// UpdateOrderStatus sets an order's status. Any value of Statuses is
// accepted in any order, but unknown strings are refused rather than written
// as-is. The customer is e-mailed only when the status actually changes.
func (s *Service) UpdateOrderStatus(ctx context.Context, actorID, orderID uint, status OrderStatus) (*Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := o.Status
	o.Status = status
	o.OrderUpdateDate = s.now()

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.record(ctx, o, audit.ActionStatusChanged, actorID, string(previous), string(status), "")

	if previous != status {
		s.notify(ctx, o, "status update", func(to Recipient) error {
			return s.notifier.OrderStatusChanged(ctx, to, o, previous)
		})
	}

	return o, nil
}

// History returns the activity log of an order
func (s *Service) History(ctx context.Context, orderID uint) ([]audit.Event, error) {
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.recorder.History(ctx, audit.EntityOrder, orderID)
}

// snapshot re-validates each cart line against live stock and copies it
// into order items priced at the current effective price
func (s *Service) snapshot(ctx context.Context, lines []cart.Line) ([]OrderItem, int64, error) {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%q: %w", l.Title, product.ErrProductNotFound)
		}
		if err := p.ValidateLine(l.SelectedSize, l.SelectedColor, l.Quantity); err != nil {
			return nil, 0, fmt.Errorf("%q size %s: %w", p.Title, l.SelectedSize, err)
		}
		price := p.EffectivePrice()
		items = append(items, OrderItem{
			ProductID:     p.ID,
			Title:         p.Title,
			Image:         p.Image,
			Price:         price,
			SelectedSize:  l.SelectedSize,
			SelectedColor: l.SelectedColor,
			Quantity:      l.Quantity,
		})
		total += price * int64(l.Quantity)
	}
	return items, total, nil
}

func (s *Service) notifyConfirmed(ctx context.Context, o *Order) {
	s.notify(ctx, o, "confirmation", func(to Recipient) error {
		return s.notifier.OrderConfirmed(ctx, to, o)
	})
}

// notify resolves the customer and sends one e-mail. Failures are logged only.
func (s *Service) notify(ctx context.Context, o *Order, kind string, send func(Recipient) error) {
	if s.notifier == nil || s.customers == nil {
		return
	}
	fields := logrus.Fields{"order_id": o.ID, "user_id": o.UserID, "email": kind}

	addr, name, err := s.customers.Contact(ctx, o.UserID)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Warn("failed to resolve order recipient")
		return
	}
	if err := send(Recipient{Email: addr, Name: name}); err != nil {
		logrus.WithError(err).WithFields(fields).Warn("failed to send order e-mail")
	}
}

func (s *Service) record(ctx context.Context, o *Order, action string, actorID uint, from, to, note string) {
	err := s.recorder.Record(ctx, audit.Event{
		EntityType: audit.EntityOrder,
		EntityID:   o.ID,
		Action:     action,
		ActorID:    actorID,
		From:       from,
		To:         to,
		Note:       note,
		At:         s.now(),
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id": o.ID,
			"action":   action,
		}).Warn("failed to record order activity")
	}
}
