// internal/domain/order/requests.go
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/fashion-store/internal/domain/audit"
)

// Review actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Request kinds, used in e-mails and logs
const (
	KindCancellation = "cancellation"
	KindReturn       = "return"
)

// CustomerRequest carries the reason for a cancellation or return
type CustomerRequest struct {
	Reason string `json:"reason" binding:"required,min=10"`
}

// ReviewRequest is an admin decision on a pending request
type ReviewRequest struct {
	Action        string `json:"action" binding:"required,oneof=approve reject"`
	RefundAmount  *int64 `json:"refundAmount"`
	PickupAddress string `json:"pickupAddress"`
	AdminNotes    string `json:"adminNotes"`
}

func validReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) < MinReasonLength {
		return "", ErrReasonTooShort
	}
	return reason, nil
}

// RequestCancellation opens a cancellation request on an order that has not
// shipped yet
func (s *Service) RequestCancellation(ctx context.Context, userID, orderID uint, req *CustomerRequest) (*Order, error) {
	reason, err := validReason(req.Reason)
	if err != nil {
		return nil, err
	}

	o, err := s.GetOrderDetails(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.CanRequestCancellation(); err != nil {
		return nil, err
	}

	now := s.now()
	o.Cancellation = Request{
		Requested:   true,
		Reason:      reason,
		Status:      RequestPending,
		RequestedAt: &now,
	}
	o.OrderUpdateDate = now

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.record(ctx, o, audit.ActionCancellationRequest, userID, "", string(RequestPending), reason)

	return o, nil
}

// RequestReturn opens a return request on a delivered order
func (s *Service) RequestReturn(ctx context.Context, userID, orderID uint, req *CustomerRequest) (*Order, error) {
	reason, err := validReason(req.Reason)
	if err != nil {
		return nil, err
	}

	o, err := s.GetOrderDetails(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.CanRequestReturn(); err != nil {
		return nil, err
	}

	now := s.now()
	o.Return = ReturnRequest{Request: Request{
		Requested:   true,
		Reason:      reason,
		Status:      RequestPending,
		RequestedAt: &now,
	}}
	o.OrderUpdateDate = now

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.record(ctx, o, audit.ActionReturnRequest, userID, "", string(RequestPending), reason)

	return o, nil
}

// ReviewCancellation approves or rejects a pending cancellation. Approval
// cancels the order and refunds paid orders.
func (s *Service) ReviewCancellation(ctx context.Context, actorID, orderID uint, req *ReviewRequest) (*Order, error) {
	if err := checkDecision(req); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Cancellation.Requested || o.Cancellation.Status != RequestPending {
		return nil, ErrNoPendingRequest
	}

	refund, err := refundAmount(o, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	previous := o.Status
	r := &o.Cancellation
	r.ProcessedAt = &now
	r.AdminNotes = strings.TrimSpace(req.AdminNotes)

	if req.Action == ActionApprove {
		r.Status = RequestApproved
		o.Status = OrderStatusCancelled
		if o.IsPaid() {
			r.RefundAmount = refund
			o.PaymentStatus = PaymentStatusRefunded
		}
	} else {
		r.Status = RequestRejected
	}
	o.OrderUpdateDate = now

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.record(ctx, o, audit.ActionCancellationReviewed, actorID, string(previous), string(o.Status), string(r.Status)+": "+r.AdminNotes)
	s.notify(ctx, o, KindCancellation, func(to Recipient) error {
		return s.notifier.RequestReviewed(ctx, to, o, KindCancellation, o.Cancellation)
	})

	return o, nil
}

// ReviewReturn approves or rejects a pending return. Approval marks the
// order returned with a refund and a pickup address.
func (s *Service) ReviewReturn(ctx context.Context, actorID, orderID uint, req *ReviewRequest) (*Order, error) {
	if err := checkDecision(req); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Return.Requested || o.Return.Status != RequestPending {
		return nil, ErrNoPendingRequest
	}

	refund, err := refundAmount(o, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	previous := o.Status
	r := &o.Return
	r.ProcessedAt = &now
	r.AdminNotes = strings.TrimSpace(req.AdminNotes)

	if req.Action == ActionApprove {
		r.Status = RequestApproved
		r.RefundAmount = refund
		r.PickupAddress = strings.TrimSpace(req.PickupAddress)
		if r.PickupAddress == "" {
			r.PickupAddress = o.AddressInfo.String()
		}
		o.Status = OrderStatusReturned
		if o.IsPaid() {
			o.PaymentStatus = PaymentStatusRefunded
		}
	} else {
		r.Status = RequestRejected
	}
	o.OrderUpdateDate = now

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.record(ctx, o, audit.ActionReturnReviewed, actorID, string(previous), string(o.Status), string(r.Status)+": "+r.AdminNotes)
	s.notify(ctx, o, KindReturn, func(to Recipient) error {
		return s.notifier.RequestReviewed(ctx, to, o, KindReturn, o.Return.Request)
	})

	return o, nil
}

func checkDecision(req *ReviewRequest) error {
	switch req.Action {
	case ActionApprove:
		return nil
	case ActionReject:
		if strings.TrimSpace(req.AdminNotes) == "" {
			return ErrAdminNotesRequired
		}
		return nil
	default:
		return ErrInvalidAction
	}
}

// refundAmount defaults to the order total
func refundAmount(o *Order, req *ReviewRequest) (int64, error) {
	if req.RefundAmount == nil {
		return o.TotalAmount, nil
	}
	amount := *req.RefundAmount
	if amount < 0 || amount > o.TotalAmount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRefund, amount)
	}
	return amount, nil
}
