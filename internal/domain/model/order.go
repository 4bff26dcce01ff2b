package model

import "time"

// OrderState describes the purchase order lifecycle. Transitions only move
// forward: PENDING -> SHIPPED -> RECEIVED, or PENDING/SHIPPED -> CANCELLED
// when both parties consent. RECEIVED and CANCELLED are terminal.
type OrderState string

const (
	OrderStatePending   OrderState = "PENDING"
	OrderStateShipped   OrderState = "SHIPPED"
	OrderStateReceived  OrderState = "RECEIVED"
	OrderStateCancelled OrderState = "CANCELLED"
)

// Order is a purchase order. Buyer and seller are frozen at creation time;
// the seller is snapshotted from the product so later catalog changes never
// affect an open order.
type Order struct {
	ID                  uint64
	BuyerID             int64
	SellerID            int64
	ProductID           uint64
	Quantity            uint32
	State               OrderState
	BuyerAcceptsCancel  bool
	SellerAcceptsCancel bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Cancelable reports whether the order may still be cancelled.
func (o *Order) Cancelable() bool {
	return o.State == OrderStatePending || o.State == OrderStateShipped
}

// CancelIfBothAccept flips the order to CANCELLED when both consent flags are
// set and reports whether the transition happened on this call. The caller
// restores product stock exactly when true is returned.
func (o *Order) CancelIfBothAccept() bool {
	if o.BuyerAcceptsCancel && o.SellerAcceptsCancel {
		o.State = OrderStateCancelled
		return true
	}
	return false
}
