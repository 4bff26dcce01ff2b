package repository

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
)

// OrderRepository owns the order state machine. Every mutating method runs
// its precondition checks and writes atomically: an error leaves no trace.
type OrderRepository interface {
	// Create reserves product stock and stores a new PENDING order with the
	// seller snapshotted from the product.
	Create(ctx context.Context, buyerID int64, productID uint64, quantity uint32) (*model.Order, error)
	Get(ctx context.Context, id uint64) (*model.Order, error)
	// MarkShipped moves PENDING -> SHIPPED, seller only.
	MarkShipped(ctx context.Context, callerID int64, orderID uint64) error
	// MarkReceived moves SHIPPED -> RECEIVED, buyer only. Also bumps the
	// product sale counter and creates the empty ratings record.
	MarkReceived(ctx context.Context, callerID int64, orderID uint64) error
	// RequestCancelByBuyer records buyer consent; cancels and restores
	// stock when the seller already consented.
	RequestCancelByBuyer(ctx context.Context, callerID int64, orderID uint64) error
	// AcceptCancelBySeller records seller consent; cancels and restores
	// stock when the buyer already consented.
	AcceptCancelBySeller(ctx context.Context, callerID int64, orderID uint64) error
	// CountByBuyer returns how many orders the account created.
	CountByBuyer(ctx context.Context, accountID int64) (uint32, error)
}
