package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/domain/repository"
)

// OrderUseCase encapsulates the purchase order lifecycle.
type OrderUseCase struct {
	roles  repository.RoleRepository
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(roles repository.RoleRepository, orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{roles: roles, orders: orders}
}

// Create places a new order for the calling buyer, reserving product stock.
func (u *OrderUseCase) Create(ctx context.Context, callerID int64, productID uint64, quantity uint32) (*model.Order, error) {
	role, err := u.roles.Get(ctx, callerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotAuthorized
		}
		return nil, err
	}
	if !role.IsBuyer() {
		return nil, domainErrors.ErrNotAuthorized
	}

	if quantity == 0 {
		return nil, domainErrors.ErrInsufficientStock
	}

	return u.orders.Create(ctx, callerID, productID, quantity)
}

// MarkShipped transitions PENDING -> SHIPPED on behalf of the seller.
func (u *OrderUseCase) MarkShipped(ctx context.Context, callerID int64, orderID uint64) error {
	return u.orders.MarkShipped(ctx, callerID, orderID)
}

// MarkReceived transitions SHIPPED -> RECEIVED on behalf of the buyer.
func (u *OrderUseCase) MarkReceived(ctx context.Context, callerID int64, orderID uint64) error {
	return u.orders.MarkReceived(ctx, callerID, orderID)
}

// RequestCancel records the buyer's consent to cancel.
func (u *OrderUseCase) RequestCancel(ctx context.Context, callerID int64, orderID uint64) error {
	return u.orders.RequestCancelByBuyer(ctx, callerID, orderID)
}

// AcceptCancel records the seller's consent to cancel.
func (u *OrderUseCase) AcceptCancel(ctx context.Context, callerID int64, orderID uint64) error {
	return u.orders.AcceptCancelBySeller(ctx, callerID, orderID)
}

// StateOf returns the current state of an order.
func (u *OrderUseCase) StateOf(ctx context.Context, orderID uint64) (model.OrderState, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	return order.State, nil
}

// CountFor returns how many orders the account has created.
func (u *OrderUseCase) CountFor(ctx context.Context, accountID int64) (uint32, error) {
	return u.orders.CountByBuyer(ctx, accountID)
}
