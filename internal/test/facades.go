package test

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
)

// MarketplaceFacadeStub provides controllable behaviour for every handler
// endpoint. Unset functions fall back to permissive defaults.
type MarketplaceFacadeStub struct {
	AuthFacadeStub

	RegisterRoleFn func(context.Context, int64, model.Role) error
	WidenRoleFn    func(context.Context, int64, model.Role) error
	RoleOfFn       func(context.Context, int64) (model.Role, error)

	PublishProductFn func(context.Context, int64, model.Product) (uint64, error)
	OwnProductsFn    func(context.Context, int64) ([]model.Product, error)
	ProductsFn       func(context.Context) ([]model.Product, error)
	ProductSalesFn   func(context.Context, uint64) (uint32, error)

	PlaceOrderFn    func(context.Context, int64, uint64, uint32) (*model.Order, error)
	ShipOrderFn     func(context.Context, int64, uint64) error
	ReceiveOrderFn  func(context.Context, int64, uint64) error
	RequestCancelFn func(context.Context, int64, uint64) error
	AcceptCancelFn  func(context.Context, int64, uint64) error
	OrderStateFn    func(context.Context, uint64) (model.OrderState, error)
	OrdersCountFn   func(context.Context, int64) (uint32, error)

	RateSellerFn             func(context.Context, int64, uint64, uint8) error
	RateBuyerFn              func(context.Context, int64, uint64, uint8) error
	ReputationOfFn           func(context.Context, int64) (*model.Reputation, error)
	OrderRatingsFn           func(context.Context, uint64) (*model.OrderRatings, error)
	CategoryStatsFn          func(context.Context, string) (*model.CategoryStats, error)
	AccountsWithReputationFn func(context.Context) ([]model.AccountReputation, error)
}

func (s *MarketplaceFacadeStub) RegisterRole(ctx context.Context, accountID int64, role model.Role) error {
	if s.RegisterRoleFn != nil {
		return s.RegisterRoleFn(ctx, accountID, role)
	}
	return nil
}

func (s *MarketplaceFacadeStub) WidenRole(ctx context.Context, accountID int64, role model.Role) error {
	if s.WidenRoleFn != nil {
		return s.WidenRoleFn(ctx, accountID, role)
	}
	return nil
}

func (s *MarketplaceFacadeStub) RoleOf(ctx context.Context, accountID int64) (model.Role, error) {
	if s.RoleOfFn != nil {
		return s.RoleOfFn(ctx, accountID)
	}
	return model.RoleBuyer, nil
}

func (s *MarketplaceFacadeStub) PublishProduct(ctx context.Context, sellerID int64, product model.Product) (uint64, error) {
	if s.PublishProductFn != nil {
		return s.PublishProductFn(ctx, sellerID, product)
	}
	return 1, nil
}

func (s *MarketplaceFacadeStub) OwnProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	if s.OwnProductsFn != nil {
		return s.OwnProductsFn(ctx, sellerID)
	}
	return nil, nil
}

func (s *MarketplaceFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

func (s *MarketplaceFacadeStub) ProductSales(ctx context.Context, productID uint64) (uint32, error) {
	if s.ProductSalesFn != nil {
		return s.ProductSalesFn(ctx, productID)
	}
	return 0, nil
}

func (s *MarketplaceFacadeStub) PlaceOrder(ctx context.Context, buyerID int64, productID uint64, quantity uint32) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, buyerID, productID, quantity)
	}
	return &model.Order{ID: 1, ProductID: productID, BuyerID: buyerID, Quantity: quantity, State: model.OrderStatePending}, nil
}

func (s *MarketplaceFacadeStub) ShipOrder(ctx context.Context, callerID int64, orderID uint64) error {
	if s.ShipOrderFn != nil {
		return s.ShipOrderFn(ctx, callerID, orderID)
	}
	return nil
}

func (s *MarketplaceFacadeStub) ReceiveOrder(ctx context.Context, callerID int64, orderID uint64) error {
	if s.ReceiveOrderFn != nil {
		return s.ReceiveOrderFn(ctx, callerID, orderID)
	}
	return nil
}

func (s *MarketplaceFacadeStub) RequestCancel(ctx context.Context, callerID int64, orderID uint64) error {
	if s.RequestCancelFn != nil {
		return s.RequestCancelFn(ctx, callerID, orderID)
	}
	return nil
}

func (s *MarketplaceFacadeStub) AcceptCancel(ctx context.Context, callerID int64, orderID uint64) error {
	if s.AcceptCancelFn != nil {
		return s.AcceptCancelFn(ctx, callerID, orderID)
	}
	return nil
}

func (s *MarketplaceFacadeStub) OrderState(ctx context.Context, orderID uint64) (model.OrderState, error) {
	if s.OrderStateFn != nil {
		return s.OrderStateFn(ctx, orderID)
	}
	return model.OrderStatePending, nil
}

func (s *MarketplaceFacadeStub) OrdersCount(ctx context.Context, accountID int64) (uint32, error) {
	if s.OrdersCountFn != nil {
		return s.OrdersCountFn(ctx, accountID)
	}
	return 0, nil
}

func (s *MarketplaceFacadeStub) RateSeller(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	if s.RateSellerFn != nil {
		return s.RateSellerFn(ctx, callerID, orderID, score)
	}
	return nil
}

func (s *MarketplaceFacadeStub) RateBuyer(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	if s.RateBuyerFn != nil {
		return s.RateBuyerFn(ctx, callerID, orderID, score)
	}
	return nil
}

func (s *MarketplaceFacadeStub) ReputationOf(ctx context.Context, accountID int64) (*model.Reputation, error) {
	if s.ReputationOfFn != nil {
		return s.ReputationOfFn(ctx, accountID)
	}
	return &model.Reputation{}, nil
}

func (s *MarketplaceFacadeStub) OrderRatings(ctx context.Context, orderID uint64) (*model.OrderRatings, error) {
	if s.OrderRatingsFn != nil {
		return s.OrderRatingsFn(ctx, orderID)
	}
	return &model.OrderRatings{OrderID: orderID}, nil
}

func (s *MarketplaceFacadeStub) CategoryStats(ctx context.Context, category string) (*model.CategoryStats, error) {
	if s.CategoryStatsFn != nil {
		return s.CategoryStatsFn(ctx, category)
	}
	return &model.CategoryStats{Category: category}, nil
}

func (s *MarketplaceFacadeStub) AccountsWithReputation(ctx context.Context) ([]model.AccountReputation, error) {
	if s.AccountsWithReputationFn != nil {
		return s.AccountsWithReputationFn(ctx)
	}
	return nil, nil
}

// AuthFacadeStub simulates the session layer for handler tests.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseTokenFn   func(string) (int64, error)
}

func (s *AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

func (s *AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

func (s *AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}
