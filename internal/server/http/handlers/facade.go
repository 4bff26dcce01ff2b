package handlers

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// RegistryFacade exposes role registry operations.
type RegistryFacade interface {
	RegisterRole(ctx context.Context, accountID int64, role model.Role) error
	WidenRole(ctx context.Context, accountID int64, role model.Role) error
	RoleOf(ctx context.Context, accountID int64) (model.Role, error)
}

// CatalogFacade exposes product catalog operations.
type CatalogFacade interface {
	PublishProduct(ctx context.Context, sellerID int64, product model.Product) (uint64, error)
	OwnProducts(ctx context.Context, sellerID int64) ([]model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	ProductSales(ctx context.Context, productID uint64) (uint32, error)
}

// OrderFacade exposes order ledger operations.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, buyerID int64, productID uint64, quantity uint32) (*model.Order, error)
	ShipOrder(ctx context.Context, callerID int64, orderID uint64) error
	ReceiveOrder(ctx context.Context, callerID int64, orderID uint64) error
	RequestCancel(ctx context.Context, callerID int64, orderID uint64) error
	AcceptCancel(ctx context.Context, callerID int64, orderID uint64) error
	OrderState(ctx context.Context, orderID uint64) (model.OrderState, error)
	OrdersCount(ctx context.Context, accountID int64) (uint32, error)
}

// ReputationFacade exposes rating and statistics operations.
type ReputationFacade interface {
	RateSeller(ctx context.Context, callerID int64, orderID uint64, score uint8) error
	RateBuyer(ctx context.Context, callerID int64, orderID uint64, score uint8) error
	ReputationOf(ctx context.Context, accountID int64) (*model.Reputation, error)
	OrderRatings(ctx context.Context, orderID uint64) (*model.OrderRatings, error)
	CategoryStats(ctx context.Context, category string) (*model.CategoryStats, error)
	AccountsWithReputation(ctx context.Context) ([]model.AccountReputation, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	RegistryFacade
	CatalogFacade
	OrderFacade
	ReputationFacade
}
