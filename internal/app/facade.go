package app

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/usecase"
)

// MarketplaceFacade is the single entry point handlers talk to. It delegates
// to the use cases without adding behavior of its own.
type MarketplaceFacade struct {
	auth        *usecase.AuthUseCase
	registry    *usecase.RegistryUseCase
	catalog     *usecase.CatalogUseCase
	orders      *usecase.OrderUseCase
	reputations *usecase.ReputationUseCase
}

func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	registry *usecase.RegistryUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	reputations *usecase.ReputationUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:        auth,
		registry:    registry,
		catalog:     catalog,
		orders:      orders,
		reputations: reputations,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.SignUp(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) RegisterRole(ctx context.Context, accountID int64, role model.Role) error {
	return f.registry.Register(ctx, accountID, role)
}

func (f *MarketplaceFacade) WidenRole(ctx context.Context, accountID int64, role model.Role) error {
	return f.registry.UpdateRole(ctx, accountID, role)
}

func (f *MarketplaceFacade) RoleOf(ctx context.Context, accountID int64) (model.Role, error) {
	return f.registry.RoleOf(ctx, accountID)
}

func (f *MarketplaceFacade) PublishProduct(ctx context.Context, sellerID int64, product model.Product) (uint64, error) {
	return f.catalog.Publish(ctx, sellerID, product)
}

func (f *MarketplaceFacade) OwnProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	return f.catalog.ListMine(ctx, sellerID)
}

func (f *MarketplaceFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListAll(ctx)
}

func (f *MarketplaceFacade) ProductSales(ctx context.Context, productID uint64) (uint32, error) {
	return f.catalog.ProductSales(ctx, productID)
}

func (f *MarketplaceFacade) PlaceOrder(ctx context.Context, buyerID int64, productID uint64, quantity uint32) (*model.Order, error) {
	return f.orders.Create(ctx, buyerID, productID, quantity)
}

func (f *MarketplaceFacade) ShipOrder(ctx context.Context, callerID int64, orderID uint64) error {
	return f.orders.MarkShipped(ctx, callerID, orderID)
}

func (f *MarketplaceFacade) ReceiveOrder(ctx context.Context, callerID int64, orderID uint64) error {
	return f.orders.MarkReceived(ctx, callerID, orderID)
}

func (f *MarketplaceFacade) RequestCancel(ctx context.Context, callerID int64, orderID uint64) error {
	return f.orders.RequestCancel(ctx, callerID, orderID)
}

func (f *MarketplaceFacade) AcceptCancel(ctx context.Context, callerID int64, orderID uint64) error {
	return f.orders.AcceptCancel(ctx, callerID, orderID)
}

func (f *MarketplaceFacade) OrderState(ctx context.Context, orderID uint64) (model.OrderState, error) {
	return f.orders.StateOf(ctx, orderID)
}

func (f *MarketplaceFacade) OrdersCount(ctx context.Context, accountID int64) (uint32, error) {
	return f.orders.CountFor(ctx, accountID)
}

func (f *MarketplaceFacade) RateSeller(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	return f.reputations.RateSeller(ctx, callerID, orderID, score)
}

func (f *MarketplaceFacade) RateBuyer(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	return f.reputations.RateBuyer(ctx, callerID, orderID, score)
}

func (f *MarketplaceFacade) ReputationOf(ctx context.Context, accountID int64) (*model.Reputation, error) {
	return f.reputations.Reputation(ctx, accountID)
}

func (f *MarketplaceFacade) OrderRatings(ctx context.Context, orderID uint64) (*model.OrderRatings, error) {
	return f.reputations.OrderRatings(ctx, orderID)
}

func (f *MarketplaceFacade) CategoryStats(ctx context.Context, category string) (*model.CategoryStats, error) {
	return f.reputations.CategoryStats(ctx, category)
}

func (f *MarketplaceFacade) AccountsWithReputation(ctx context.Context) ([]model.AccountReputation, error) {
	return f.reputations.AccountsWithReputation(ctx)
}
