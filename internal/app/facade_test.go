package app

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	testhelpers "github.com/peerbay/marketplace/internal/test"
	"github.com/peerbay/marketplace/internal/usecase"
)

func newFacade() (*MarketplaceFacade, *testhelpers.MemoryStore) {
	store := testhelpers.NewMemoryStore()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(store.Accounts(), testhelpers.HasherStub{}, strategy)
	registryUC := usecase.NewRegistryUseCase(store.Roles())
	catalogUC := usecase.NewCatalogUseCase(store.Roles(), store.Products())
	orderUC := usecase.NewOrderUseCase(store.Roles(), store.Orders())
	reputationUC := usecase.NewReputationUseCase(store.Reputations())

	return NewMarketplaceFacade(authUC, registryUC, catalogUC, orderUC, reputationUC), store
}

func TestMarketplaceFacadeAuth(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()

	token, err := facade.Register(ctx, "user", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	token, err = facade.Authenticate(ctx, "user", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

// TestMarketplaceFacadeTradeFlow drives a full trade through the facade the
// way the HTTP layer does: roles, listing, order, delivery, ratings.
func TestMarketplaceFacadeTradeFlow(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()
	const sellerID, buyerID = int64(1), int64(2)

	if err := facade.RegisterRole(ctx, sellerID, model.RoleSeller); err != nil {
		t.Fatalf("register seller: %v", err)
	}
	if err := facade.RegisterRole(ctx, buyerID, model.RoleBuyer); err != nil {
		t.Fatalf("register buyer: %v", err)
	}
	if err := facade.WidenRole(ctx, buyerID, model.RoleBoth); err != nil {
		t.Fatalf("widen buyer: %v", err)
	}
	role, err := facade.RoleOf(ctx, buyerID)
	if err != nil || role != model.RoleBoth {
		t.Fatalf("unexpected role: %s %v", role, err)
	}

	productID, err := facade.PublishProduct(ctx, sellerID, model.Product{
		Name: "mug", Description: "ceramic", Price: 100, Quantity: 5, Category: "kitchen",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	mine, err := facade.OwnProducts(ctx, sellerID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("unexpected own products: %v %v", mine, err)
	}
	all, err := facade.Products(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("unexpected products: %v %v", all, err)
	}

	order, err := facade.PlaceOrder(ctx, buyerID, productID, 2)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if err := facade.ShipOrder(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("ship: %v", err)
	}
	if err := facade.ReceiveOrder(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("receive: %v", err)
	}

	state, err := facade.OrderState(ctx, order.ID)
	if err != nil || state != model.OrderStateReceived {
		t.Fatalf("unexpected state: %s %v", state, err)
	}
	count, err := facade.OrdersCount(ctx, buyerID)
	if err != nil || count != 1 {
		t.Fatalf("unexpected count: %d %v", count, err)
	}
	sales, err := facade.ProductSales(ctx, productID)
	if err != nil || sales != 1 {
		t.Fatalf("unexpected sales: %d %v", sales, err)
	}

	if err := facade.RateSeller(ctx, buyerID, order.ID, 5); err != nil {
		t.Fatalf("rate seller: %v", err)
	}
	if err := facade.RateBuyer(ctx, sellerID, order.ID, 4); err != nil {
		t.Fatalf("rate buyer: %v", err)
	}

	ratings, err := facade.OrderRatings(ctx, order.ID)
	if err != nil || ratings.ByBuyer == nil || *ratings.ByBuyer != 5 || ratings.BySeller == nil || *ratings.BySeller != 4 {
		t.Fatalf("unexpected ratings: %+v %v", ratings, err)
	}

	rep, err := facade.ReputationOf(ctx, sellerID)
	if err != nil {
		t.Fatalf("reputation: %v", err)
	}
	if avg, ok := rep.AverageAsSeller(); !ok || avg != 5 {
		t.Fatalf("unexpected seller average: %d %v", avg, ok)
	}

	stats, err := facade.CategoryStats(ctx, "kitchen")
	if err != nil || stats.Sales != 1 || stats.RatingSum != 5 {
		t.Fatalf("unexpected category stats: %+v %v", stats, err)
	}

	accounts, err := facade.AccountsWithReputation(ctx)
	if err != nil || len(accounts) != 2 {
		t.Fatalf("unexpected roster: %+v %v", accounts, err)
	}
}

func TestMarketplaceFacadeCancellation(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()
	const sellerID, buyerID = int64(1), int64(2)

	if err := facade.RegisterRole(ctx, sellerID, model.RoleSeller); err != nil {
		t.Fatalf("register seller: %v", err)
	}
	if err := facade.RegisterRole(ctx, buyerID, model.RoleBuyer); err != nil {
		t.Fatalf("register buyer: %v", err)
	}
	productID, err := facade.PublishProduct(ctx, sellerID, model.Product{
		Name: "mug", Description: "ceramic", Price: 100, Quantity: 5, Category: "kitchen",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	order, err := facade.PlaceOrder(ctx, buyerID, productID, 3)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if err := facade.RequestCancel(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("request cancel: %v", err)
	}
	if err := facade.AcceptCancel(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("accept cancel: %v", err)
	}

	state, err := facade.OrderState(ctx, order.ID)
	if err != nil || state != model.OrderStateCancelled {
		t.Fatalf("unexpected state: %s %v", state, err)
	}
	if _, err := facade.OrderRatings(ctx, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected no ratings record, got %v", err)
	}
}
