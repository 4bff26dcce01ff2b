package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	testhelpers "github.com/peerbay/marketplace/internal/test"
)

type marketFixture struct {
	store    *testhelpers.MemoryStore
	registry *RegistryUseCase
	catalog  *CatalogUseCase
	orders   *OrderUseCase
	ratings  *ReputationUseCase
}

const (
	sellerID = int64(1)
	buyerID  = int64(2)
)

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	return &marketFixture{
		store:    store,
		registry: NewRegistryUseCase(store.Roles()),
		catalog:  NewCatalogUseCase(store.Roles(), store.Products()),
		orders:   NewOrderUseCase(store.Roles(), store.Orders()),
		ratings:  NewReputationUseCase(store.Reputations()),
	}
}

// publishFixtureProduct registers both parties and publishes one product
// with the given stock, returning its identifier.
func (f *marketFixture) publishFixtureProduct(t *testing.T, stock uint32) uint64 {
	t.Helper()
	ctx := context.Background()
	if err := f.registry.Register(ctx, sellerID, model.RoleSeller); err != nil {
		t.Fatalf("register seller: %v", err)
	}
	if err := f.registry.Register(ctx, buyerID, model.RoleBuyer); err != nil {
		t.Fatalf("register buyer: %v", err)
	}
	id, err := f.catalog.Publish(ctx, sellerID, model.Product{
		Name: "book", Description: "hardcover", Price: 500, Quantity: stock, Category: "books",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	return id
}

func TestOrderCreateReservesStock(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	order, err := f.orders.Create(ctx, buyerID, pid, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 1 {
		t.Fatalf("expected first order id 1, got %d", order.ID)
	}
	if order.SellerID != sellerID {
		t.Fatalf("expected seller snapshot %d, got %d", sellerID, order.SellerID)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 2 {
		t.Fatalf("expected stock 2 after reservation, got %d", got)
	}

	if _, err := f.orders.Create(ctx, buyerID, pid, 10); err != domainErrors.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := f.orders.Create(ctx, buyerID, pid, 0); err != domainErrors.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock for zero quantity, got %v", err)
	}
	if _, err := f.orders.Create(ctx, buyerID, 999, 1); err != domainErrors.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestOrderCreateRequiresBuyerRole(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	if _, err := f.orders.Create(ctx, 99, pid, 1); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for unregistered caller, got %v", err)
	}
	if _, err := f.orders.Create(ctx, sellerID, pid, 1); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for pure seller, got %v", err)
	}
}

func TestOrderForwardTransitions(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 2)

	order, err := f.orders.Create(ctx, buyerID, pid, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shipment is not skippable.
	if err := f.orders.MarkReceived(ctx, buyerID, order.ID); err != domainErrors.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState receiving a pending order, got %v", err)
	}

	if err := f.orders.MarkShipped(ctx, buyerID, order.ID); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for buyer shipping, got %v", err)
	}
	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != domainErrors.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState shipping twice, got %v", err)
	}

	if err := f.orders.MarkReceived(ctx, sellerID, order.ID); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for seller receiving, got %v", err)
	}
	if err := f.orders.MarkReceived(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Terminal: nothing moves a received order again.
	if err := f.orders.MarkReceived(ctx, buyerID, order.ID); err != domainErrors.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState receiving twice, got %v", err)
	}
	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != domainErrors.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState shipping a received order, got %v", err)
	}
	if err := f.orders.RequestCancel(ctx, buyerID, order.ID); err != domainErrors.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState cancelling a received order, got %v", err)
	}

	state, err := f.orders.StateOf(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != model.OrderStateReceived {
		t.Fatalf("expected RECEIVED, got %s", state)
	}
}

func TestOrderOperationsOnUnknownOrder(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	if err := f.orders.MarkShipped(ctx, sellerID, 123); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := f.orders.MarkReceived(ctx, buyerID, 123); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := f.orders.RequestCancel(ctx, buyerID, 123); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := f.orders.AcceptCancel(ctx, sellerID, 123); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := f.orders.StateOf(ctx, 123); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderMutualCancellationRestoresStockOnce(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	order, err := f.orders.Create(ctx, buyerID, pid, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 3 {
		t.Fatalf("expected stock 3 after order, got %d", got)
	}

	// One consent leaves the state untouched.
	if err := f.orders.RequestCancel(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ := f.orders.StateOf(ctx, order.ID)
	if state != model.OrderStatePending {
		t.Fatalf("expected PENDING after one consent, got %s", state)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 3 {
		t.Fatalf("stock restored prematurely: %d", got)
	}

	// Repeating the same consent is idempotent.
	if err := f.orders.RequestCancel(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.orders.AcceptCancel(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ = f.orders.StateOf(ctx, order.ID)
	if state != model.OrderStateCancelled {
		t.Fatalf("expected CANCELLED, got %s", state)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}

	// The second consent arriving again must not restore stock twice.
	if err := f.orders.AcceptCancel(ctx, sellerID, order.ID); err != domainErrors.ErrInvalidState {
		t.Fatalf("expected ErrInvalidState on cancelled order, got %v", err)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 5 {
		t.Fatalf("stock restored twice: %d", got)
	}
}

func TestOrderCancellationIsOrderIndependent(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 4)

	order, err := f.orders.Create(ctx, buyerID, pid, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Seller consents first; shipped orders stay cancelable.
	if err := f.orders.AcceptCancel(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ := f.orders.StateOf(ctx, order.ID)
	if state != model.OrderStateShipped {
		t.Fatalf("expected SHIPPED after seller consent, got %s", state)
	}

	if err := f.orders.RequestCancel(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ = f.orders.StateOf(ctx, order.ID)
	if state != model.OrderStateCancelled {
		t.Fatalf("expected CANCELLED, got %s", state)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 4 {
		t.Fatalf("expected full stock restored, got %d", got)
	}
}

func TestOrderCancelAuthorization(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 2)

	order, err := f.orders.Create(ctx, buyerID, pid, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.orders.RequestCancel(ctx, sellerID, order.ID); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := f.orders.AcceptCancel(ctx, buyerID, order.ID); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestOrderCountFor(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	for i := 0; i < 3; i++ {
		if _, err := f.orders.Create(ctx, buyerID, pid, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	count, err := f.orders.CountFor(ctx, buyerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 orders, got %d", count)
	}

	count, err = f.orders.CountFor(ctx, sellerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 orders for seller, got %d", count)
	}
}

// Stock conservation: initial stock equals current stock plus active
// reservations, with cancelled quantities restored.
func TestStockConservationAcrossOrders(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 10)

	first, err := f.orders.Create(ctx, buyerID, pid, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.orders.Create(ctx, buyerID, pid, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 3 {
		t.Fatalf("expected stock 3, got %d", got)
	}

	// Cancel the first order, keep the second active.
	if err := f.orders.RequestCancel(ctx, buyerID, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.orders.AcceptCancel(ctx, sellerID, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 7 {
		t.Fatalf("expected stock 7 (10 - 3 active), got %d", got)
	}

	_ = second
}
