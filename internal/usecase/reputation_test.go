package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
)

// receivedOrder drives one order through the full happy path and returns it.
func (f *marketFixture) receivedOrder(t *testing.T, pid uint64, quantity uint32) *model.Order {
	t.Helper()
	ctx := context.Background()
	order, err := f.orders.Create(ctx, buyerID, pid, quantity)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("mark shipped: %v", err)
	}
	if err := f.orders.MarkReceived(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("mark received: %v", err)
	}
	return order
}

func TestRateSellerRequiresReceivedOrder(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	order, err := f.orders.Create(ctx, buyerID, pid, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 5); err != domainErrors.ErrOrderNotReceived {
		t.Fatalf("expected ErrOrderNotReceived for pending order, got %v", err)
	}
	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 5); err != domainErrors.ErrOrderNotReceived {
		t.Fatalf("expected ErrOrderNotReceived for shipped order, got %v", err)
	}
}

func TestRateSellerScoreRange(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)
	order := f.receivedOrder(t, pid, 1)

	for _, score := range []uint8{0, 6, 200} {
		if err := f.ratings.RateSeller(ctx, buyerID, order.ID, score); err != domainErrors.ErrInvalidRating {
			t.Fatalf("expected ErrInvalidRating for score %d, got %v", score, err)
		}
	}
	if err := f.ratings.RateBuyer(ctx, sellerID, order.ID, 0); err != domainErrors.ErrInvalidRating {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestRateSellerExactlyOnce(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)
	order := f.receivedOrder(t, pid, 1)

	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 5); err != domainErrors.ErrAlreadyRated {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	// The seller slot stays independent.
	if err := f.ratings.RateBuyer(ctx, sellerID, order.ID, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ratings.RateBuyer(ctx, sellerID, order.ID, 3); err != domainErrors.ErrAlreadyRated {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	ratings, err := f.ratings.OrderRatings(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratings.ByBuyer == nil || *ratings.ByBuyer != 4 {
		t.Fatalf("expected buyer score 4, got %v", ratings.ByBuyer)
	}
	if ratings.BySeller == nil || *ratings.BySeller != 3 {
		t.Fatalf("expected seller score 3, got %v", ratings.BySeller)
	}
}

func TestRateAuthorization(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)
	order := f.receivedOrder(t, pid, 1)

	if err := f.ratings.RateSeller(ctx, sellerID, order.ID, 5); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for seller rating itself, got %v", err)
	}
	if err := f.ratings.RateBuyer(ctx, buyerID, order.ID, 5); err != domainErrors.ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for buyer rating itself, got %v", err)
	}
	if err := f.ratings.RateSeller(ctx, buyerID, 999, 5); err != domainErrors.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestReputationAveragesAcrossOrders(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 10)

	first := f.receivedOrder(t, pid, 1)
	second := f.receivedOrder(t, pid, 1)

	if err := f.ratings.RateSeller(ctx, buyerID, first.ID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ratings.RateSeller(ctx, buyerID, second.ID, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	avg, ok, err := f.ratings.AverageAsSeller(ctx, sellerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || avg != 4 {
		t.Fatalf("expected seller average 4, got %d (ok=%v)", avg, ok)
	}

	// The seller has no ratings as buyer.
	_, ok, err = f.ratings.AverageAsBuyer(ctx, sellerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected absent buyer average")
	}

	// Unrated accounts yield no average and no error.
	_, ok, err = f.ratings.AverageAsSeller(ctx, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected absent average for unknown account")
	}
}

func TestCategoryStatsFollowSellerRatings(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 10)

	first := f.receivedOrder(t, pid, 1)
	second := f.receivedOrder(t, pid, 1)

	if err := f.ratings.RateSeller(ctx, buyerID, first.ID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ratings.RateSeller(ctx, buyerID, second.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Buyer ratings never touch category stats.
	if err := f.ratings.RateBuyer(ctx, sellerID, first.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := f.ratings.CategoryStats(ctx, "books")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Sales != 2 || stats.RatingSum != 7 || stats.RatingCount != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if _, err := f.ratings.CategoryStats(ctx, "garden"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound for untouched category, got %v", err)
	}
}

func TestAccountsWithReputationFollowsRegistrationOrder(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 10)
	order := f.receivedOrder(t, pid, 1)

	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ratings.RateBuyer(ctx, sellerID, order.ID, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := f.ratings.AccountsWithReputation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(list))
	}
	if list[0].AccountID != sellerID || list[1].AccountID != buyerID {
		t.Fatalf("expected registration order [%d %d], got [%d %d]",
			sellerID, buyerID, list[0].AccountID, list[1].AccountID)
	}
	if list[0].Reputation.AsSellerSum != 5 || list[1].Reputation.AsBuyerSum != 4 {
		t.Fatalf("unexpected sums: %+v", list)
	}
}

// Full trade lifecycle: publish, order, ship, receive, rate.
func TestTradeLifecycle(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	order, err := f.orders.Create(ctx, buyerID, pid, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.store.ProductsByID[pid].Quantity; got != 3 {
		t.Fatalf("expected stock 3, got %d", got)
	}

	if err := f.orders.MarkShipped(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.orders.MarkReceived(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sales, err := f.catalog.ProductSales(ctx, pid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sales != 1 {
		t.Fatalf("expected 1 completed sale, got %d", sales)
	}

	// Receiving opens an empty ratings record.
	ratings, err := f.ratings.OrderRatings(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratings.ByBuyer != nil || ratings.BySeller != nil {
		t.Fatalf("expected empty ratings record, got %+v", ratings)
	}

	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	avg, ok, err := f.ratings.AverageAsSeller(ctx, sellerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || avg != 5 {
		t.Fatalf("expected seller average 5, got %d (ok=%v)", avg, ok)
	}

	stats, err := f.ratings.CategoryStats(ctx, "books")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Sales != 1 || stats.RatingSum != 5 || stats.RatingCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// Cancelled trade lifecycle: nothing completed, stock back where it started.
func TestCancelledTradeLifecycle(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()
	pid := f.publishFixtureProduct(t, 5)

	order, err := f.orders.Create(ctx, buyerID, pid, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.orders.RequestCancel(ctx, buyerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.orders.AcceptCancel(ctx, sellerID, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.store.ProductsByID[pid].Quantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
	sales, err := f.catalog.ProductSales(ctx, pid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sales != 0 {
		t.Fatalf("expected no completed sales, got %d", sales)
	}
	if err := f.ratings.RateSeller(ctx, buyerID, order.ID, 5); err != domainErrors.ErrOrderNotReceived {
		t.Fatalf("expected ErrOrderNotReceived, got %v", err)
	}
	if _, err := f.ratings.OrderRatings(ctx, order.ID); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound for ratings of cancelled order, got %v", err)
	}
}
