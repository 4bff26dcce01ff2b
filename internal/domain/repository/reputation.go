package repository

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
)

// ReputationRepository stores per-order ratings, per-account aggregates and
// per-category rollups.
type ReputationRepository interface {
	// RateSeller fills the buyer's slot on a RECEIVED order, updates the
	// seller's aggregate and folds the sale into the category rollup.
	RateSeller(ctx context.Context, callerID int64, orderID uint64, score uint8) error
	// RateBuyer fills the seller's slot and updates the buyer's aggregate.
	RateBuyer(ctx context.Context, callerID int64, orderID uint64, score uint8) error
	Reputation(ctx context.Context, accountID int64) (*model.Reputation, error)
	// ListWithReputation walks the registration roster and returns every
	// account that received at least one rating.
	ListWithReputation(ctx context.Context) ([]model.AccountReputation, error)
	OrderRatings(ctx context.Context, orderID uint64) (*model.OrderRatings, error)
	CategoryStats(ctx context.Context, category string) (*model.CategoryStats, error)
}
