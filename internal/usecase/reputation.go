package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/domain/repository"
)

// ReputationUseCase manages rating submission and reputation queries.
type ReputationUseCase struct {
	reputations repository.ReputationRepository
}

// NewReputationUseCase constructs ReputationUseCase.
func NewReputationUseCase(reputations repository.ReputationRepository) *ReputationUseCase {
	return &ReputationUseCase{reputations: reputations}
}

// RateSeller lets the buyer of a received order score the seller once.
func (u *ReputationUseCase) RateSeller(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	if err := ValidateScore(score); err != nil {
		return err
	}
	return u.reputations.RateSeller(ctx, callerID, orderID, score)
}

// RateBuyer lets the seller of a received order score the buyer once.
func (u *ReputationUseCase) RateBuyer(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	if err := ValidateScore(score); err != nil {
		return err
	}
	return u.reputations.RateBuyer(ctx, callerID, orderID, score)
}

// Reputation returns the aggregate for an account; ErrNotFound when the
// account never received a rating.
func (u *ReputationUseCase) Reputation(ctx context.Context, accountID int64) (*model.Reputation, error) {
	return u.reputations.Reputation(ctx, accountID)
}

// AverageAsBuyer returns the integer average rating received as buyer.
func (u *ReputationUseCase) AverageAsBuyer(ctx context.Context, accountID int64) (uint64, bool, error) {
	rep, err := u.reputations.Reputation(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	avg, ok := rep.AverageAsBuyer()
	return avg, ok, nil
}

// AverageAsSeller returns the integer average rating received as seller.
func (u *ReputationUseCase) AverageAsSeller(ctx context.Context, accountID int64) (uint64, bool, error) {
	rep, err := u.reputations.Reputation(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	avg, ok := rep.AverageAsSeller()
	return avg, ok, nil
}

// OrderRatings returns both rating slots for an order.
func (u *ReputationUseCase) OrderRatings(ctx context.Context, orderID uint64) (*model.OrderRatings, error) {
	return u.reputations.OrderRatings(ctx, orderID)
}

// CategoryStats returns the rollup for a category.
func (u *ReputationUseCase) CategoryStats(ctx context.Context, category string) (*model.CategoryStats, error) {
	return u.reputations.CategoryStats(ctx, category)
}

// AccountsWithReputation enumerates every registered account that has
// received at least one rating, in registration order.
func (u *ReputationUseCase) AccountsWithReputation(ctx context.Context) ([]model.AccountReputation, error) {
	return u.reputations.ListWithReputation(ctx)
}
