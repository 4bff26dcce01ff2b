package model

import (
	"math"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
)

// Reputation aggregates ratings an account received in each of its roles.
// Sums are kept separately from counts so the average never loses precision
// to intermediate rounding.
type Reputation struct {
	AsBuyerCount  uint32
	AsBuyerSum    uint64
	AsSellerCount uint32
	AsSellerSum   uint64
}

// AverageAsBuyer returns the integer average rating received as buyer.
// The second result is false when no ratings were received.
func (r *Reputation) AverageAsBuyer() (uint64, bool) {
	if r.AsBuyerCount == 0 {
		return 0, false
	}
	return r.AsBuyerSum / uint64(r.AsBuyerCount), true
}

// AverageAsSeller returns the integer average rating received as seller.
func (r *Reputation) AverageAsSeller() (uint64, bool) {
	if r.AsSellerCount == 0 {
		return 0, false
	}
	return r.AsSellerSum / uint64(r.AsSellerCount), true
}

// AddAsBuyer records a rating received as buyer.
func (r *Reputation) AddAsBuyer(score uint8) error {
	if r.AsBuyerCount == math.MaxUint32 || r.AsBuyerSum > math.MaxUint64-uint64(score) {
		return domainErrors.ErrOverflow
	}
	r.AsBuyerCount++
	r.AsBuyerSum += uint64(score)
	return nil
}

// AddAsSeller records a rating received as seller.
func (r *Reputation) AddAsSeller(score uint8) error {
	if r.AsSellerCount == math.MaxUint32 || r.AsSellerSum > math.MaxUint64-uint64(score) {
		return domainErrors.ErrOverflow
	}
	r.AsSellerCount++
	r.AsSellerSum += uint64(score)
	return nil
}

// AccountReputation pairs an account with its aggregate, as returned by the
// roster enumeration used for reporting.
type AccountReputation struct {
	AccountID  int64
	Reputation Reputation
}
