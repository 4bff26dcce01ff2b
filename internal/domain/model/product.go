package model

import (
	"math"
	"time"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
)

// Product is a catalog entry owned by a seller. Products are never deleted;
// only the stock quantity changes after creation.
type Product struct {
	ID          uint64
	SellerID    int64
	Name        string
	Description string
	Price       uint64
	Quantity    uint32
	Category    string
	CreatedAt   time.Time
}

// Validate checks the fields required at publish time.
func (p *Product) Validate() error {
	if p.Name == "" || p.Description == "" || p.Category == "" {
		return domainErrors.ErrInvalidData
	}
	if p.Price == 0 || p.Quantity == 0 {
		return domainErrors.ErrInvalidData
	}
	return nil
}

// IncreaseStock adds restored stock back, rejecting overflow.
func (p *Product) IncreaseStock(amount uint32) error {
	if p.Quantity > math.MaxUint32-amount {
		return domainErrors.ErrOverflow
	}
	p.Quantity += amount
	return nil
}

// DecreaseStock reserves stock for an order. The quantity check makes the
// subtraction itself safe, but it stays guarded anyway.
func (p *Product) DecreaseStock(amount uint32) error {
	if amount == 0 || amount > p.Quantity {
		return domainErrors.ErrInsufficientStock
	}
	p.Quantity -= amount
	return nil
}
