package repository

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (uint64, error)
	Get(ctx context.Context, id uint64) (*model.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	// IncreaseStock restores stock after a cancelled order.
	IncreaseStock(ctx context.Context, id uint64, amount uint32) error
	// Sales returns the completed sale counter, zero for unknown products.
	Sales(ctx context.Context, id uint64) (uint32, error)
}
