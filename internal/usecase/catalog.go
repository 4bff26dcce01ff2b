package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/domain/repository"
)

// CatalogUseCase manages product publishing and listings.
type CatalogUseCase struct {
	roles    repository.RoleRepository
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(roles repository.RoleRepository, products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{roles: roles, products: products}
}

// Publish validates the product and stores it under the calling seller.
func (u *CatalogUseCase) Publish(ctx context.Context, callerID int64, product model.Product) (uint64, error) {
	role, err := u.roles.Get(ctx, callerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, domainErrors.ErrNotSeller
		}
		return 0, err
	}
	if !role.IsSeller() {
		return 0, domainErrors.ErrNotSeller
	}

	product.SellerID = callerID
	if err := product.Validate(); err != nil {
		return 0, err
	}

	return u.products.Create(ctx, &product)
}

// ListMine returns the caller's published products.
func (u *CatalogUseCase) ListMine(ctx context.Context, callerID int64) ([]model.Product, error) {
	return u.products.ListBySeller(ctx, callerID)
}

// ListAll returns every published product in identifier order.
func (u *CatalogUseCase) ListAll(ctx context.Context) ([]model.Product, error) {
	return u.products.ListAll(ctx)
}

// ProductSales returns the completed sale counter for a product.
func (u *CatalogUseCase) ProductSales(ctx context.Context, productID uint64) (uint32, error) {
	return u.products.Sales(ctx, productID)
}
