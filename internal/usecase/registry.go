package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/domain/repository"
)

// RegistryUseCase manages account permission classes.
type RegistryUseCase struct {
	roles repository.RoleRepository
}

// NewRegistryUseCase constructs RegistryUseCase.
func NewRegistryUseCase(roles repository.RoleRepository) *RegistryUseCase {
	return &RegistryUseCase{roles: roles}
}

// Register stores the caller's initial role and appends it to the roster.
func (u *RegistryUseCase) Register(ctx context.Context, callerID int64, role model.Role) error {
	if !role.Valid() {
		return domainErrors.ErrInvalidData
	}
	return u.roles.Register(ctx, callerID, role)
}

// UpdateRole widens the caller's stored role. Downgrade attempts are
// absorbed by the widen-only merge, never rejected.
func (u *RegistryUseCase) UpdateRole(ctx context.Context, callerID int64, role model.Role) error {
	if !role.Valid() {
		return domainErrors.ErrInvalidData
	}

	current, err := u.roles.Get(ctx, callerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrNotRegistered
		}
		return err
	}

	return u.roles.Save(ctx, callerID, current.Widen(role))
}

// RoleOf returns the stored role; ErrNotFound when the account never registered.
func (u *RegistryUseCase) RoleOf(ctx context.Context, accountID int64) (model.Role, error) {
	return u.roles.Get(ctx, accountID)
}
