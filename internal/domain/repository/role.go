package repository

import (
	"context"

	"github.com/peerbay/marketplace/internal/domain/model"
)

// RoleRepository stores the permission class per account together with the
// append-only roster used to enumerate registered accounts.
type RoleRepository interface {
	// Register stores the initial role and appends the account to the
	// roster. Fails with ErrAlreadyRegistered for a known account.
	Register(ctx context.Context, accountID int64, role model.Role) error
	// Save replaces an existing role. Fails with ErrNotFound when the
	// account never registered.
	Save(ctx context.Context, accountID int64, role model.Role) error
	// Get returns the stored role or ErrNotFound.
	Get(ctx context.Context, accountID int64) (model.Role, error)
	// ListRegistered enumerates accounts in registration order.
	ListRegistered(ctx context.Context) ([]int64, error)
}
