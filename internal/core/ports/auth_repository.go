package ports

import (
	"context"

	"github.com/gestock/supplier-registry/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsernameOrEmail matches the identifier against either unique
	// field in a single logical OR lookup.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
