package ports

import (
	"context"

	"github.com/gestock/supplier-registry/internal/core/domain"
)

// ListFilter carries all query parameters for listing suppliers. Each
// optional criterion applies only when non-zero; text criteria match as
// case-insensitive substrings while Active matches exactly.
type ListFilter struct {
	Matricule string // optional: substring match on matricule
	Name      string // optional: substring match on name
	Email     string // optional: substring match on email
	Active    *bool  // optional: exact match on the active flag
	Search    string // optional: OR substring match on matricule, name, email, contact_person
	Page      int    // 0-based
	Size      int    // rows per page (capped at 100 by the service)
	SortBy    string // field name; the store decides whether it is meaningful
	SortDesc  bool
}

// SupplierRepository defines persistence operations for suppliers.
// The backing store must carry unique indexes on matricule and email; the
// Exists* methods are the fast path for friendly duplicate errors, not the
// correctness mechanism under concurrent writers.
type SupplierRepository interface {
	Insert(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByMatricule(ctx context.Context, matricule string, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	// List returns a page of suppliers matching filter and the total count.
	List(ctx context.Context, filter ListFilter) ([]*domain.Supplier, int64, error)
	FindActive(ctx context.Context) ([]*domain.Supplier, error)
}
