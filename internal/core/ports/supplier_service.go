package ports

import (
	"context"

	"github.com/gestock/supplier-registry/internal/core/domain"
)

// SupplierInput carries all caller-supplied fields for create and update.
// The system-assigned identifier and timestamps are never part of it.
type SupplierInput struct {
	Matricule     string
	Name          string
	Address       string
	TaxCode       string
	Email         string
	Phone         string
	Phone2        string
	Fax           string
	ContactPerson string
	Currency      string
	Notes         string
	Active        bool
}

// SupplierPage is a single page of suppliers plus pagination metadata.
type SupplierPage struct {
	Items      []*domain.Supplier
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// ListInput carries all parameters for the plain listing endpoint.
type ListInput struct {
	Page     int
	Size     int
	SortBy   string
	SortDesc bool
}

// SearchInput carries the optional criteria for the criteria search.
type SearchInput struct {
	Matricule string
	Name      string
	Email     string
	Active    *bool
	Page      int
	Size      int
	SortBy    string
	SortDesc  bool
}

// SupplierService defines use-case operations over the supplier collection.
type SupplierService interface {
	Create(ctx context.Context, input SupplierInput) (*domain.Supplier, error)
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	Update(ctx context.Context, id string, input SupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, input ListInput) (*SupplierPage, error)
	Search(ctx context.Context, input SearchInput) (*SupplierPage, error)
	GlobalSearch(ctx context.Context, term string, page, size int) (*SupplierPage, error)
	ListActive(ctx context.Context) ([]*domain.Supplier, error)
}
