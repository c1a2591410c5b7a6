package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSortBy   = "created_at"
)

// SupplierService enforces the uniqueness invariants on matricule and email
// and composes listing/search queries. Duplicate checks run before any write
// so a failed create or update never partially mutates the store. A striped
// per-key lock serializes writers contending on the same matricule or email
// inside the process; the repository's unique indexes cover everything else.
type SupplierService struct {
	repo  ports.SupplierRepository
	locks *keyMutex
	log   zerolog.Logger
}

func NewSupplierService(repo ports.SupplierRepository, log zerolog.Logger) *SupplierService {
	return &SupplierService{repo: repo, locks: newKeyMutex(defaultStripes), log: log}
}

func (s *SupplierService) Create(ctx context.Context, input ports.SupplierInput) (*domain.Supplier, error) {
	unlock := s.locks.LockKeys("matricule:"+input.Matricule, "email:"+input.Email)
	defer unlock()

	if err := s.checkUnique(ctx, input.Matricule, input.Email, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	supplier := &domain.Supplier{
		Matricule:     input.Matricule,
		Name:          input.Name,
		Address:       input.Address,
		TaxCode:       input.TaxCode,
		Email:         input.Email,
		Phone:         input.Phone,
		Phone2:        input.Phone2,
		Fax:           input.Fax,
		ContactPerson: input.ContactPerson,
		Currency:      input.Currency,
		Notes:         input.Notes,
		Active:        input.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, supplier)
	if err != nil {
		s.log.Error().Err(err).Str("matricule", input.Matricule).Msg("failed to create supplier")
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("matricule", created.Matricule).Msg("supplier created")
	return created, nil
}

func (s *SupplierService) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

// Update overwrites every mutable field from input. The uniqueness checks
// exclude the record's own id so a supplier may keep its current matricule
// or email unchanged.
func (s *SupplierService) Update(ctx context.Context, id string, input ports.SupplierInput) (*domain.Supplier, error) {
	unlock := s.locks.LockKeys("matricule:"+input.Matricule, "email:"+input.Email)
	defer unlock()

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, input.Matricule, input.Email, id); err != nil {
		return nil, err
	}

	existing.Matricule = input.Matricule
	existing.Name = input.Name
	existing.Address = input.Address
	existing.TaxCode = input.TaxCode
	existing.Email = input.Email
	existing.Phone = input.Phone
	existing.Phone2 = input.Phone2
	existing.Fax = input.Fax
	existing.ContactPerson = input.ContactPerson
	existing.Currency = input.Currency
	existing.Notes = input.Notes
	existing.Active = input.Active
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update supplier")
		return nil, err
	}

	s.log.Info().Str("id", id).Msg("supplier updated")
	return updated, nil
}

func (s *SupplierService) Delete(ctx context.Context, id string) error {
	// DeleteByID reports ErrSupplierNotFound itself; deleting a nonexistent
	// id is never a silent no-op.
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("supplier deleted")
	return nil
}

// ToggleStatus flips the active flag and nothing else.
func (s *SupplierService) ToggleStatus(ctx context.Context, id string) (*domain.Supplier, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Active = !existing.Active
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Bool("active", updated.Active).Msg("supplier status toggled")
	return updated, nil
}

func (s *SupplierService) List(ctx context.Context, input ports.ListInput) (*ports.SupplierPage, error) {
	return s.page(ctx, ports.ListFilter{
		Page:     input.Page,
		Size:     input.Size,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
	})
}

// Search applies a logical AND over the criteria that are present; absent
// criteria impose no filter.
func (s *SupplierService) Search(ctx context.Context, input ports.SearchInput) (*ports.SupplierPage, error) {
	return s.page(ctx, ports.ListFilter{
		Matricule: input.Matricule,
		Name:      input.Name,
		Email:     input.Email,
		Active:    input.Active,
		Page:      input.Page,
		Size:      input.Size,
		SortBy:    input.SortBy,
		SortDesc:  input.SortDesc,
	})
}

// GlobalSearch matches term as a case-insensitive substring across
// matricule, name, email and contact person, newest first.
func (s *SupplierService) GlobalSearch(ctx context.Context, term string, page, size int) (*ports.SupplierPage, error) {
	return s.page(ctx, ports.ListFilter{
		Search:   term,
		Page:     page,
		Size:     size,
		SortDesc: true,
	})
}

func (s *SupplierService) ListActive(ctx context.Context) ([]*domain.Supplier, error) {
	return s.repo.FindActive(ctx)
}

func (s *SupplierService) page(ctx context.Context, filter ports.ListFilter) (*ports.SupplierPage, error) {
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = defaultPageSize
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}
	if filter.SortBy == "" {
		filter.SortBy = defaultSortBy
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list suppliers")
		return nil, err
	}

	totalPages := int(total) / filter.Size
	if int(total)%filter.Size != 0 {
		totalPages++
	}

	return &ports.SupplierPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages,
	}, nil
}

// checkUnique runs both existence checks before any write. excludeID is the
// updated record's own id, empty on create.
func (s *SupplierService) checkUnique(ctx context.Context, matricule, email, excludeID string) error {
	exists, err := s.repo.ExistsByMatricule(ctx, matricule, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateMatricule
	}

	exists, err = s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateEmail
	}
	return nil
}
