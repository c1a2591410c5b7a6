package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
)

// supplierRequest is the create/update payload. The same shape serves both
// because update replaces every caller-supplied field.
type supplierRequest struct {
	Matricule     string `json:"matricule"      validate:"required,max=50"`
	Name          string `json:"name"           validate:"required,max=200"`
	Address       string `json:"address"        validate:"max=500"`
	TaxCode       string `json:"tax_code"       validate:"max=50"`
	Email         string `json:"email"          validate:"required,email,max=100"`
	Phone         string `json:"phone"          validate:"omitempty,len=8,numeric"`
	Phone2        string `json:"phone2"         validate:"omitempty,len=8,numeric"`
	Fax           string `json:"fax"            validate:"omitempty,len=8,numeric"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Currency      string `json:"currency"       validate:"max=10"`
	Notes         string `json:"notes"          validate:"max=1000"`
	Active        bool   `json:"active"`
}

func (r supplierRequest) toInput() ports.SupplierInput {
	return ports.SupplierInput{
		Matricule:     r.Matricule,
		Name:          r.Name,
		Address:       r.Address,
		TaxCode:       r.TaxCode,
		Email:         r.Email,
		Phone:         r.Phone,
		Phone2:        r.Phone2,
		Fax:           r.Fax,
		ContactPerson: r.ContactPerson,
		Currency:      r.Currency,
		Notes:         r.Notes,
		Active:        r.Active,
	}
}

// pageResponse is the wire shape for every paginated listing.
type pageResponse struct {
	Items      []*domain.Supplier `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int                `json:"total_pages"`
}

func toPageResponse(p *ports.SupplierPage) pageResponse {
	items := p.Items
	if items == nil {
		items = []*domain.Supplier{}
	}
	return pageResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: p.TotalPages,
	}
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or not a number. Range clamping belongs to the service.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryBoolPtr parses an optional boolean query parameter; absence or a
// non-boolean value means "no criterion".
func queryBoolPtr(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// querySort reads sort_by / order parameters; desc is the default order so
// fresh records list first.
func querySort(c echo.Context) (sortBy string, desc bool) {
	sortBy = c.QueryParam("sort_by")
	desc = c.QueryParam("order") != "asc"
	return sortBy, desc
}
