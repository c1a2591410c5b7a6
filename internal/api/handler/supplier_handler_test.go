package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
)

// fakeSupplierService captures the last inputs so tests can assert that
// transport parameters reach the service unmodified.
type fakeSupplierService struct {
	supplier *domain.Supplier
	page     *ports.SupplierPage
	active   []*domain.Supplier
	err      error

	lastInput  ports.SupplierInput
	lastID     string
	lastList   ports.ListInput
	lastSearch ports.SearchInput
	lastTerm   string
	lastPage   int
	lastSize   int
	deleted    []string
}

func (f *fakeSupplierService) Create(_ context.Context, input ports.SupplierInput) (*domain.Supplier, error) {
	f.lastInput = input
	return f.supplier, f.err
}

func (f *fakeSupplierService) GetByID(_ context.Context, id string) (*domain.Supplier, error) {
	f.lastID = id
	return f.supplier, f.err
}

func (f *fakeSupplierService) Update(_ context.Context, id string, input ports.SupplierInput) (*domain.Supplier, error) {
	f.lastID = id
	f.lastInput = input
	return f.supplier, f.err
}

func (f *fakeSupplierService) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSupplierService) ToggleStatus(_ context.Context, id string) (*domain.Supplier, error) {
	f.lastID = id
	return f.supplier, f.err
}

func (f *fakeSupplierService) List(_ context.Context, input ports.ListInput) (*ports.SupplierPage, error) {
	f.lastList = input
	return f.page, f.err
}

func (f *fakeSupplierService) Search(_ context.Context, input ports.SearchInput) (*ports.SupplierPage, error) {
	f.lastSearch = input
	return f.page, f.err
}

func (f *fakeSupplierService) GlobalSearch(_ context.Context, term string, page, size int) (*ports.SupplierPage, error) {
	f.lastTerm, f.lastPage, f.lastSize = term, page, size
	return f.page, f.err
}

func (f *fakeSupplierService) ListActive(_ context.Context) ([]*domain.Supplier, error) {
	return f.active, f.err
}

const validSupplierBody = `{
	"matricule": "F100",
	"name": "Acme Trading",
	"email": "contact@acme.tn",
	"phone": "71234567",
	"contact_person": "Sami Ben Ali",
	"currency": "TND",
	"active": true
}`

func TestCreateSupplier(t *testing.T) {
	svc := &fakeSupplierService{supplier: &domain.Supplier{ID: "1", Matricule: "F100"}}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/suppliers", validSupplierBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if svc.lastInput.Matricule != "F100" || svc.lastInput.ContactPerson != "Sami Ben Ali" {
		t.Fatalf("input not forwarded: %+v", svc.lastInput)
	}
}

func TestCreateSupplierValidation(t *testing.T) {
	h := NewSupplierHandler(&fakeSupplierService{})

	cases := map[string]string{
		"missing matricule": `{"name":"Acme","email":"a@b.tn"}`,
		"missing name":      `{"matricule":"F100","email":"a@b.tn"}`,
		"bad email":         `{"matricule":"F100","name":"Acme","email":"nope"}`,
		"short phone":       `{"matricule":"F100","name":"Acme","email":"a@b.tn","phone":"123"}`,
		"alpha phone":       `{"matricule":"F100","name":"Acme","email":"a@b.tn","phone":"abcdefgh"}`,
	}
	for name, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/api/suppliers", body)
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: err = %v, want 400", name, err)
		}
	}
}

func TestCreateSupplierDuplicatePassesThrough(t *testing.T) {
	h := NewSupplierHandler(&fakeSupplierService{err: domain.ErrDuplicateMatricule})

	c, _ := newTestContext(t, http.MethodPost, "/api/suppliers", validSupplierBody)
	if err := h.Create(c); err != domain.ErrDuplicateMatricule {
		t.Fatalf("err = %v, want ErrDuplicateMatricule", err)
	}
}

func TestListForwardsPagination(t *testing.T) {
	svc := &fakeSupplierService{page: &ports.SupplierPage{Page: 2, Size: 5}}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/suppliers?page=2&size=5&sort_by=name&order=asc", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := ports.ListInput{Page: 2, Size: 5, SortBy: "name", SortDesc: false}
	if svc.lastList != want {
		t.Fatalf("list input = %+v, want %+v", svc.lastList, want)
	}
}

func TestListDefaultsToDescending(t *testing.T) {
	svc := &fakeSupplierService{page: &ports.SupplierPage{}}
	h := NewSupplierHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/suppliers", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !svc.lastList.SortDesc {
		t.Fatalf("default order should be descending")
	}
	if svc.lastList.Page != 0 {
		t.Fatalf("default page = %d, want 0", svc.lastList.Page)
	}
}

func TestListEmptyPageSerializesItemsArray(t *testing.T) {
	svc := &fakeSupplierService{page: &ports.SupplierPage{Items: nil, Total: 0, Size: 10}}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/suppliers", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(resp["items"]) != "[]" {
		t.Fatalf("items = %s, want []", resp["items"])
	}
}

func TestGetSupplier(t *testing.T) {
	svc := &fakeSupplierService{supplier: &domain.Supplier{ID: "abc", Name: "Acme Trading"}}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/suppliers/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.lastID != "abc" {
		t.Fatalf("id = %q, want abc", svc.lastID)
	}
}

func TestGetSupplierNotFoundPassesThrough(t *testing.T) {
	h := NewSupplierHandler(&fakeSupplierService{err: domain.ErrSupplierNotFound})

	c, _ := newTestContext(t, http.MethodGet, "/api/suppliers/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); err != domain.ErrSupplierNotFound {
		t.Fatalf("err = %v, want ErrSupplierNotFound", err)
	}
}

func TestUpdateSupplier(t *testing.T) {
	svc := &fakeSupplierService{supplier: &domain.Supplier{ID: "abc"}}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/api/suppliers/abc", validSupplierBody)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.lastID != "abc" || svc.lastInput.Matricule != "F100" {
		t.Fatalf("update not forwarded: id=%q input=%+v", svc.lastID, svc.lastInput)
	}
}

func TestDeleteSupplier(t *testing.T) {
	svc := &fakeSupplierService{}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/api/suppliers/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "abc" {
		t.Fatalf("deleted = %v", svc.deleted)
	}
}

func TestToggleStatus(t *testing.T) {
	svc := &fakeSupplierService{supplier: &domain.Supplier{ID: "abc", Active: false}}
	h := NewSupplierHandler(svc)

	c, rec := newTestContext(t, http.MethodPatch, "/api/suppliers/abc/toggle-status", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.ToggleStatus(c); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.lastID != "abc" {
		t.Fatalf("id = %q, want abc", svc.lastID)
	}
}

func TestSearchForwardsCriteria(t *testing.T) {
	svc := &fakeSupplierService{page: &ports.SupplierPage{}}
	h := NewSupplierHandler(svc)

	c, _ := newTestContext(t, http.MethodGet,
		"/api/suppliers/search?matricule=F1&name=acme&active=true&page=1&size=20", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	got := svc.lastSearch
	if got.Matricule != "F1" || got.Name != "acme" || got.Page != 1 || got.Size != 20 {
		t.Fatalf("search input = %+v", got)
	}
	if got.Active == nil || !*got.Active {
		t.Fatalf("active criterion not forwarded: %+v", got.Active)
	}
}

func TestSearchOmitsAbsentActive(t *testing.T) {
	svc := &fakeSupplierService{page: &ports.SupplierPage{}}
	h := NewSupplierHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/suppliers/search?name=acme", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if svc.lastSearch.Active != nil {
		t.Fatalf("absent active should stay nil")
	}
}

func TestGlobalSearchRequiresTerm(t *testing.T) {
	h := NewSupplierHandler(&fakeSupplierService{page: &ports.SupplierPage{}})

	c, _ := newTestContext(t, http.MethodGet, "/api/suppliers/search/global", "")
	err := h.GlobalSearch(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestGlobalSearchForwardsTerm(t *testing.T) {
	svc := &fakeSupplierService{page: &ports.SupplierPage{}}
	h := NewSupplierHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/suppliers/search/global?q=nadi&page=1&size=5", "")
	if err := h.GlobalSearch(c); err != nil {
		t.Fatalf("global search: %v", err)
	}
	if svc.lastTerm != "nadi" || svc.lastPage != 1 || svc.lastSize != 5 {
		t.Fatalf("forwarded = (%q, %d, %d)", svc.lastTerm, svc.lastPage, svc.lastSize)
	}
}

func TestListActiveEmptySerializesArray(t *testing.T) {
	h := NewSupplierHandler(&fakeSupplierService{active: nil})

	c, rec := newTestContext(t, http.MethodGet, "/api/suppliers/active", "")
	if err := h.ListActive(c); err != nil {
		t.Fatalf("list active: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("body = %q, want empty array", body)
	}
}
