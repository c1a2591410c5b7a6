package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestock/supplier-registry/internal/api/metrics"
	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
)

type SupplierHandler struct {
	suppliers ports.SupplierService
}

func NewSupplierHandler(suppliers ports.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// Create registers a new supplier.
//
// @Summary      Create a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      supplierRequest  true  "Supplier details"
// @Success      201   {object}  domain.Supplier
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.suppliers.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	metrics.SuppliersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, supplier)
}

// List returns a page of suppliers, newest first by default.
//
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "0-based page index"
// @Param        size     query     int     false  "page size, capped at 100"
// @Param        sort_by  query     string  false  "sort field"
// @Param        order    query     string  false  "asc or desc"
// @Success      200      {object}  pageResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c echo.Context) error {
	sortBy, desc := querySort(c)
	page, err := h.suppliers.List(c.Request().Context(), ports.ListInput{
		Page:     queryInt(c, "page", 0),
		Size:     queryInt(c, "size", 0),
		SortBy:   sortBy,
		SortDesc: desc,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get returns a single supplier by identifier.
//
// @Summary      Get a supplier
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  domain.Supplier
// @Failure      404  {object}  map[string]string
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) Get(c echo.Context) error {
	supplier, err := h.suppliers.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Update replaces every caller-supplied field of an existing supplier.
//
// @Summary      Update a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Supplier ID"
// @Param        body  body      supplierRequest  true  "Supplier details"
// @Success      200   {object}  domain.Supplier
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.suppliers.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier permanently. Admin only.
//
// @Summary      Delete a supplier
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Supplier ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c echo.Context) error {
	if err := h.suppliers.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleStatus flips the active flag of a supplier.
//
// @Summary      Toggle supplier active status
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  domain.Supplier
// @Failure      404  {object}  map[string]string
// @Router       /api/suppliers/{id}/toggle-status [patch]
func (h *SupplierHandler) ToggleStatus(c echo.Context) error {
	supplier, err := h.suppliers.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Search filters suppliers by optional criteria combined with AND.
//
// @Summary      Criteria search
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        matricule  query     string  false  "substring match"
// @Param        name       query     string  false  "substring match"
// @Param        email      query     string  false  "substring match"
// @Param        active     query     bool    false  "exact match"
// @Param        page       query     int     false  "0-based page index"
// @Param        size       query     int     false  "page size, capped at 100"
// @Success      200        {object}  pageResponse
// @Router       /api/suppliers/search [get]
func (h *SupplierHandler) Search(c echo.Context) error {
	sortBy, desc := querySort(c)
	page, err := h.suppliers.Search(c.Request().Context(), ports.SearchInput{
		Matricule: c.QueryParam("matricule"),
		Name:      c.QueryParam("name"),
		Email:     c.QueryParam("email"),
		Active:    queryBoolPtr(c, "active"),
		Page:      queryInt(c, "page", 0),
		Size:      queryInt(c, "size", 0),
		SortBy:    sortBy,
		SortDesc:  desc,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// GlobalSearch matches one free-text term against matricule, name, email and
// contact person with OR semantics.
//
// @Summary      Global free-text search
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  true   "search term"
// @Param        page  query     int     false  "0-based page index"
// @Param        size  query     int     false  "page size, capped at 100"
// @Success      200   {object}  pageResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/suppliers/search/global [get]
func (h *SupplierHandler) GlobalSearch(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	page, err := h.suppliers.GlobalSearch(c.Request().Context(), term,
		queryInt(c, "page", 0), queryInt(c, "size", 0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// ListActive returns every active supplier without pagination, for dropdowns.
//
// @Summary      List active suppliers
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Supplier
// @Router       /api/suppliers/active [get]
func (h *SupplierHandler) ListActive(c echo.Context) error {
	suppliers, err := h.suppliers.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	if suppliers == nil {
		suppliers = []*domain.Supplier{}
	}
	return c.JSON(http.StatusOK, suppliers)
}
