package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

type createSaleRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,min=1"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
}

type updateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// Create records a sale. The seller is the authenticated caller.
//
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      createSaleRequest  true  "Sale details"
// @Success      201   {object}  domain.Sale
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sales [post]
func (h *SaleHandler) Create(c echo.Context) error {
	var req createSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sellerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sale, err := h.service.Create(c.Request().Context(), ports.CreateSaleInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		CustomerEmail: req.CustomerEmail,
		SellerID:      sellerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sale)
}

// List returns a page of sales, optionally filtered by status and seller.
//
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        sellerId  query     string  false  "Filter by seller ID"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse[domain.Sale]
// @Router       /sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	return h.list(c, ports.ListSalesFilter{
		Status:   c.QueryParam("status"),
		SellerID: c.QueryParam("sellerId"),
	})
}

// ListBySeller returns a page of sales made by a specific seller.
//
// @Summary      Get sales by seller
// @Tags         sales
// @Produce      json
// @Param        sellerId  path      string  true   "Seller ID"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse[domain.Sale]
// @Router       /sales/seller/{sellerId} [get]
func (h *SaleHandler) ListBySeller(c echo.Context) error {
	return h.list(c, ports.ListSalesFilter{
		SellerID: c.Param("sellerId"),
	})
}

func (h *SaleHandler) list(c echo.Context, filter ports.ListSalesFilter) error {
	filter.Page, filter.Limit = pageParams(c)

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse[*domain.Sale]{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single sale by id.
//
// @Summary      Get sale
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "Sale ID"
// @Success      200  {object}  domain.Sale
// @Failure      404  {object}  map[string]string
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c echo.Context) error {
	sale, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sale)
}

// UpdateStatus moves a sale to a new status.
//
// @Summary      Update sale status
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Sale ID"
// @Param        body  body      updateSaleStatusRequest  true  "New status"
// @Success      200   {object}  domain.Sale
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c echo.Context) error {
	var req updateSaleStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sale, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sale)
}

// Delete removes a sale record. Admin only.
//
// @Summary      Delete sale
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "Sale ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
