package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves both billing books: the wholesale customer
// routes sit under /api/billing, the regular ones under
// /api/regular-billing. Scope is fixed by the route, not the payload.
type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	wholesale := router.Group("/api/billing/customers",
		middleware.RequireRole(model.RoleAdmin, model.RoleWholesale))
	{
		wholesale.POST("", h.scoped(model.ScopeWholesale).create)
		wholesale.GET("", h.scoped(model.ScopeWholesale).list)
		wholesale.GET("/:id", h.get)
		wholesale.PUT("/:id", h.update)
		wholesale.GET("/:id/ledger", h.ledger)
	}

	regular := router.Group("/api/regular-billing/customers",
		middleware.RequireRole(model.RoleAdmin, model.RoleRegular))
	{
		regular.POST("", h.scoped(model.ScopeRegular).create)
		regular.GET("", h.scoped(model.ScopeRegular).list)
		regular.GET("/:id", h.get)
		regular.PUT("/:id", h.update)
		regular.GET("/:id/ledger", h.ledger)
	}
}

// scopedCustomerRoutes binds a billing scope to the shared handlers.
type scopedCustomerRoutes struct {
	h     *CustomerHandler
	scope string
}

func (h *CustomerHandler) scoped(scope string) scopedCustomerRoutes {
	return scopedCustomerRoutes{h: h, scope: scope}
}

// create adds a customer to the book
// @Summary      Create customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCustomerRequest  true  "Create Customer Payload"
// @Success      201      {object}  response.Response{data=service.CustomerResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/billing/customers [post]
func (r scopedCustomerRoutes) create(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	customer, err := r.h.customerService.CreateCustomer(c.Request.Context(), currentUserID(c), r.scope, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, customer))
}

// list returns the book's customers
// @Summary      List customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Search by name or phone"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response
// @Router       /api/billing/customers [get]
func (r scopedCustomerRoutes) list(c *gin.Context) {
	params := pagination.Parse(c)

	customers, total, err := r.h.customerService.ListCustomers(c.Request.Context(), r.scope, c.Query("search"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.ListPayload("customers", customers, total)))
}

// get returns one customer
// @Summary      Get customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response{data=service.CustomerResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/billing/customers/{id} [get]
func (h *CustomerHandler) get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

// update modifies a customer
// @Summary      Update customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Customer ID"
// @Param        payload  body      service.UpdateCustomerRequest  true  "Update Customer Payload"
// @Success      200      {object}  response.Response{data=service.CustomerResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/billing/customers/{id} [put]
func (h *CustomerHandler) update(c *gin.Context) {
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

// ledger returns the customer's merged statement
// @Summary      Customer ledger
// @Description  Sales, payments and jama/kharch entries merged chronologically with running balances
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response{data=service.CustomerLedgerResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/billing/customers/{id}/ledger [get]
func (h *CustomerHandler) ledger(c *gin.Context) {
	ledger, err := h.customerService.GetCustomerLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, ledger))
}
