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

// LedgerHandler serves the four jama/kharch books: cash and silver for
// each billing scope. Scope and account come from the route.
type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	wholesale := router.Group("/api/wholesale-jama-kharch",
		middleware.RequireRole(model.RoleAdmin, model.RoleWholesale))
	regular := router.Group("/api/regular-jama-kharch",
		middleware.RequireRole(model.RoleAdmin, model.RoleRegular))

	for account, path := range map[string]string{
		model.LedgerAccountCash:   "/cash",
		model.LedgerAccountSilver: "/silver",
	} {
		wholesale.GET(path, h.book(model.ScopeWholesale, account).list)
		wholesale.POST(path, h.book(model.ScopeWholesale, account).create)
		wholesale.DELETE(path+"/:id", h.book(model.ScopeWholesale, account).remove)

		regular.GET(path, h.book(model.ScopeRegular, account).list)
		regular.POST(path, h.book(model.ScopeRegular, account).create)
		regular.DELETE(path+"/:id", h.book(model.ScopeRegular, account).remove)
	}
}

type ledgerBookRoutes struct {
	h       *LedgerHandler
	scope   string
	account string
}

func (h *LedgerHandler) book(scope, account string) ledgerBookRoutes {
	return ledgerBookRoutes{h: h, scope: scope, account: account}
}

// list returns one book page with jama/kharch totals
// @Summary      List ledger entries
// @Tags         jama-kharch
// @Security     BearerAuth
// @Produce      json
// @Param        type   query     string  false  "Entry type (JAMA or KHARCH)"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=service.LedgerPageResponse}
// @Failure      400    {object}  response.Response
// @Router       /api/wholesale-jama-kharch/cash [get]
func (r ledgerBookRoutes) list(c *gin.Context) {
	params := pagination.Parse(c)

	page, total, err := r.h.ledgerService.ListEntries(c.Request.Context(), r.scope, r.account, c.Query("type"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	payload := params.ListPayload("entries", page.Entries, total)
	payload["total_jama"] = page.TotalJama
	payload["total_kharch"] = page.TotalKharch
	payload["net"] = page.Net
	c.JSON(http.StatusOK, response.Success(http.StatusOK, payload))
}

// create appends a book entry
// @Summary      Create ledger entry
// @Tags         jama-kharch
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLedgerEntryRequest  true  "Create Entry Payload"
// @Success      201      {object}  response.Response{data=service.LedgerEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/wholesale-jama-kharch/cash [post]
func (r ledgerBookRoutes) create(c *gin.Context) {
	var req service.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := r.h.ledgerService.CreateEntry(c.Request.Context(), currentUserID(c), r.scope, r.account, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// remove deletes a book entry
// @Summary      Delete ledger entry
// @Tags         jama-kharch
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/wholesale-jama-kharch/cash/{id} [delete]
func (r ledgerBookRoutes) remove(c *gin.Context) {
	if err := r.h.ledgerService.DeleteEntry(c.Request.Context(), currentUserID(c), r.scope, r.account, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "entry deleted"))
}
