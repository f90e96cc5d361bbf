package handler

import (
	"errors"
	"net/http"
	"time"

	"backend/internal/billing"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// SaleHandler serves both billing books. The wholesale book lives under
// /api/billing and may apply GST; the regular book lives under
// /api/regular-billing and never does.
type SaleHandler struct {
	saleService  service.SaleService
	statsService service.StatsService
}

func NewSaleHandler(saleService service.SaleService, statsService service.StatsService) *SaleHandler {
	return &SaleHandler{saleService: saleService, statsService: statsService}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	wholesale := router.Group("/api/billing",
		middleware.RequireRole(model.RoleAdmin, model.RoleWholesale))
	{
		h.registerBook(wholesale, model.BillingWholesale)
	}

	regular := router.Group("/api/regular-billing",
		middleware.RequireRole(model.RoleAdmin, model.RoleRegular))
	{
		h.registerBook(regular, model.BillingRegular)
	}
}

func (h *SaleHandler) registerBook(group *gin.RouterGroup, billingType string) {
	book := bookRoutes{h: h, billingType: billingType}
	group.POST("/sales", book.createSale)
	group.GET("/sales", book.listSales)
	group.GET("/sales/:id", book.getSale)
	group.POST("/sales/:id/payment", book.recordPayment)
	group.POST("/sales/:id/silver-payment", book.recordSilverPayment)
	group.GET("/stats", book.stats)
	group.GET("/daily-analysis", book.dailyAnalysis)
}

type bookRoutes struct {
	h           *SaleHandler
	billingType string
}

// saleError maps billing validation failures to a field-error payload
// and everything else to a plain message.
func saleError(c *gin.Context, err error) {
	var validationErrs billing.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, validationErrs.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}

// createSale creates a sale; totals are recomputed server-side
// @Summary      Create sale
// @Description  Validates the draft and recomputes every total server-side; client-sent totals are ignored
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSaleRequest  true  "Create Sale Payload"
// @Success      201      {object}  response.Response{data=service.SaleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/billing/sales [post]
func (r bookRoutes) createSale(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := r.h.saleService.CreateSale(c.Request.Context(), currentUserID(c), r.billingType, req)
	if err != nil {
		saleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// listSales returns the book's sales
// @Summary      List sales
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        customer_id  query     string  false  "Filter by customer"
// @Param        start_date   query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date     query     string  false  "End date (YYYY-MM-DD)"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Items per page (default 20)"
// @Success      200          {object}  response.Response
// @Router       /api/billing/sales [get]
func (r bookRoutes) listSales(c *gin.Context) {
	params := pagination.Parse(c)

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD"))
		return
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD"))
		return
	}

	sales, total, err := r.h.saleService.ListSales(c.Request.Context(), r.billingType, service.SaleFilter{
		CustomerID: c.Query("customer_id"),
		StartDate:  startDate,
		EndDate:    endDate,
		Page:       params.Page,
		Limit:      params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.ListPayload("sales", sales, total)))
}

// getSale returns one sale with items and payments
// @Summary      Get sale
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Sale ID"
// @Success      200  {object}  response.Response{data=service.SaleResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/billing/sales/{id} [get]
func (r bookRoutes) getSale(c *gin.Context) {
	sale, err := r.h.saleService.GetSale(c.Request.Context(), r.billingType, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

// recordPayment appends a cash settlement
// @Summary      Record payment
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Sale ID"
// @Param        payload  body      service.RecordPaymentRequest  true  "Payment Payload"
// @Success      200      {object}  response.Response{data=service.SaleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/billing/sales/{id}/payment [post]
func (r bookRoutes) recordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := r.h.saleService.RecordPayment(c.Request.Context(), currentUserID(c), r.billingType, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

// recordSilverPayment appends a silver-in-kind settlement
// @Summary      Record silver payment
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Sale ID"
// @Param        payload  body      service.RecordSilverPaymentRequest  true  "Silver Payment Payload"
// @Success      200      {object}  response.Response{data=service.SaleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/billing/sales/{id}/silver-payment [post]
func (r bookRoutes) recordSilverPayment(c *gin.Context) {
	var req service.RecordSilverPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := r.h.saleService.RecordSilverPayment(c.Request.Context(), currentUserID(c), r.billingType, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

// stats returns the book's dashboard counters
// @Summary      Billing stats
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.BillingStatsResponse}
// @Router       /api/billing/stats [get]
func (r bookRoutes) stats(c *gin.Context) {
	stats, err := r.h.statsService.BillingStats(c.Request.Context(), r.billingType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// dailyAnalysis aggregates one day's sales
// @Summary      Daily analysis
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Date (YYYY-MM-DD, default today)"
// @Success      200   {object}  response.Response{data=service.DailyAnalysisResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/billing/daily-analysis [get]
func (r bookRoutes) dailyAnalysis(c *gin.Context) {
	date := time.Now()
	if parsed, err := parseDateQuery(c, "date"); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"))
		return
	} else if parsed != nil {
		date = *parsed
	}

	analysis, err := r.h.statsService.DailyAnalysis(c.Request.Context(), r.billingType, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, analysis))
}
