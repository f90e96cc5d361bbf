package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	wholesale := router.Group("/api/billing/export",
		middleware.RequireRole(model.RoleAdmin, model.RoleWholesale))
	{
		wholesale.GET("/sales", h.export(model.BillingWholesale).sales)
	}

	regular := router.Group("/api/regular-billing/export",
		middleware.RequireRole(model.RoleAdmin, model.RoleRegular))
	{
		regular.GET("/sales", h.export(model.BillingRegular).sales)
		regular.GET("/customers", h.export(model.BillingRegular).customers)
	}
}

type exportRoutes struct {
	h           *ExportHandler
	billingType string
}

func (h *ExportHandler) export(billingType string) exportRoutes {
	return exportRoutes{h: h, billingType: billingType}
}

// sales streams the book's sales as an xlsx workbook
// @Summary      Export sales
// @Tags         exports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "End date (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  response.Response
// @Router       /api/billing/export/sales [get]
func (r exportRoutes) sales(c *gin.Context) {
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

	data, filename, err := r.h.exportService.ExportSales(c.Request.Context(), r.billingType, service.SaleFilter{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// customers streams the book's customers as an xlsx workbook
// @Summary      Export customers
// @Tags         exports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      500  {object}  response.Response
// @Router       /api/regular-billing/export/customers [get]
func (r exportRoutes) customers(c *gin.Context) {
	scope := model.ScopeRegular
	if r.billingType == model.BillingWholesale {
		scope = model.ScopeWholesale
	}

	data, filename, err := r.h.exportService.ExportCustomers(c.Request.Context(), scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
