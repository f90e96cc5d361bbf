package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SilverRateHandler struct {
	rateService service.SilverRateService
}

func NewSilverRateHandler(rateService service.SilverRateService) *SilverRateHandler {
	return &SilverRateHandler{rateService: rateService}
}

func (h *SilverRateHandler) RegisterRoutes(router *gin.RouterGroup) {
	rates := router.Group("/api/billing/silver-rate")
	{
		rates.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateRate)
		rates.GET("/current", middleware.RequireRole(model.RoleAdmin, model.RoleWholesale, model.RoleRegular), h.CurrentRate)
		rates.GET("/history", middleware.RequireRole(model.RoleAdmin, model.RoleWholesale, model.RoleRegular), h.History)
	}
}

// CreateRate records the day's silver rate and broadcasts it
// @Summary      Create silver rate
// @Description  Records the per-gram rate for a day and broadcasts it to connected billing screens
// @Tags         silver-rate
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSilverRateRequest  true  "Create Rate Payload"
// @Success      201      {object}  response.Response{data=service.SilverRateResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/billing/silver-rate [post]
func (h *SilverRateHandler) CreateRate(c *gin.Context) {
	var req service.CreateSilverRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rate, err := h.rateService.CreateRate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// CurrentRate returns the rate in effect today
// @Summary      Current silver rate
// @Tags         silver-rate
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.SilverRateResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/billing/silver-rate/current [get]
func (h *SilverRateHandler) CurrentRate(c *gin.Context) {
	rate, err := h.rateService.CurrentRate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// History returns recent rates with day-over-day change
// @Summary      Silver rate history
// @Tags         silver-rate
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Number of days (default 30)"
// @Success      200    {object}  response.Response{data=[]service.SilverRateResponse}
// @Router       /api/billing/silver-rate/history [get]
func (h *SilverRateHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	history, err := h.rateService.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}
