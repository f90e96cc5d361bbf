package handler

import (
	"errors"
	"net/http"

	"backend/internal/billing"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler exposes the four purity mixing calculators. Invalid
// input maps to 400; a physically impossible (negative) addition maps to
// 422 with the computed result echoed for display.
type CalculatorHandler struct {
	calcService service.CalculatorService
}

func NewCalculatorHandler(calcService service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calcService: calcService}
}

func (h *CalculatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	calc := router.Group("/api/calculator",
		middleware.RequireRole(model.RoleAdmin, model.RoleWholesale, model.RoleRegular))
	{
		calc.POST("/type1", h.Mix)
		calc.POST("/type2", h.Dilute)
		calc.POST("/type3", h.StandardMix)
		calc.POST("/type4", h.Blend)
	}
}

func calculatorError(c *gin.Context, err error, result interface{}) {
	var constraintErr *billing.ConstraintError
	if errors.As(err, &constraintErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":      "error",
			"status_code": http.StatusUnprocessableEntity,
			"error":       constraintErr.Error(),
			"result":      result,
		})
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}

// Mix blends pure and raw silver, then adds copper to reach a target purity
// @Summary      Mix calculator
// @Description  Blend pure silver with raw silver of known purity and compute the copper needed to land on the target purity
// @Tags         calculator
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.MixRequest  true  "Mix Payload"
// @Success      200      {object}  response.Response{data=service.MixResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/calculator/type1 [post]
func (h *CalculatorHandler) Mix(c *gin.Context) {
	var req service.MixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.Mix(req)
	if err != nil {
		calculatorError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Dilute computes the filler needed to bring pure silver to a target purity
// @Summary      Dilution calculator
// @Tags         calculator
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.DilutionRequest  true  "Dilution Payload"
// @Success      200      {object}  response.Response{data=service.DilutionResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/calculator/type2 [post]
func (h *CalculatorHandler) Dilute(c *gin.Context) {
	var req service.DilutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.Dilute(req)
	if err != nil {
		calculatorError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// StandardMix dilutes with an even jast/copper split
// @Summary      Standard mix calculator
// @Description  Dilute pure silver to a standard purity with the filler split evenly between jast and copper
// @Tags         calculator
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.DilutionRequest  true  "Standard Mix Payload"
// @Success      200      {object}  response.Response{data=service.StandardMixResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/calculator/type3 [post]
func (h *CalculatorHandler) StandardMix(c *gin.Context) {
	var req service.DilutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.StandardMix(req)
	if err != nil {
		calculatorError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Blend solves the pure silver to add across multiple batches
// @Summary      Blend calculator
// @Description  Compute the pure silver to add to a set of batches so the blend reaches the target purity
// @Tags         calculator
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BlendRequest  true  "Blend Payload"
// @Success      200      {object}  response.Response{data=service.BlendResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/calculator/type4 [post]
func (h *CalculatorHandler) Blend(c *gin.Context) {
	var req service.BlendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.Blend(req)
	if err != nil {
		calculatorError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
