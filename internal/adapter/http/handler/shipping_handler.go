package handler

import (
	"crypto-checkout/internal/adapter/http/dto"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/pkg/apperror"
	"crypto-checkout/pkg/response"

	"github.com/gin-gonic/gin"
)

// ShippingHandler handles shipping quote endpoints.
type ShippingHandler struct {
	shippingSvc ports.ShippingService
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(shippingSvc ports.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingSvc: shippingSvc}
}

// Quote handles POST /api/shipping/quote.
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req dto.ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body."))
		return
	}

	result, err := h.shippingSvc.Quote(c.Request.Context(), ports.ShippingQuoteRequest{
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
		Country:  req.Country,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ShippingQuoteResponse{
		Amount:        result.Amount,
		DistanceMiles: result.DistanceMiles,
		Origin:        result.Origin,
	})
}
