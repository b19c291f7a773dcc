package handler

import (
	"crypto-checkout/internal/adapter/http/dto"
	"crypto-checkout/internal/core/domain"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/pkg/apperror"
	"crypto-checkout/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles crypto order endpoints.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// CreateOrder handles POST /api/crypto/create-order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body."))
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.LineItem{
			Name:     item.Name,
			Option:   item.Option,
			Price:    item.Price,
			Quantity: item.Quantity,
			Total:    item.Total,
		})
	}

	result, err := h.orderSvc.CreateOrder(c.Request.Context(), ports.CreateOrderRequest{
		Items:       items,
		DiscountUSD: req.DiscountUSD,
		PromoCode:   req.PromoCode,
		ShippingUSD: req.ShippingUSD,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toCreateOrderResponse(result))
}

// OrderStatus handles GET /api/crypto/order/:orderId/:coin/status.
func (h *OrderHandler) OrderStatus(c *gin.Context) {
	result, err := h.orderSvc.OrderStatus(c.Request.Context(), c.Param("orderId"), c.Param("coin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OrderStatusResponse{
		Status:                result.Status,
		Received:              result.Received,
		Required:              result.Required,
		ConfirmationsRequired: result.ConfirmationsRequired,
	})
}

func toCreateOrderResponse(result *ports.CreateOrderResult) dto.CreateOrderResponse {
	coins := make(map[string]dto.CoinQuoteResponse, len(result.Coins))
	for coin, quote := range result.Coins {
		coins[coin] = dto.CoinQuoteResponse{
			Address:         quote.Address,
			Amount:          quote.Amount,
			DisplayDecimals: quote.DisplayDecimals,
		}
	}
	return dto.CreateOrderResponse{
		OrderID:       result.OrderID,
		USDTotal:      result.USDTotal.InexactFloat64(),
		FeePct:        result.FeePct,
		FeeUSD:        result.FeeUSD.InexactFloat64(),
		RandomCents:   result.RandomCents.InexactFloat64(),
		Confirmations: result.Confirmations,
		Coins:         coins,
	}
}
