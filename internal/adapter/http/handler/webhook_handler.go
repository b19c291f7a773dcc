package handler

import (
	"crypto-checkout/internal/adapter/http/dto"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/pkg/apperror"
	"crypto-checkout/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler forwards storefront checkout events to the notifier.
type WebhookHandler struct {
	notifySvc ports.NotificationService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(notifySvc ports.NotificationService) *WebhookHandler {
	return &WebhookHandler{notifySvc: notifySvc}
}

// Forward handles POST /api/checkout/webhook.
func (h *WebhookHandler) Forward(c *gin.Context) {
	var req dto.CheckoutWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body."))
		return
	}

	if err := h.notifySvc.Forward(c.Request.Context(), toCheckoutEvent(req, c.ClientIP())); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WebhookAckResponse{OK: true})
}

func toCheckoutEvent(req dto.CheckoutWebhookRequest, clientIP string) ports.CheckoutEvent {
	event := ports.CheckoutEvent{
		Event:         req.Event,
		Email:         req.Email,
		ReceiptID:     req.ReceiptID,
		PaymentMethod: req.PaymentMethod,
		PromoCode:     req.PromoCode,
		DiscountUSD:   req.DiscountUSD,
		Total:         req.Total,
		Mention:       req.Mention,
		Priority:      req.Priority,
		ClientIP:      clientIP,
	}

	for _, item := range req.Items {
		event.Items = append(event.Items, ports.EventItem{
			Name:     item.Name,
			Option:   item.Option,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	if req.Address != nil {
		event.Address = &ports.EventAddress{
			Name:     req.Address.Name,
			Phone:    req.Address.Phone,
			Address1: req.Address.Address1,
			Address2: req.Address.Address2,
			City:     req.Address.City,
			State:    req.Address.State,
			Zip:      req.Address.Zip,
			Country:  req.Address.Country,
			Notes:    req.Address.Notes,
		}
	}
	if req.Shipping != nil {
		event.Shipping = &ports.EventShipping{
			Amount:        req.Shipping.Amount,
			DistanceMiles: req.Shipping.DistanceMiles,
		}
	}
	if req.Client != nil {
		event.Client = &ports.EventClient{
			UserAgent: req.Client.UserAgent,
			Platform:  req.Client.Platform,
			Language:  req.Client.Language,
			Timezone:  req.Client.Timezone,
		}
	}
	return event
}
