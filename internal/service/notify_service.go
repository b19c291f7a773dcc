package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"crypto-checkout/internal/core/ports"
	"crypto-checkout/pkg/apperror"

	"github.com/rs/zerolog"
)

// Embed colors: green for paid-looking statuses, orange otherwise.
const (
	colorPaid    = 0x22C55E
	colorPending = 0xFF6B00
)

const (
	maxEmbedItems = 25
	maxFieldLen   = 1024
)

// statusLabels maps storefront event names to human-readable labels.
var statusLabels = map[string]string{
	"checkout_saved":    "Unpaid (details saved)",
	"checkout_pay":      "Payment started",
	"payment_confirmed": "Paid",
	"cash_checkout":     "Cash (meetup request)",
	"giftcard_checkout": "Gift card (meetup request)",
}

// HTTPClient abstracts the webhook transport for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DiscordNotificationService implements ports.NotificationService against a
// Discord-compatible webhook. An empty webhook URL disables delivery without
// surfacing errors to the storefront.
type DiscordNotificationService struct {
	webhookURL string
	client     HTTPClient
	log        zerolog.Logger
}

// NewDiscordNotificationService creates a new DiscordNotificationService.
func NewDiscordNotificationService(webhookURL string, client HTTPClient, log zerolog.Logger) *DiscordNotificationService {
	return &DiscordNotificationService{
		webhookURL: webhookURL,
		client:     client,
		log:        log,
	}
}

type discordPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []discordField `json:"fields"`
	Footer discordFooter  `json:"footer"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// Forward builds a rich embed from the checkout event and posts it to the
// webhook in one synchronous attempt.
func (s *DiscordNotificationService) Forward(ctx context.Context, event ports.CheckoutEvent) error {
	if s.webhookURL == "" {
		s.log.Debug().Str("event", event.Event).Msg("webhook not configured, dropping event")
		return nil
	}

	body, err := json.Marshal(buildDiscordPayload(event))
	if err != nil {
		return apperror.ErrWebhookDelivery(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return apperror.ErrWebhookDelivery(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("event", event.Event).Msg("webhook post failed")
		return apperror.ErrWebhookDelivery(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s.log.Error().Int("status", resp.StatusCode).Str("event", event.Event).Msg("webhook rejected")
		return apperror.ErrWebhookDelivery(fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}

	s.log.Info().Str("event", event.Event).Str("receipt", event.ReceiptID).Msg("checkout event forwarded")
	return nil
}

func buildDiscordPayload(event ports.CheckoutEvent) discordPayload {
	label := statusLabel(event.Event)

	color := colorPending
	if strings.Contains(strings.ToLower(label), "paid") {
		color = colorPaid
	}

	title := "Checkout Update"
	if event.PaymentMethod != "" {
		title = fmt.Sprintf("Checkout Update (%s)", event.PaymentMethod)
	}

	customer := customerLines(event)
	if customer == "" {
		customer = "(none)"
	}

	fields := []discordField{
		{Name: "Status", Value: label, Inline: true},
		{Name: "Customer", Value: truncateField(customer), Inline: true},
		{Name: "Order", Value: truncateField(orderLines(event)), Inline: true},
	}

	if shipping := shippingLines(event.Address); shipping != "" {
		fields = append(fields, discordField{Name: "Shipping", Value: truncateField(shipping)})
	}
	if items := itemLines(event.Items); items != "" {
		fields = append(fields, discordField{Name: "Items", Value: truncateField(items)})
	}

	var contentParts []string
	if event.Mention != "" {
		contentParts = append(contentParts, event.Mention)
	}
	if event.Priority != "" {
		contentParts = append(contentParts, event.Priority)
	}
	if event.ReceiptID != "" {
		contentParts = append(contentParts, "Order: "+event.ReceiptID)
	}

	return discordPayload{
		Content: strings.TrimSpace(strings.Join(contentParts, " ")),
		Embeds: []discordEmbed{{
			Title:  title,
			Color:  color,
			Fields: fields,
			Footer: discordFooter{Text: footerText(event.Client)},
		}},
	}
}

func statusLabel(event string) string {
	if label, ok := statusLabels[event]; ok {
		return label
	}
	if event == "" {
		return "checkout"
	}
	return strings.ReplaceAll(event, "_", " ")
}

func customerLines(event ports.CheckoutEvent) string {
	lines := make([]string, 0, 4)
	if event.Email != "" {
		lines = append(lines, "Email: "+event.Email)
	} else {
		lines = append(lines, "Email: (none)")
	}
	if event.Address != nil {
		if event.Address.Name != "" {
			lines = append(lines, "Name: "+event.Address.Name)
		}
		if event.Address.Phone != "" {
			lines = append(lines, "Phone: "+event.Address.Phone)
		}
	}
	ip := event.ClientIP
	if ip == "" {
		ip = "unknown"
	}
	lines = append(lines, "IP: "+ip)
	return strings.Join(lines, "\n")
}

func orderLines(event ports.CheckoutEvent) string {
	lines := make([]string, 0, 5)
	if event.ReceiptID != "" {
		lines = append(lines, "Receipt: "+event.ReceiptID)
	} else {
		lines = append(lines, "Receipt: EMO-UNKNOWN")
	}
	if event.PromoCode != "" {
		lines = append(lines, "Promo: "+event.PromoCode)
	}
	if event.DiscountUSD != nil && !event.DiscountUSD.IsZero() {
		lines = append(lines, fmt.Sprintf("Discount: -$%s", event.DiscountUSD.StringFixed(2)))
	}
	if event.Shipping != nil {
		line := fmt.Sprintf("Shipping: $%s", event.Shipping.Amount.StringFixed(2))
		if event.Shipping.DistanceMiles != nil && !event.Shipping.DistanceMiles.IsZero() {
			line += fmt.Sprintf(" (%s mi)", event.Shipping.DistanceMiles.StringFixed(1))
		}
		lines = append(lines, line)
	}
	if event.Total != nil {
		lines = append(lines, fmt.Sprintf("Total: $%s", event.Total.StringFixed(2)))
	} else {
		lines = append(lines, "Total: (unknown)")
	}
	return strings.Join(lines, "\n")
}

func shippingLines(addr *ports.EventAddress) string {
	if addr == nil {
		return ""
	}
	lines := make([]string, 0, 5)
	if addr.Address1 != "" {
		lines = append(lines, "Address: "+addr.Address1)
	}
	if addr.Address2 != "" {
		lines = append(lines, "Address 2: "+addr.Address2)
	}
	if addr.City != "" && addr.State != "" && addr.Zip != "" {
		lines = append(lines, fmt.Sprintf("City: %s, %s %s", addr.City, addr.State, addr.Zip))
	}
	if addr.Country != "" {
		lines = append(lines, "Country: "+addr.Country)
	}
	if addr.Notes != "" {
		lines = append(lines, "Notes: "+addr.Notes)
	}
	return strings.Join(lines, "\n")
}

func itemLines(items []ports.EventItem) string {
	if len(items) > maxEmbedItems {
		items = items[:maxEmbedItems]
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "Item"
		}
		option := ""
		if item.Option != "" {
			option = fmt.Sprintf(" (%s)", item.Option)
		}
		lines = append(lines, fmt.Sprintf("%s%s x%d — $%s", name, option, item.Quantity, item.Price.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func footerText(client *ports.EventClient) string {
	ua, platform, language, timezone := "unknown", "unknown", "unknown", "unknown"
	if client != nil {
		if client.UserAgent != "" {
			ua = client.UserAgent
		}
		if client.Platform != "" {
			platform = client.Platform
		}
		if client.Language != "" {
			language = client.Language
		}
		if client.Timezone != "" {
			timezone = client.Timezone
		}
	}
	return fmt.Sprintf("UA: %s | %s | %s | %s", ua, platform, language, timezone)
}

func truncateField(s string) string {
	if len(s) > maxFieldLen {
		return s[:maxFieldLen]
	}
	return s
}
