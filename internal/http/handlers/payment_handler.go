package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resellit/internal/domain"
	applog "resellit/internal/log"
	"resellit/internal/services"
)

// PaymentHandler receives provider webhooks. The endpoint always answers
// 200 so the provider stops retrying; failures are logged for operators.
type PaymentHandler struct {
	Orders *services.OrderService
}

type webhookBody struct {
	Event  string `json:"event"`
	Object struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Metadata struct {
			OrderID int64 `json:"order_id"`
		} `json:"metadata"`
	} `json:"object"`
}

// POST /api/v1/payments/webhook
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var body webhookBody
	if err := c.BodyParser(&body); err != nil {
		applog.Security(c, "payment.webhook.malformed", map[string]any{"err": err.Error()})
		return c.JSON(fiber.Map{"detail": "ok"})
	}

	switch body.Event {
	case "payment.succeeded":
		if body.Object.Metadata.OrderID > 0 {
			if _, err := h.Orders.Update(body.Object.Metadata.OrderID, domain.OrderStatusPaid, ""); err != nil {
				applog.Error(c, "payment.webhook.apply.fail", err, map[string]any{
					"order_id": body.Object.Metadata.OrderID, "payment_id": body.Object.ID,
				})
				return c.JSON(fiber.Map{"detail": "ok"})
			}
		}
		applog.Audit(c, "payment.succeeded", map[string]any{
			"order_id": body.Object.Metadata.OrderID, "payment_id": body.Object.ID,
		})
	case "payment.canceled":
		applog.Audit(c, "payment.canceled", map[string]any{
			"order_id": body.Object.Metadata.OrderID, "payment_id": body.Object.ID,
		})
	default:
		applog.Info(c, "payment.webhook.ignored", map[string]any{"event": body.Event})
	}
	return c.JSON(fiber.Map{"detail": "ok"})
}
