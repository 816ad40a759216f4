package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resellit/internal/apperr"
	applog "resellit/internal/log"
	"resellit/internal/services"
	"resellit/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type orderBody struct {
	ItemID           int64  `json:"item_id"`
	BuyerTelegramID  int64  `json:"buyer_telegram_id"`
	SellerTelegramID int64  `json:"seller_telegram_id"`
	BuyerPhone       string `json:"buyer_phone"`
	SellerPhone      string `json:"seller_phone"`
	DeliveryAddress  string `json:"delivery_address"`
}

// POST /api/v1/orders/
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var body orderBody
	if err := c.BodyParser(&body); err != nil || body.ItemID <= 0 ||
		body.BuyerTelegramID <= 0 || body.SellerTelegramID <= 0 {
		return apperr.New(apperr.InvalidInput, "item_id, buyer_telegram_id and seller_telegram_id are required")
	}
	o, err := h.Orders.Create(services.OrderInput{
		ItemID:           body.ItemID,
		BuyerTelegramID:  body.BuyerTelegramID,
		SellerTelegramID: body.SellerTelegramID,
		BuyerPhone:       body.BuyerPhone,
		SellerPhone:      body.SellerPhone,
		DeliveryAddress:  body.DeliveryAddress,
	})
	if err != nil {
		return err
	}
	applog.Audit(c, "order.create", map[string]any{"order_id": o.ID, "item_id": o.ItemID})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid order id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

type orderUpdateBody struct {
	Status          string `json:"status"`
	DeliveryAddress string `json:"delivery_address"`
}

// PATCH /api/v1/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid order id")
	}
	var body orderUpdateBody
	if err := c.BodyParser(&body); err != nil {
		return apperr.New(apperr.InvalidInput, "Invalid request body")
	}
	if body.Status == "" && body.DeliveryAddress == "" {
		return apperr.New(apperr.InvalidInput, "Nothing to update")
	}
	o, err := h.Orders.Update(id, body.Status, body.DeliveryAddress)
	if err != nil {
		return err
	}
	applog.Audit(c, "order.update", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(o)
}

// GET /api/v1/orders/user/:user_id?is_buyer=
func (h *OrderHandler) ListByUser(c *fiber.Ctx) error {
	userID, ok := validate.ID(c.Params("user_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid user id")
	}
	asBuyer := c.QueryBool("is_buyer", true)
	out, err := h.Orders.ListByUser(userID, asBuyer)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
