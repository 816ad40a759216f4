package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"resellit/internal/apperr"
	applog "resellit/internal/log"
	"resellit/internal/services"
	"resellit/internal/validate"
)

type ItemHandler struct {
	Items *services.ItemService
	Users *services.UserService
}

// GET /api/v1/items/
func (h *ItemHandler) List(c *fiber.Ctx) error {
	q, err := listQueryFromCtx(c, false)
	if err != nil {
		return err
	}
	page, err := h.Items.List(q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GET /api/v1/items/unsold
func (h *ItemHandler) ListUnsold(c *fiber.Ctx) error {
	q, err := listQueryFromCtx(c, true)
	if err != nil {
		return err
	}
	page, err := h.Items.List(q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GET /api/v1/items/:id
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid item id")
	}
	v, err := h.Items.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

// GET /api/v1/items/by_user/:user_id
func (h *ItemHandler) ListByUser(c *fiber.Ctx) error {
	return h.listByUser(c, false)
}

// GET /api/v1/items/unsold/by_user/:user_id
func (h *ItemHandler) ListUnsoldByUser(c *fiber.Ctx) error {
	return h.listByUser(c, true)
}

func (h *ItemHandler) listByUser(c *fiber.Ctx, unsoldOnly bool) error {
	userID, ok := validate.ID(c.Params("user_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid user id")
	}
	page, ok := validate.Page(c.Query("page"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Page must be a positive integer")
	}
	out, err := h.Items.ListByUser(userID, page, unsoldOnly)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// POST /api/v1/items/?telegram_id=
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	tid, ok := validate.ID(c.Query("telegram_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid telegram_id")
	}
	userID, err := h.Users.IDByTelegram(tid)
	if err != nil {
		return err
	}
	in, err := itemInputFromForm(c)
	if err != nil {
		return err
	}
	id, err := h.Items.Create(in, userID)
	if err != nil {
		return err
	}
	applog.Audit(c, "item.create", map[string]any{"item_id": id, "user_id": userID})
	v, err := h.Items.Get(id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// PATCH /api/v1/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid item id")
	}
	in, err := itemInputFromForm(c)
	if err != nil {
		return err
	}
	if err := h.Items.Update(id, in); err != nil {
		return err
	}
	applog.Audit(c, "item.update", map[string]any{"item_id": id})
	v, err := h.Items.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid item id")
	}
	if err := h.Items.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "item.delete", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"detail": "Item deleted"})
}

// PATCH /api/v1/items/:id/is_sold?is_sold=
func (h *ItemHandler) SetSold(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid item id")
	}
	sold := c.QueryBool("is_sold", true)
	v, err := h.Items.SetSold(id, sold)
	if err != nil {
		return err
	}
	applog.Audit(c, "item.set_sold", map[string]any{"item_id": id, "is_sold": sold})
	return c.JSON(v)
}

func listQueryFromCtx(c *fiber.Ctx, unsoldOnly bool) (services.ListQuery, error) {
	page, ok := validate.Page(c.Query("page"))
	if !ok {
		return services.ListQuery{}, apperr.New(apperr.InvalidInput, "Page must be a positive integer")
	}
	return services.ListQuery{
		Page:        page,
		Category:    c.Query("category"),
		FilterType:  c.Query("filter_type"),
		FilterValue: c.Query("filter_value"),
		UnsoldOnly:  unsoldOnly,
	}, nil
}

func itemInputFromForm(c *fiber.Ctx) (services.ItemInput, error) {
	name := c.FormValue("name")
	category := c.FormValue("category")
	if name == "" || category == "" {
		return services.ItemInput{}, apperr.New(apperr.InvalidInput, "Name and category are required")
	}
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil || price.IsNegative() {
		return services.ItemInput{}, apperr.New(apperr.InvalidInput, "Invalid price")
	}

	in := services.ItemInput{
		Name:        name,
		Price:       price,
		Currency:    c.FormValue("currency", "RUB"),
		Category:    category,
		Contact:     c.FormValue("contact"),
		Description: c.FormValue("description"),
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return services.ItemInput{}, apperr.Wrap(apperr.InvalidInput, "Could not read uploaded file", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return services.ItemInput{}, apperr.Wrap(apperr.InvalidInput, "Could not read uploaded file", err)
		}
		in.Image = &services.Upload{Filename: fh.Filename, Data: data}
	}
	return in, nil
}
