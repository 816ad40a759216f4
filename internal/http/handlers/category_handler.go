package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resellit/internal/apperr"
	applog "resellit/internal/log"
	"resellit/internal/services"
	"resellit/internal/validate"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

type categoryBody struct {
	Name string `json:"name"`
}

// GET /api/v1/categories/
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.Categories.List()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// POST /api/v1/categories/
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return apperr.New(apperr.InvalidInput, "Category name is required")
	}
	cat, err := h.Categories.Create(body.Name)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID, "name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid category id")
	}
	var body categoryBody
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return apperr.New(apperr.InvalidInput, "Category name is required")
	}
	cat, err := h.Categories.Update(id, body.Name)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id, "name": cat.Name})
	return c.JSON(cat)
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid category id")
	}
	if err := h.Categories.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"detail": "Category deleted"})
}
