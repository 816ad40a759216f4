package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resellit/internal/apperr"
	"resellit/internal/services"
	"resellit/internal/validate"
)

type SearchHandler struct {
	Searches *services.SearchService
}

// GET /api/v1/items/search?query=
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	page, ok := validate.Page(c.Query("page"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Page must be a positive integer")
	}
	out, err := h.Searches.Search(c.Query("query"), page, c.Query("filter_type"), c.Query("filter_value"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
