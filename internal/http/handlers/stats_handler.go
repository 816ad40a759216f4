package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resellit/internal/services"
)

type StatsHandler struct {
	Stats *services.StatsService
}

// GET /api/v1/statistics
func (h *StatsHandler) Statistics(c *fiber.Ctx) error {
	snap, err := h.Stats.Snapshot()
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// GET /admin/stats
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	snap, err := h.Stats.Snapshot()
	if err != nil {
		return err
	}
	return c.Render("admin_stats", fiber.Map{"Stats": snap})
}
