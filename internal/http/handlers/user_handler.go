package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resellit/internal/apperr"
	applog "resellit/internal/log"
	"resellit/internal/services"
	"resellit/internal/validate"
)

type UserHandler struct {
	Users *services.UserService
}

type userBody struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Role       string `json:"role"`
}

// POST /api/v1/users/
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var body userBody
	if err := c.BodyParser(&body); err != nil || body.TelegramID <= 0 {
		return apperr.New(apperr.InvalidInput, "A valid telegram_id is required")
	}
	u, err := h.Users.Create(services.UserInput{
		TelegramID: body.TelegramID,
		Username:   body.Username,
		Name:       body.Name,
		Contact:    body.Contact,
		Role:       body.Role,
	})
	if err != nil {
		return err
	}
	applog.Audit(c, "user.create", map[string]any{"user_id": u.ID, "telegram_id": u.TelegramID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// GET /api/v1/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid user id")
	}
	u, err := h.Users.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// GET /api/v1/users/telegram/:telegram_id/id
func (h *UserHandler) IDByTelegram(c *fiber.Ctx) error {
	tid, ok := validate.ID(c.Params("telegram_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid telegram_id")
	}
	id, err := h.Users.IDByTelegram(tid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user_id": id})
}

// GET /api/v1/users/telegram/:telegram_id/exists
func (h *UserHandler) ExistsByTelegram(c *fiber.Ctx) error {
	tid, ok := validate.ID(c.Params("telegram_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid telegram_id")
	}
	exists, err := h.Users.ExistsByTelegram(tid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"exists": exists})
}

type roleBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /api/v1/users/roles
func (h *UserHandler) CreateRole(c *fiber.Ctx) error {
	var body roleBody
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return apperr.New(apperr.InvalidInput, "Role name is required")
	}
	role, err := h.Users.CreateRole(body.Name, body.Description)
	if err != nil {
		return err
	}
	applog.Audit(c, "role.create", map[string]any{"role_id": role.ID, "name": role.Name})
	return c.Status(fiber.StatusCreated).JSON(role)
}

// GET /api/v1/users/roles
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	roles, err := h.Users.Roles()
	if err != nil {
		return err
	}
	return c.JSON(roles)
}

// PUT /api/v1/users/:id/role/:role_id
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid user id")
	}
	roleID, ok := validate.ID(c.Params("role_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid role id")
	}
	u, err := h.Users.UpdateRole(id, roleID)
	if err != nil {
		return err
	}
	applog.Audit(c, "user.role.update", map[string]any{"user_id": id, "role_id": roleID})
	return c.JSON(u)
}
