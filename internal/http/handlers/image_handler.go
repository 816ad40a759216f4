package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"resellit/internal/apperr"
	applog "resellit/internal/log"
	"resellit/internal/services"
	"resellit/internal/validate"
)

type ImageHandler struct {
	Images *services.ImageService
}

// POST /api/v1/images/:item_id
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.Params("item_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid item id")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return apperr.New(apperr.InvalidInput, "An image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, "Could not read uploaded file", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, "Could not read uploaded file", err)
	}

	img, err := h.Images.Attach(itemID, &services.Upload{Filename: fh.Filename, Data: data})
	if err != nil {
		return err
	}
	applog.Audit(c, "image.upload", map[string]any{"image_id": img.ID, "item_id": itemID})
	return c.Status(fiber.StatusCreated).JSON(img)
}

// GET /api/v1/images/:item_id
func (h *ImageHandler) ListByItem(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.Params("item_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid item id")
	}
	imgs, err := h.Images.ListByItem(itemID)
	if err != nil {
		return err
	}
	return c.JSON(imgs)
}

// DELETE /api/v1/images/:image_id
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	imageID, ok := validate.ID(c.Params("image_id"))
	if !ok {
		return apperr.New(apperr.InvalidInput, "Invalid image id")
	}
	if err := h.Images.Remove(imageID); err != nil {
		return err
	}
	applog.Audit(c, "image.delete", map[string]any{"image_id": imageID})
	return c.JSON(fiber.Map{"detail": "Image deleted"})
}
