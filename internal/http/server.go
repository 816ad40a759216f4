package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"resellit/internal/apperr"
	"resellit/internal/config"
	"resellit/internal/http/handlers"
	applog "resellit/internal/log"
)

// New assembles the fiber application: middleware, static serving and the
// full route table. Callers own the listen call.
func New(cfg config.Config, db *sqlx.DB) *fiber.App {
	engine := html.New(cfg.Server.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: errorHandler,
	})
	app.Server().MaxRequestBodySize = 10 << 20

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: cfg.CORS.AllowMethods,
		AllowHeaders: cfg.CORS.AllowHeaders,
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		applog.Info(c, "http.request", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	})

	app.Static("/static/uploads", cfg.Uploads.Dir)

	deps := handlers.NewDeps(db, cfg)

	v1 := app.Group("/api/v1")

	items := v1.Group("/items")
	searchLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"detail": "Rate limit exceeded, retry soon"})
		},
	})
	items.Get("/", deps.ItemHandler.List)
	items.Get("/unsold", deps.ItemHandler.ListUnsold)
	items.Get("/search", searchLimiter, deps.SearchHandler.Search)
	items.Get("/by_user/:user_id", deps.ItemHandler.ListByUser)
	items.Get("/unsold/by_user/:user_id", deps.ItemHandler.ListUnsoldByUser)
	items.Get("/:id", deps.ItemHandler.Get)
	items.Post("/", deps.ItemHandler.Create)
	items.Patch("/:id/is_sold", deps.ItemHandler.SetSold)
	items.Patch("/:id", deps.ItemHandler.Update)
	items.Delete("/:id", deps.ItemHandler.Delete)

	cats := v1.Group("/categories")
	cats.Get("/", deps.CategoryHandler.List)
	cats.Post("/", deps.CategoryHandler.Create)
	cats.Put("/:id", deps.CategoryHandler.Update)
	cats.Delete("/:id", deps.CategoryHandler.Delete)

	users := v1.Group("/users")
	users.Post("/", deps.UserHandler.Create)
	users.Get("/roles", deps.UserHandler.Roles)
	users.Post("/roles", deps.UserHandler.CreateRole)
	users.Get("/telegram/:telegram_id/id", deps.UserHandler.IDByTelegram)
	users.Get("/telegram/:telegram_id/exists", deps.UserHandler.ExistsByTelegram)
	users.Put("/:id/role/:role_id", deps.UserHandler.UpdateRole)
	users.Get("/:id", deps.UserHandler.Get)

	orders := v1.Group("/orders")
	orders.Post("/", deps.OrderHandler.Create)
	orders.Get("/user/:user_id", deps.OrderHandler.ListByUser)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Patch("/:id", deps.OrderHandler.Update)

	images := v1.Group("/images")
	images.Post("/:item_id", deps.ImageHandler.Upload)
	images.Get("/:item_id", deps.ImageHandler.ListByItem)
	images.Delete("/:image_id", deps.ImageHandler.Delete)

	v1.Post("/payments/webhook", deps.PaymentHandler.Webhook)
	v1.Get("/statistics", deps.StatsHandler.Statistics)

	app.Get("/admin/stats", deps.StatsHandler.Dashboard)

	app.Get("/health-check", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return apperr.Wrap(apperr.Internal, "Database unreachable", err)
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not Found"})
	})

	return app
}

// errorHandler is the single place errors become HTTP responses. Everything
// below handlers returns an error; only this function writes error bodies.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
	}

	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(kind.HTTPStatus()).JSON(fiber.Map{"detail": apperr.DetailOf(err)})
}
