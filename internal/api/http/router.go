package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Users        *handlers.UsersHandler
	Items        *handlers.ItemsHandler
	Bookings     *handlers.BookingsHandler
	Requests     *handlers.RequestsHandler
	GatewayTrust fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("")
	if cfg.GatewayTrust != nil {
		api = app.Group("", cfg.GatewayTrust)
	}

	users := api.Group("/users")
	users.Post("", cfg.Users.Create)
	users.Get("", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	items := api.Group("/items")
	items.Post("", cfg.Items.Create)
	items.Get("", cfg.Items.ListByOwner)
	items.Get("/search", cfg.Items.Search)
	items.Get("/:id", cfg.Items.Get)
	items.Patch("/:id", cfg.Items.Update)
	items.Post("/:id/comment", cfg.Items.AddComment)

	bookings := api.Group("/bookings")
	bookings.Post("", cfg.Bookings.Create)
	bookings.Get("", cfg.Bookings.ListForBooker)
	// owner route has to beat the :id wildcard
	bookings.Get("/owner", cfg.Bookings.ListForOwner)
	bookings.Get("/:id", cfg.Bookings.Get)
	bookings.Patch("/:id", cfg.Bookings.Decide)

	requests := api.Group("/requests")
	requests.Post("", cfg.Requests.Create)
	requests.Get("", cfg.Requests.ListOwn)
	requests.Get("/all", cfg.Requests.ListOthers)
	requests.Get("/:id", cfg.Requests.Get)
}
