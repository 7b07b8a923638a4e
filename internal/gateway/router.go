package gateway

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for gateway route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Handler   *Handler
	RateLimit fiber.Handler
}

// RegisterRoutes wires the public-facing routes, mirroring the server's
// surface. Validation happens here; domain logic stays on the server.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("")
	if cfg.RateLimit != nil {
		api = app.Group("", cfg.RateLimit)
	}

	h := cfg.Handler

	users := api.Group("/users")
	users.Post("", h.CreateUser)
	users.Get("", h.Forward)
	users.Get("/:id", h.Forward)
	users.Patch("/:id", h.UpdateUser)
	users.Delete("/:id", h.Forward)

	items := api.Group("/items")
	items.Post("", h.CreateItem)
	items.Get("", h.ForwardWithCaller)
	// item reads are public; no identity header required
	items.Get("/search", h.Forward)
	items.Get("/:id", h.Forward)
	items.Patch("/:id", h.ForwardWithPathID)
	items.Post("/:id/comment", h.AddComment)

	bookings := api.Group("/bookings")
	bookings.Post("", h.CreateBooking)
	bookings.Get("", h.ListBookings)
	bookings.Get("/owner", h.ListBookings)
	bookings.Get("/:id", h.ForwardWithPathID)
	bookings.Patch("/:id", h.DecideBooking)

	requests := api.Group("/requests")
	requests.Post("", h.CreateRequest)
	requests.Get("", h.ForwardWithCaller)
	requests.Get("/all", h.ForwardWithCaller)
	requests.Get("/:id", h.ForwardWithPathID)
}
