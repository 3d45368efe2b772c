package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber app with all routes registered. The staff routes
// are what the business gateway calls; everything else serves the consumer
// app.
func NewApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "pinglocal",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(LoggingMiddleware())

	app.Get("/health", h.Health)

	api := app.Group("/api", APIRateLimit())

	staff := api.Group("/staff")
	staff.Post("/purchases/:id/scan", h.ScanPurchase)
	staff.Post("/purchases/:id/cancel", h.CancelByBusiness)
	staff.Post("/redemptions/:id/complete", h.CompleteRedemption)
	staff.Post("/redemptions/:id/resubmit", h.ResubmitBill)

	api.Post("/redemptions/:id/confirm", h.ConfirmBill)
	api.Post("/redemptions/:id/dispute", h.DisputeBill)

	api.Get("/purchases/:id/redemption/stream", h.StreamRedemption)
	api.Post("/purchases/:id/cancel", h.CancelByCustomer)
	api.Post("/purchases/:id/booking", h.SetBooking)
	api.Delete("/purchases/:id/booking", h.ClearBooking)

	api.Get("/search/offers", h.SearchOffers)
	api.Get("/search/businesses", h.SearchBusinesses)

	api.Post("/push-token", h.RegisterPushToken)
	api.Get("/users/:id/purchases", h.ActivePurchases)
	api.Get("/users/:id/notifications", h.UnreadNotifications)
	api.Post("/notifications/:id/read", h.MarkNotificationRead)

	return app
}
