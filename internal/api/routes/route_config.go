package routes

import (
	"blood-portal/internal/api/handlers"
	"blood-portal/internal/middleware"
	"blood-portal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	BloodRequestHandler handlers.BloodRequestHandler
	InventoryHandler    handlers.InventoryHandler
	DonationHandler     handlers.DonationHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.BloodRequests()
	c.Inventory()
	c.Donations()
	c.Notifications()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) BloodRequests() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	admin := c.Middleware.AdminOnly()

	requests := c.App.Group("/api/v1/blood-requests")
	{
		requests.Get("", c.BloodRequestHandler.GetBloodRequests)
		requests.Post("", auth, c.BloodRequestHandler.CreateBloodRequest)
		requests.Get("/mine", auth, c.BloodRequestHandler.GetMyBloodRequests)
		requests.Get("/:id", c.BloodRequestHandler.GetBloodRequestByID)
		requests.Patch("/:id/status", auth, admin, c.BloodRequestHandler.UpdateBloodRequestStatus)
		requests.Post("/:id/assign", auth, admin, c.BloodRequestHandler.AssignDonor)
		requests.Get("/:id/matches", auth, admin, c.BloodRequestHandler.GetDonorMatches)
	}
}

func (c *Config) Inventory() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	admin := c.Middleware.AdminOnly()

	inventory := c.App.Group("/api/v1/inventory")
	{
		inventory.Get("", c.InventoryHandler.GetInventory)
		inventory.Get("/summary", c.InventoryHandler.GetInventorySummary)
		inventory.Post("/adjust", auth, admin, c.InventoryHandler.AdjustInventory)
		inventory.Get("/history", auth, admin, c.InventoryHandler.GetInventoryHistory)
		inventory.Get("/report", auth, admin, c.InventoryHandler.ExportInventoryReport)
		inventory.Post("/report/archive", auth, admin, c.InventoryHandler.ArchiveInventoryReport)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations")
	{
		donations.Get("/statistics", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.DonationHandler.GetDonationStatistics)
		donations.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.DonationHandler.GetDonations)
		donations.Get("/request/:requestId", c.Middleware.AuthMiddleware(c.JWTService), c.DonationHandler.GetDonationByRequest)
	}
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	{
		notifications.Get("", c.NotificationHandler.GetNotifications)
		notifications.Get("/unread-count", c.NotificationHandler.GetUnreadCount)
		notifications.Patch("/read-all", c.NotificationHandler.MarkAllNotificationsRead)
		notifications.Patch("/:id/read", c.NotificationHandler.MarkNotification)
	}
}
