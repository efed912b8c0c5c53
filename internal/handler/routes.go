package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/handler/middleware"
	"github.com/victorexecutive/ops-service/pkg/token"
)

// SetupRoutes wires every route with its role allow-list in one place.
func SetupRoutes(
	app *fiber.App,
	codec *token.Codec,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	flightHandler *FlightHandler,
	qrHandler *QRHandler,
	healthHandler *HealthHandler,
) {
	authRequired := middleware.AuthRequired(codec)

	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// User roster
	api.Get("/users", authRequired,
		middleware.RequireRoles(domain.RoleVictorAdmin, domain.RoleOperatorAdmin),
		userHandler.ListUsers)

	// Flights
	flights := api.Group("/flights", authRequired)
	flights.Get("/", flightHandler.ListFlights)
	flights.Get("/:id", flightHandler.GetFlight)
	flights.Post("/",
		middleware.RequireRoles(domain.RoleVictorAdmin, domain.RoleOperatorAdmin),
		flightHandler.CreateFlight)
	flights.Put("/:id",
		middleware.RequireRoles(domain.RoleVictorAdmin, domain.RoleOperatorAdmin),
		flightHandler.UpdateFlight)
	flights.Delete("/:id",
		middleware.RequireRoles(domain.RoleVictorAdmin),
		flightHandler.DeleteFlight)

	// QR passes
	flights.Post("/:flightID/passengers/:entityID/qr-pass",
		middleware.RequireRoles(domain.RoleVictorAdmin, domain.RoleOperatorAdmin, domain.RoleHandler),
		qrHandler.CreatePassengerPass)
	flights.Post("/:flightID/crew/:entityID/qr-pass",
		middleware.RequireRoles(domain.RoleVictorAdmin, domain.RoleOperatorAdmin),
		qrHandler.CreateCrewPass)
	api.Put("/qr-pass/:id", authRequired,
		middleware.RequireRoles(domain.RoleVictorAdmin, domain.RoleOperatorAdmin, domain.RoleHandler),
		qrHandler.UpdatePass)

	// Public gate-scanner lookup
	api.Get("/qr-pass/:token", qrHandler.LookupPass)
}
