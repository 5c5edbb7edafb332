package routes

import (
	"os"

	"locker-booking/constants"
	"locker-booking/controllers/admin"
	"locker-booking/controllers/auth"
	"locker-booking/controllers/booking"
	"locker-booking/controllers/catalog"
	"locker-booking/controllers/user"
	"locker-booking/logger"
	"locker-booking/middleware"
	"locker-booking/services/geocode"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cache *redis.Client) {
	asyncLogger := logger.NewAsyncLogger(db)
	geocoder := geocode.NewClient(os.Getenv(constants.EnvGeocoderURL), cache)

	authController := auth.NewAuthController(db, asyncLogger)
	catalogController := catalog.NewCatalogController(db)
	bookingController := booking.NewBookingController(db, asyncLogger)
	locationAdmin := admin.NewLocationController(db, geocoder)
	lockerAdmin := admin.NewLockerController(db)
	bookingAdmin := admin.NewBookingAdminController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	app.Get("/", catalogController.Index)
	app.Get("/location/:id", catalogController.LocationDetail)

	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)

	/*=============================================================================
	| Authenticated Routes
	===============================================================================*/
	api.Post("/logout", middleware.RequireAuth(), authController.LogOut)
	api.Get("/profile", middleware.RequireAuth(), user.GetProfile)
	api.Put("/profile", middleware.RequireAuth(), user.UpdateProfile)

	app.Get("/book/:locationId/:size", middleware.RequireAuth(), bookingController.Availability)
	app.Post("/book/:locationId/:size", middleware.RequireAuth(), bookingController.Store)
	app.Get("/my-bookings", middleware.RequireAuth(), bookingController.MyBookings)
	app.Post("/booking/:id/cancel", middleware.RequireAuth(), bookingController.Cancel)

	/*=============================================================================
	| Back-office Routes
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.RequireAdmin())

	adminGroup.Get("/locations", locationAdmin.List)
	adminGroup.Post("/locations", locationAdmin.Create)
	adminGroup.Put("/locations/:id", locationAdmin.Update)
	adminGroup.Delete("/locations/:id", locationAdmin.Delete)

	adminGroup.Get("/lockers", lockerAdmin.List)
	adminGroup.Post("/lockers", lockerAdmin.Create)
	adminGroup.Put("/lockers/:id", lockerAdmin.Update)
	adminGroup.Delete("/lockers/:id", lockerAdmin.Delete)

	adminGroup.Get("/bookings", bookingAdmin.List)
	adminGroup.Get("/bookings/:id/history", bookingAdmin.History)
}
