package main

import (
	"os"
	"time"

	"locker-booking/constants"
	"locker-booking/database"
	"locker-booking/database/seeders"
	"locker-booking/logger"
	"locker-booking/metrics"
	"locker-booking/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024,
	})

	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	if os.Getenv(constants.EnvSeedDemoData) == "true" {
		seeders.SeedDemoCatalog(db)
	}

	// Optional Redis cache for geocoding results; the app runs fine without
	// it.
	var cache *redis.Client
	if addr := os.Getenv(constants.EnvRedisAddr); addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: addr})
	}

	metrics.Register()
	if metricsPort := os.Getenv(constants.EnvMetricsPort); metricsPort != "" {
		metrics.Serve(":" + metricsPort)
		logger.Success("Metrics listening on port " + metricsPort)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv(constants.EnvFrontendURL),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, cache)

	appHost := os.Getenv(constants.EnvAppHost)
	appPort := os.Getenv(constants.EnvAppPort)
	logger.Success("Server is running on ip: " + appHost + " port: " + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}
}
