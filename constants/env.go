package constants

// Environment variable names used across the application.
const (
	EnvAppEnv       = "APP_ENV"
	EnvAppHost      = "APP_HOST"
	EnvAppPort      = "APP_PORT"
	EnvMetricsPort  = "METRICS_PORT"
	EnvFrontendURL  = "FRONTEND_URL"
	EnvJWTSecret    = "JWT_SECRET"
	EnvGeocoderURL  = "GEOCODER_BASE_URL"
	EnvRedisAddr    = "REDIS_ADDR"
	EnvSeedDemoData = "SEED_DEMO_DATA"
)
