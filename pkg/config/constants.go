package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names.
const EnvPrefix = "CHRONOMART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names referenced outside struct tags (validation, tests).
const (
	EnvAppEnv     = "CHRONOMART_APP_ENV"
	EnvPort       = "CHRONOMART_APP_PORT"
	EnvDBDSN      = "CHRONOMART_DB_DSN"
	EnvDBHost     = "CHRONOMART_DB_HOST"
	EnvDBUser     = "CHRONOMART_DB_USER"
	EnvDBName     = "CHRONOMART_DB_NAME"
	EnvRedisURL   = "CHRONOMART_REDIS_URL"
	EnvJWTSecret  = "CHRONOMART_JWT_SECRET"
	EnvJWTIssuer  = "CHRONOMART_JWT_ISSUER"
	EnvJWTExpMins = "CHRONOMART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
