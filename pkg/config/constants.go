package config

// EnvPrefix is passed to envconfig; the explicit envconfig tags below already
// carry it, so it is empty here and kept for symmetry with Load.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, used by tests and ops tooling.
const (
	EnvAppEnv = "MAISON_APP_ENV"
	EnvPort   = "MAISON_APP_PORT"

	EnvDBDSN  = "MAISON_DB_DSN"
	EnvDBHost = "MAISON_DB_HOST"
	EnvDBUser = "MAISON_DB_USER"
	EnvDBName = "MAISON_DB_NAME"

	EnvPayMongoSecretKey = "MAISON_PAYMONGO_SECRET_KEY"
	EnvResendAPIKey      = "MAISON_RESEND_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
