package config

// EnvPrefix is empty because every variable names its full PIZZACRAFT_ key.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

const (
	EnvAppEnv = "PIZZACRAFT_APP_ENV"
	EnvDBDSN  = "PIZZACRAFT_DB_DSN"
)
