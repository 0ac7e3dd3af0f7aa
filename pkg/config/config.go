package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIZZACRAFT_APP_ENV" default:"dev"`
	Port         string `envconfig:"PIZZACRAFT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PIZZACRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PIZZACRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"PIZZACRAFT_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"PIZZACRAFT_DB_DSN" default:"pizzacraft.db"`

	MaxOpenConns    int           `envconfig:"PIZZACRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PIZZACRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PIZZACRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIZZACRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q (expected %s or %s)", db.Driver, DBDriverSQLite, DBDriverPostgres)
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

// IsSQLite reports whether the configured driver is sqlite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

// RedisConfig is optional: an empty URL disables the catalog cache.
type RedisConfig struct {
	URL          string        `envconfig:"PIZZACRAFT_REDIS_URL"`
	Password     string        `envconfig:"PIZZACRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PIZZACRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PIZZACRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PIZZACRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PIZZACRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PIZZACRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PIZZACRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a cache backend was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"PIZZACRAFT_CATALOG_CACHE_TTL" default:"5m"`
}

type CartConfig struct {
	SessionHeader string `envconfig:"PIZZACRAFT_CART_SESSION_HEADER" default:"X-Cart-Session"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PIZZACRAFT_AUTO_MIGRATE" default:"true"`
}
