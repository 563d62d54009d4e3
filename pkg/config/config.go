package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	PayMongo PayMongoConfig
	Resend   ResendConfig
	Store    StoreConfig
}

// Load reads configuration from the environment. Provider credentials are
// deliberately not required here: a missing secret disables only the step
// that needs it, and the affected handler reports the configuration error.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DB.assembleDSN()
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAISON_APP_ENV" default:"development"`
	Port         string `envconfig:"MAISON_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MAISON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAISON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MAISON_DB_DSN"`
	Driver string `envconfig:"MAISON_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MAISON_DB_HOST"`
	LegacyPort     int    `envconfig:"MAISON_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MAISON_DB_USER"`
	LegacyPassword string `envconfig:"MAISON_DB_PASSWORD"`
	LegacyName     string `envconfig:"MAISON_DB_NAME"`
	LegacySSLMode  string `envconfig:"MAISON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MAISON_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MAISON_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MAISON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MAISON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Configured reports whether enough was provided to reach the database.
func (db DBConfig) Configured() bool {
	return db.DSN != ""
}

type PayMongoConfig struct {
	SecretKey string        `envconfig:"MAISON_PAYMONGO_SECRET_KEY"`
	BaseURL   string        `envconfig:"MAISON_PAYMONGO_BASE_URL" default:"https://api.paymongo.com/v1"`
	Timeout   time.Duration `envconfig:"MAISON_PAYMONGO_TIMEOUT" default:"30s"`
}

func (p PayMongoConfig) Configured() bool {
	return strings.TrimSpace(p.SecretKey) != ""
}

type ResendConfig struct {
	APIKey    string        `envconfig:"MAISON_RESEND_API_KEY"`
	BaseURL   string        `envconfig:"MAISON_RESEND_BASE_URL" default:"https://api.resend.com"`
	FromEmail string        `envconfig:"MAISON_RESEND_FROM_EMAIL" default:"Maison Arlo <orders@maisonarlo.com>"`
	OpsEmail  string        `envconfig:"MAISON_RESEND_OPS_EMAIL" default:"inventory@maisonarlo.com"`
	Timeout   time.Duration `envconfig:"MAISON_RESEND_TIMEOUT" default:"15s"`
}

func (r ResendConfig) Configured() bool {
	return strings.TrimSpace(r.APIKey) != ""
}

type StoreConfig struct {
	Name     string `envconfig:"MAISON_STORE_NAME" default:"Maison Arlo"`
	Currency string `envconfig:"MAISON_STORE_CURRENCY" default:"PHP"`
}

// assembleDSN builds a postgres DSN from the discrete legacy variables when
// no full DSN was provided. Missing pieces leave the DSN empty; the caller
// decides whether a database is required.
func (db *DBConfig) assembleDSN() {
	if db.DSN != "" {
		return
	}

	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			return
		}
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
}
