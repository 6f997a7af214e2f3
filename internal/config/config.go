// Package config loads the service configuration from the environment.
//
// Values are read from CONTACTS_* environment variables (a `.env` file is
// loaded first when present), decoded into typed structs and validated so the
// process fails fast on missing settings.
//
// Nested keys use a double underscore:
//
//	CONTACTS_SERVER__PORT        -> server.port
//	CONTACTS_MONGO__URI          -> mongo.uri
//	CONTACTS_STORAGE__DRIVER     -> storage.driver
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix every configuration variable carries.
	EnvPrefix = "CONTACTS_"

	// ServiceName tags logs, traces and metrics.
	ServiceName = "contacts-api"
)

// Storage drivers accepted by StorageConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration object.
//
// Blocks for backends that are not selected by Storage.Driver are optional;
// Validate enforces the ones the selected driver needs.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Storage       StorageConfig        `koanf:"storage"`
	Mongo         MongoConfig          `koanf:"mongo"`
	Database      DatabaseConfig       `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is requests per second per client IP. Zero disables it.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// StorageConfig selects the contact repository backend.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"omitempty,oneof=mongo postgres memory"`
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Name           string        `koanf:"name"`
	Collection     string        `koanf:"collection"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details ("host:port"). Redis backs the
// background job queue; leaving Address empty disables both.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig holds third-party service settings.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`

	// NotifyEmail receives a message whenever a contact is created.
	NotifyEmail string `koanf:"notify_email" validate:"omitempty,email"`
	SenderEmail string `koanf:"sender_email" validate:"omitempty,email"`
}

// LoadConfig reads CONTACTS_* variables, applies defaults and validates the
// result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMongo
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}
	if c.Mongo.Name == "" {
		c.Mongo.Name = "contacts"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "contacts"
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 10 * time.Second
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}

// Validate checks struct tags and the settings the selected storage driver
// depends on.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.Storage.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required when storage.driver is %q", DriverMongo)
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Port == 0 || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("database host, port, user and name are required when storage.driver is %q", DriverPostgres)
		}
	}

	if c.Observability != nil {
		if err := c.Observability.Validate(); err != nil {
			return fmt.Errorf("invalid observability config: %w", err)
		}
	}

	return nil
}
