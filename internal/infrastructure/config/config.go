package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys are joined
// with a double underscore: STOREFRONT_SERVER__PORT -> server.port
const EnvPrefix = "STOREFRONT_"

type StorageDriver string

const (
	StorageMemory StorageDriver = "memory"
	StorageSQLite StorageDriver = "sqlite"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Store     StoreConfig     `koanf:"store"`
}

type ServerConfig struct {
	Host           string   `koanf:"host"`
	Port           string   `koanf:"port"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	CookieName     string   `koanf:"cookie_name"`
	CookieSecure   bool     `koanf:"cookie_secure"`
}

type StorageConfig struct {
	Driver StorageDriver `koanf:"driver"`
	Path   string        `koanf:"path"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
	Environment string `koanf:"environment"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `koanf:"log_level"`
	// MillisecondHistogram adds http.server.request.duration.ms next to the
	// standard seconds based duration metric
	MillisecondHistogram bool `koanf:"millisecond_histogram"`
}

// StoreConfig holds the storefront's business settings
type StoreConfig struct {
	Name            string `koanf:"name"`
	WhatsAppPhone   string `koanf:"whatsapp_phone"`
	Currency        string `koanf:"currency"`
	DemoUserName    string `koanf:"demo_user_name"`
	NewUserName     string `koanf:"new_user_name"`
	RelatedProducts int    `koanf:"related_products"`
	FeaturedLimit   int    `koanf:"featured_limit"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			CookieName:     "storefront_session",
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
			Path:   "data/storefront.db",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			ServiceName: "storefront-api",
			Environment: "development",
			LogLevel:    "info",
		},
		Store: StoreConfig{
			Name:            "Entity Medical",
			WhatsAppPhone:   "201013928114",
			Currency:        "جنيه",
			DemoUserName:    "د. عمر الشريف",
			NewUserName:     "مستخدم جديد",
			RelatedProducts: 4,
			FeaturedLimit:   4,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (STOREFRONT_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	if c.Server.CookieName == "" {
		return fmt.Errorf("server cookie_name is required")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("invalid storage driver %q: must be one of memory, sqlite", c.Storage.Driver)
	}

	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry endpoint is required when telemetry is enabled")
	}

	if c.Store.WhatsAppPhone == "" {
		return fmt.Errorf("store whatsapp_phone is required")
	}
	if strings.Trim(c.Store.WhatsAppPhone, "0123456789") != "" {
		return fmt.Errorf("store whatsapp_phone %q must contain digits only", c.Store.WhatsAppPhone)
	}
	if c.Store.Currency == "" {
		return fmt.Errorf("store currency is required")
	}
	if c.Store.RelatedProducts < 0 || c.Store.FeaturedLimit < 0 {
		return fmt.Errorf("store related_products and featured_limit must be non-negative")
	}

	return nil
}

// Address returns host:port for the HTTP listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}
