package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "201013928114", cfg.Store.WhatsAppPhone)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yml")
	content := `
server:
  port: "9090"
storage:
  driver: sqlite
  path: /tmp/shop.db
store:
  currency: EGP
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/shop.db", cfg.Storage.Path)
	assert.Equal(t, "EGP", cfg.Store.Currency)
	// untouched keys keep their defaults
	assert.Equal(t, "Entity Medical", cfg.Store.Name)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_SERVER__PORT", "7070")
	t.Setenv("STOREFRONT_STORE__WHATSAPP_PHONE", "201000000000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "201000000000", cfg.Store.WhatsAppPhone)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = "http" }},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"sqlite without path", func(c *Config) { c.Storage.Driver = StorageSQLite; c.Storage.Path = "" }},
		{"phone with symbols", func(c *Config) { c.Store.WhatsAppPhone = "+20 100" }},
		{"missing currency", func(c *Config) { c.Store.Currency = "" }},
		{"telemetry without endpoint", func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.Endpoint = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: "8081"}
	assert.Equal(t, "127.0.0.1:8081", s.Address())
}
