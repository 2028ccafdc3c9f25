package config

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32))

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "vault.db", cfg.DB.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Error(t, cfg.Validate(), "defaults carry no keys")
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
db:
  driver: postgres
  dsn: postgres://vault@localhost/vault
auth:
  secret_key: file-secret
  token_ttl: 5m
  bcrypt_cost: 10
crypto:
  encryption_key: `+testKey+`
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "file-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	require.NoError(t, cfg.Validate())

	key, err := cfg.EncryptionKeyBytes()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "auth:\n  secret_key: from-file\n")
	t.Setenv("VAULT_AUTH_SECRET_KEY", "from-env")
	t.Setenv("VAULT_CRYPTO_ENCRYPTION_KEY", testKey)
	t.Setenv("VAULT_DB_DSN", "file:env.db")
	t.Setenv("VAULT_AUTH_TOKEN_TTL", "45m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.SecretKey)
	assert.Equal(t, testKey, cfg.Crypto.EncryptionKey)
	assert.Equal(t, "file:env.db", cfg.DB.DSN)
	assert.Equal(t, 45*time.Minute, cfg.Auth.TokenTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:   "8080",
			DB:     DBConfig{Driver: "sqlite", DSN: "vault.db"},
			Auth:   AuthConfig{SecretKey: "s", TokenTTL: time.Minute, BcryptCost: 10},
			Crypto: CryptoConfig{EncryptionKey: testKey},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.Auth.SecretKey = " " }, "auth.secret_key"},
		{"missing encryption key", func(c *Config) { c.Crypto.EncryptionKey = "" }, "crypto.encryption_key"},
		{"short encryption key", func(c *Config) { c.Crypto.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("short")) }, "crypto.encryption_key"},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, "db.driver"},
		{"empty dsn", func(c *Config) { c.DB.DSN = "" }, "db.dsn"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "auth.token_ttl"},
		{"bad cost", func(c *Config) { c.Auth.BcryptCost = 99 }, "auth.bcrypt_cost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
