package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeFile(t, "config.yml", `
app:
  port: 8080
  client_url: "http://localhost:3000"
jwt:
  secret: from-file
  ttl: 2h
otp:
  ttl: 10m
mail:
  provider: console
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("OTP_MAX_ATTEMPTS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://localhost:3000", cfg.App.ClientURL)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 3, cfg.OTP.MaxAttempts)
	assert.Equal(t, "console", cfg.Mail.Provider)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "*", cfg.App.ClientURL)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "smtp", cfg.Mail.Provider)
	assert.Equal(t, "ClassHub <no-reply@classhub.com>", cfg.Mail.From)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero otp ttl", mutate: func(c *Config) { c.OTP.TTL = 0 }, wantErr: true},
		{name: "zero otp attempts", mutate: func(c *Config) { c.OTP.MaxAttempts = 0 }, wantErr: true},
		{name: "negative jwt ttl", mutate: func(c *Config) { c.JWT.TTL = -time.Second }, wantErr: true},
		{name: "unknown mail provider", mutate: func(c *Config) { c.Mail.Provider = "pigeon" }, wantErr: true},
		{name: "sendgrid provider", mutate: func(c *Config) { c.Mail.Provider = "sendgrid" }, wantErr: false},
		{name: "bad port", mutate: func(c *Config) { c.App.Port = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.JWT.Secret = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadPolicies(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		rules, err := LoadPolicies(filepath.Join(t.TempDir(), "none.yml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicies(), rules)
	})

	t.Run("file rules", func(t *testing.T) {
		path := writeFile(t, "policies.yml", `
policies:
  - { role: role_teacher, path: "/homework/*", methods: "(GET|POST)" }
`)
		rules, err := LoadPolicies(path)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, PolicyRule{Role: "role_teacher", Path: "/homework/*", Methods: "(GET|POST)"}, rules[0])
	})

	t.Run("incomplete rule", func(t *testing.T) {
		path := writeFile(t, "policies.yml", `
policies:
  - { role: role_teacher, path: "/homework/*" }
`)
		_, err := LoadPolicies(path)
		assert.Error(t, err)
	})
}
