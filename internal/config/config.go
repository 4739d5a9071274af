package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is where Load looks for the YAML file when none is given
const DefaultPath = "config/config.yml"

type AppConfig struct {
	Port      int    `koanf:"port"`
	GinMode   string `koanf:"gin_mode"`
	ClientURL string `koanf:"client_url"`
	UploadDir string `koanf:"upload_dir"`
}

type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	Issuer string        `koanf:"issuer"`
	TTL    time.Duration `koanf:"ttl"`
}

type OTPConfig struct {
	TTL         time.Duration `koanf:"ttl"`
	MaxAttempts int           `koanf:"max_attempts"`
}

type MailConfig struct {
	// Provider is one of smtp, sendgrid or console
	Provider    string `koanf:"provider"`
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	Username    string `koanf:"username"`
	Password    string `koanf:"password"`
	From        string `koanf:"from"`
	SendgridKey string `koanf:"sendgrid_key"`
}

type CasbinConfig struct {
	PolicyPath string `koanf:"policy_path"`
}

type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	OTP      OTPConfig      `koanf:"otp"`
	Mail     MailConfig     `koanf:"mail"`
	Casbin   CasbinConfig   `koanf:"casbin"`
}

// envKeys maps the recognized environment variables onto config keys
var envKeys = map[string]string{
	"PORT":             "app.port",
	"GIN_MODE":         "app.gin_mode",
	"CLIENT_URL":       "app.client_url",
	"UPLOAD_DIR":       "app.upload_dir",
	"DATABASE_URL":     "database.dsn",
	"DSN":              "database.dsn",
	"REDIS_ADDR":       "redis.addr",
	"REDIS_PASSWORD":   "redis.password",
	"REDIS_DB":         "redis.db",
	"JWT_SECRET":       "jwt.secret",
	"JWT_ISSUER":       "jwt.issuer",
	"JWT_TTL":          "jwt.ttl",
	"OTP_TTL":          "otp.ttl",
	"OTP_MAX_ATTEMPTS": "otp.max_attempts",
	"MAIL_PROVIDER":    "mail.provider",
	"SMTP_HOST":        "mail.host",
	"SMTP_PORT":        "mail.port",
	"SMTP_USER":        "mail.username",
	"SMTP_PASS":        "mail.password",
	"EMAIL_FROM":       "mail.from",
	"SENDGRID_API_KEY": "mail.sendgrid_key",
	"POLICY_PATH":      "casbin.policy_path",
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		App: AppConfig{
			Port:      5000,
			GinMode:   "release",
			ClientURL: "*",
			UploadDir: "uploads",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		JWT: JWTConfig{
			Issuer: "classhub",
			TTL:    24 * time.Hour,
		},
		OTP: OTPConfig{TTL: 5 * time.Minute, MaxAttempts: 5},
		Mail: MailConfig{
			Provider: "smtp",
			Port:     587,
			From:     "ClassHub <no-reply@classhub.com>",
		},
		Casbin: CasbinConfig{PolicyPath: "config/policies.yml"},
	}
}

// Load reads defaults, then the optional YAML file at path, then .env and the
// process environment. Later sources win.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("CONFIG_DOTENV_SKIPPED: error=%v", err)
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not parse config file at %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey returns the config key for a recognized variable and "" otherwise,
// which makes koanf skip it.
func envKey(name string) string {
	return envKeys[name]
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("invalid JWT TTL: %s", c.JWT.TTL)
	}
	if c.OTP.TTL <= 0 {
		return fmt.Errorf("invalid OTP TTL: %s", c.OTP.TTL)
	}
	if c.OTP.MaxAttempts <= 0 {
		return fmt.Errorf("invalid OTP max attempts: %d", c.OTP.MaxAttempts)
	}
	if c.App.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.App.Port)
	}
	switch c.Mail.Provider {
	case "smtp", "sendgrid", "console":
	default:
		return fmt.Errorf("unknown mail provider %q", c.Mail.Provider)
	}
	return nil
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
