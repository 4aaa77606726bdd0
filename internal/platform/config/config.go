package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr           = ":8080"
	DefaultSessionTTL     = 7 * 24 * time.Hour
	DefaultCookieName     = "auth_token"
	DefaultMongoDatabase  = "vetclinic"
	DefaultVerifyPerMin   = 30
	DefaultLoginPerMin    = 10
	devSessionSecret      = "dev-secret-change-in-production"
	minProdSecretLength   = 32
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultRateLimitRange = time.Minute
)

type Driver string

const (
	DriverAuto     Driver = ""
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
)

type Config struct {
	Env       string          `yaml:"env"` // development | production
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// TrustForwarded toma la IP de X-Forwarded-For/X-Real-IP. Solo detrás de un proxy propio.
	TrustForwarded bool `yaml:"trust_forwarded"`
}

type StorageConfig struct {
	// Driver: memory | postgres | mongo. Vacío = auto (mongo si hay URI, postgres si hay DSN).
	Driver        Driver `yaml:"driver"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CookieName    string        `yaml:"cookie_name"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

type RateLimitConfig struct {
	Disabled        bool          `yaml:"disabled"`
	Window          time.Duration `yaml:"window"`
	VerifyPerWindow int           `yaml:"verify_per_window"`
	LoginPerWindow  int           `yaml:"login_per_window"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// Defaults devuelve una config usable en dev (memoria, sin redis).
func Defaults() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Storage: StorageConfig{
			MongoDatabase: DefaultMongoDatabase,
		},
		Auth: AuthConfig{
			SessionSecret: devSessionSecret,
			SessionTTL:    DefaultSessionTTL,
			CookieName:    DefaultCookieName,
		},
		RateLimit: RateLimitConfig{
			Window:          defaultRateLimitRange,
			VerifyPerWindow: DefaultVerifyPerMin,
			LoginPerWindow:  DefaultLoginPerMin,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "vet-clinic",
		},
	}
}

// Load lee el yaml (si path no está vacío), aplica env y valida.
// Orden de precedencia: defaults < archivo < env.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// ResolvedDriver decide el backend de storage cuando Driver está vacío.
func (c *Config) ResolvedDriver() Driver {
	if c.Storage.Driver != DriverAuto {
		return c.Storage.Driver
	}
	if strings.TrimSpace(c.Storage.MongoURI) != "" {
		return DriverMongo
	}
	if strings.TrimSpace(c.Storage.PostgresDSN) != "" {
		return DriverPostgres
	}
	return DriverMemory
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}

	switch c.ResolvedDriver() {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.PostgresDSN) == "" {
			return errors.New("storage.postgres_dsn is required for the postgres driver")
		}
	case DriverMongo:
		if strings.TrimSpace(c.Storage.MongoURI) == "" {
			return errors.New("storage.mongo_uri is required for the mongo driver")
		}
		if strings.TrimSpace(c.Storage.MongoDatabase) == "" {
			c.Storage.MongoDatabase = DefaultMongoDatabase
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if strings.TrimSpace(c.Auth.SessionSecret) == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.IsProduction() {
		if c.Auth.SessionSecret == devSessionSecret || len(c.Auth.SessionSecret) < minProdSecretLength {
			return fmt.Errorf("auth.session_secret must be at least %d chars in production", minProdSecretLength)
		}
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = DefaultSessionTTL
	}
	if strings.TrimSpace(c.Auth.CookieName) == "" {
		c.Auth.CookieName = DefaultCookieName
	}

	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = defaultRateLimitRange
	}
	if c.RateLimit.VerifyPerWindow < 0 || c.RateLimit.LoginPerWindow < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	return nil
}

type lookupFunc func(string) (string, bool)

// applyEnv aplica overrides por env. Nombres alineados con el deploy existente
// (PORT, DB_DSN, LOG_*) y con los de la app original (MONGODB_URI, SESSION_SECRET).
func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("APP_ENV", &cfg.Env)
	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Addr = ":" + strings.TrimSpace(v)
	}

	var driver string
	str("STORAGE_DRIVER", &driver)
	if driver != "" {
		cfg.Storage.Driver = Driver(strings.ToLower(driver))
	}
	str("DB_DSN", &cfg.Storage.PostgresDSN)
	str("MONGODB_URI", &cfg.Storage.MongoURI)
	str("MONGODB_DATABASE", &cfg.Storage.MongoDatabase)
	str("REDIS_URL", &cfg.Redis.URL)

	str("SESSION_SECRET", &cfg.Auth.SessionSecret)
	if v, ok := lookup("SECURE_COOKIES"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SECURE_COOKIES: %w", err)
		}
		cfg.Auth.SecureCookies = b
	}
	if v, ok := lookup("SESSION_TTL"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		cfg.Auth.SessionTTL = d
	}
	if v, ok := lookup("TRUST_FORWARDED"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TRUST_FORWARDED: %w", err)
		}
		cfg.Server.TrustForwarded = b
	}
	if v, ok := lookup("RATE_LIMIT_DISABLED"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_DISABLED: %w", err)
		}
		cfg.RateLimit.Disabled = b
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("APP_NAME", &cfg.Log.App)

	if cfg.IsProduction() {
		cfg.Auth.SecureCookies = true
	}
	return nil
}
