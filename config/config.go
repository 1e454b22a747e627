// Package config loads runtime settings and opens the database.
//
// Settings are resolved in order: built-in defaults, an optional TOML file,
// a .env file, then process environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config is the full runtime configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Auth     Auth     `toml:"auth"`
	Log      Log      `toml:"log"`
	Bulk     Bulk     `toml:"bulk"`
}

// Server contains HTTP listener settings.
type Server struct {
	Addr            string   `toml:"addr" env:"ROSTER_ADDR"`
	ReadTimeout     Duration `toml:"read_timeout" env:"ROSTER_READ_TIMEOUT"`
	WriteTimeout    Duration `toml:"write_timeout" env:"ROSTER_WRITE_TIMEOUT"`
	IdleTimeout     Duration `toml:"idle_timeout" env:"ROSTER_IDLE_TIMEOUT"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"ROSTER_SHUTDOWN_TIMEOUT"`
	TrustedProxies  []string `toml:"trusted_proxies"`
}

// Database selects the gorm dialect and pool sizing.
type Database struct {
	Driver          string   `toml:"driver" env:"DATABASE_DRIVER"`
	DSN             string   `toml:"dsn" env:"DATABASE_URL"`
	MaxOpenConns    int      `toml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int      `toml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
	SlowThreshold   Duration `toml:"slow_threshold" env:"DATABASE_SLOW_THRESHOLD"`
}

// Auth holds token signing and credential settings.
type Auth struct {
	JWTSecret          string   `toml:"jwt_secret" env:"JWT_SECRET"`
	JWTRefreshSecret   string   `toml:"jwt_refresh_secret" env:"JWT_REFRESH_SECRET"`
	AccessTTL          Duration `toml:"access_ttl" env:"JWT_ACCESS_TTL"`
	RefreshTTL         Duration `toml:"refresh_ttl" env:"JWT_REFRESH_TTL"`
	BcryptCost         int      `toml:"bcrypt_cost" env:"SALT_ROUNDS"`
	LoginRatePerSecond float64  `toml:"login_rate_per_second" env:"LOGIN_RATE_PER_SECOND"`
	LoginBurst         int      `toml:"login_burst" env:"LOGIN_BURST"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
}

// Bulk bounds CSV imports.
type Bulk struct {
	MaxImportRows  int   `toml:"max_import_rows" env:"BULK_MAX_IMPORT_ROWS"`
	MaxUploadBytes int64 `toml:"max_upload_bytes" env:"BULK_MAX_UPLOAD_BYTES"`
}

// Duration is a time.Duration that decodes from strings such as "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	return d.Decode(string(text))
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Decode implements envdecode.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	d.Duration = parsed
	return nil
}

// Load resolves configuration from defaults, the TOML file at path (optional),
// .env and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
