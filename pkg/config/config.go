// Package config loads hemicycle settings from a TOML file and the
// environment.
//
// Settings are resolved in three layers, later ones winning:
//
//  1. Built-in defaults ([Default])
//  2. The TOML file given with --config, or config.toml in the user config
//     directory when it exists
//  3. HEMICYCLE_* environment variables, optionally read from a .env file
//
// A complete file looks like:
//
//	[chart]
//	scale = 100
//	max_rows = 10000
//
//	[output]
//	formats = ["json", "xlsx"]
//
//	[cache]
//	backend = "redis"      # file, redis or none
//	dir = "/var/cache/hemicycle"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	ttl = "168h"
//	key_prefix = "staging:" # namespaces keys in a shared Redis
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/hemicycle/pkg/chart"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
	"github.com/matzehuels/hemicycle/pkg/export"
)

const appName = "hemicycle"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Defaults.
const (
	DefaultScale     = 100.0
	DefaultAddr      = ":8080"
	DefaultRedisAddr = "localhost:6379"
	DefaultCacheTTL  = 7 * 24 * time.Hour
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvScale         = "HEMICYCLE_SCALE"
	EnvCache         = "HEMICYCLE_CACHE"
	EnvCacheDir      = "HEMICYCLE_CACHE_DIR"
	EnvRedisAddr     = "HEMICYCLE_REDIS_ADDR"
	EnvRedisPassword = "HEMICYCLE_REDIS_PASSWORD"
	EnvCachePrefix   = "HEMICYCLE_CACHE_PREFIX"
	EnvAddr          = "HEMICYCLE_ADDR"
)

// Config holds every setting.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// ChartConfig sets layout defaults. Scale applies when neither a groups
// file nor a request names one; MaxRows bounds the row planner for both the
// CLI and the HTTP API.
type ChartConfig struct {
	Scale   float64 `toml:"scale"`
	MaxRows int     `toml:"max_rows"`
}

// OutputConfig lists the export formats written by layout when -f is not
// given.
type OutputConfig struct {
	Formats []string `toml:"formats"`
}

// CacheConfig selects the cache backend. Dir is used by the file backend,
// the Redis fields by the redis backend. KeyPrefix is prepended to every
// key so deployments sharing one Redis do not collide; TTL overrides the
// lifetime of cached charts and artifacts.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	KeyPrefix     string   `toml:"key_prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration that decodes from TOML strings like "36h".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chart:  ChartConfig{Scale: DefaultScale, MaxRows: chart.DefaultMaxRows},
		Output: OutputConfig{Formats: []string{string(export.FormatJSON)}},
		Cache: CacheConfig{
			Backend:   BackendFile,
			Dir:       DefaultCacheDir(),
			RedisAddr: DefaultRedisAddr,
			TTL:       Duration{DefaultCacheTTL},
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load resolves the configuration. An empty path falls back to
// [DefaultPath] when that file exists. envFile names a dotenv file to
// read before the environment is applied; a missing envFile is not an error.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := cfg.LoadFile(path); err != nil {
				return Config{}, err
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "load %s", envFile)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFile merges the TOML file at path into c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if os.IsNotExist(err) {
		return herrors.Wrap(herrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// ApplyEnv overrides settings from environment variables looked up with
// getenv. Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvScale); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "%s", EnvScale)
		}
		c.Chart.Scale = scale
	}
	if v := getenv(EnvCache); v != "" {
		c.Cache.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := getenv(EnvRedisPassword); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := getenv(EnvCachePrefix); v != "" {
		c.Cache.KeyPrefix = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if err := herrors.ValidateScale(c.Chart.Scale); err != nil {
		return err
	}
	if c.Chart.MaxRows < 1 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "chart.max_rows must be at least 1, got %d", c.Chart.MaxRows)
	}
	for _, f := range c.Output.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			return err
		}
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return herrors.New(herrors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendFile && c.Cache.Dir == "" {
		return herrors.New(herrors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return herrors.New(herrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// DefaultCacheDir returns the cache directory using XDG standard
// (~/.cache/hemicycle/), or "" when no home directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

// DefaultPath returns the default config file location
// (~/.config/hemicycle/config.toml), or "" when no home directory is known.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
