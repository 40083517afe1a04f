// Package config loads the slideshow configuration file.
//
// The file is TOML by default (~/.config/slideshow/config.toml). Files ending
// in .yaml or .yml are decoded as YAML with the same keys. Every field is
// optional; missing values fall back to [Default].
//
//	seed = 42
//	workers = 8
//	data_dir = "~/hashcode/inputs"
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	namespace = "slideshow:dev:"
//
//	[store]
//	backend = "mongo"
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
//	database = "slideshow"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/slideshow/pkg/errors"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

// Defaults applied by [Default].
const (
	DefaultSeed         uint64 = 42
	DefaultReportEvery         = 1024
	DefaultServerAddr          = "localhost:8080"
	DefaultMaxBodyBytes int64  = 64 << 20
	DefaultRedisAddr           = "localhost:6379"
	DefaultMongoDB             = "slideshow"
)

// Config is the on-disk configuration.
type Config struct {
	Seed        uint64 `toml:"seed" yaml:"seed"`
	Workers     int    `toml:"workers" yaml:"workers"`
	ReportEvery int    `toml:"report_every" yaml:"report_every"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string      `toml:"backend" yaml:"backend"`
	Dir     string      `toml:"dir" yaml:"dir"`
	Redis   RedisConfig `toml:"redis" yaml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr      string `toml:"addr" yaml:"addr"`
	Password  string `toml:"password" yaml:"password"`
	DB        int    `toml:"db" yaml:"db"`
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// StoreConfig selects and configures the run store.
type StoreConfig struct {
	Backend string      `toml:"backend" yaml:"backend"`
	Dir     string      `toml:"dir" yaml:"dir"`
	Mongo   MongoConfig `toml:"mongo" yaml:"mongo"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri" yaml:"uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// ServerConfig configures `slideshow serve`.
type ServerConfig struct {
	Addr         string `toml:"addr" yaml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Seed:        DefaultSeed,
		ReportEvery: DefaultReportEvery,
		Cache: CacheConfig{
			Backend: CacheFile,
			Redis:   RedisConfig{Addr: DefaultRedisAddr},
		},
		Store: StoreConfig{
			Backend: StoreFile,
			Mongo:   MongoConfig{Database: DefaultMongoDB},
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// DefaultPath returns ~/.config/slideshow/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "slideshow", "config.toml"), nil
}

// Load reads the file at path over [Default] and validates the result.
// An empty path loads [DefaultPath]; a missing default file is not an error,
// but a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := Parse(data, formatOf(path), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.expand()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format ("toml" or "yaml") into cfg.
// Fields absent from data keep their current value.
func Parse(data []byte, format string, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml")
		}
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return errs.New(errs.ErrCodeUnsupported, "unsupported config format %q", format)
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Validate checks backend names and numeric ranges.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "workers must be >= 0, got %d", c.Workers)
	}
	if c.ReportEvery < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "report_every must be >= 0, got %d", c.ReportEvery)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return errs.New(errs.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreFile:
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			return errs.New(errs.ErrCodeInvalidInput, "store.mongo.uri is required for the mongo backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown store backend %q (want file or mongo)", c.Store.Backend)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.max_body_bytes must be > 0")
	}
	return nil
}

// expand resolves a leading ~ in directory settings.
func (c *Config) expand() {
	c.DataDir = expandHome(c.DataDir)
	c.Cache.Dir = expandHome(c.Cache.Dir)
	c.Store.Dir = expandHome(c.Store.Dir)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
