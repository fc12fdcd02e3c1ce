// Package config resolves pybites-search settings once at startup.
//
// Values are layered, highest precedence first: command-line flags (applied by
// the cli package), the process environment, a dotenv file and a YAML file in
// the user's home directory, and built-in defaults. The resolved Config is an
// immutable value passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pybites-search/internal/catalog"
	"github.com/rshade/pybites-search/internal/engine/cache"
)

// File names looked up in the home directory.
const (
	ConfigFileName = ".pybites-search.yaml"
	EnvFileName    = ".pybites-search.env"
)

// Environment variables besides the cache ones defined in the cache package.
const (
	EnvEndpoint  = "PYBITES_SEARCH_ENDPOINT"
	EnvLogLevel  = "PYBITES_SEARCH_LOG_LEVEL"
	EnvLogFormat = "PYBITES_SEARCH_LOG_FORMAT"
)

// ErrNoHomeDir is wrapped by the Error returned when the home directory cannot be resolved.
var ErrNoHomeDir = errors.New("cannot resolve home directory")

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Error is a fatal configuration problem.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("configuration: %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// FileConfig mirrors the optional YAML config file.
type FileConfig struct {
	// Endpoint overrides the catalog URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	Cache CacheConfig `yaml:"cache,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// CacheConfig defines snapshot caching behavior. Nil fields keep their defaults.
type CacheConfig struct {
	// Enabled controls whether the snapshot file is used (default: true).
	Enabled *bool `yaml:"enabled,omitempty"`

	// TTLSeconds is the maximum snapshot age in seconds (default: 86400).
	TTLSeconds *int `yaml:"ttl_seconds,omitempty"`
}

// Config is the resolved configuration for one invocation.
type Config struct {
	HomeDir      string
	CachePath    string
	CacheEnabled bool
	TTLSeconds   int
	Endpoint     string
	Timeout      time.Duration
	Logging      LoggingConfig

	// Sources lists the files that contributed values, for debug logging.
	Sources []string
}

// Resolve builds the Config from the home directory, its optional dotenv and
// YAML files, and lookup (normally os.LookupEnv).
func Resolve(lookup LookupFunc, homeDir func() (string, error)) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}

	home, err := homeDir()
	if err != nil {
		return nil, &Error{Op: "resolving home directory", Err: fmt.Errorf("%w: %w", ErrNoHomeDir, err)}
	}
	if strings.TrimSpace(home) == "" {
		return nil, &Error{Op: "resolving home directory", Err: ErrNoHomeDir}
	}

	cfg := &Config{
		HomeDir:      home,
		CachePath:    cache.DefaultPath(home),
		CacheEnabled: true,
		TTLSeconds:   cache.DefaultTTLSeconds,
		Endpoint:     catalog.DefaultEndpoint,
		Timeout:      catalog.DefaultTimeout,
		Logging:      DefaultLoggingConfig(),
	}

	dotenvPath := filepath.Join(home, EnvFileName)
	dotenv, err := readDotenv(dotenvPath)
	if err != nil {
		return nil, &Error{Op: "reading " + dotenvPath, Err: err}
	}
	if dotenv != nil {
		cfg.Sources = append(cfg.Sources, dotenvPath)
	}

	yamlPath := filepath.Join(home, ConfigFileName)
	file, err := readFileConfig(yamlPath)
	if err != nil {
		return nil, &Error{Op: "reading " + yamlPath, Err: err}
	}
	if file != nil {
		cfg.Sources = append(cfg.Sources, yamlPath)
		cfg.applyFile(file)
	}

	cfg.applyEnv(layered(lookup, dotenv))
	return cfg, nil
}

// WithTTL returns a copy of c using ttlSeconds.
func (c Config) WithTTL(ttlSeconds int) *Config {
	c.TTLSeconds = ttlSeconds
	return &c
}

func (c *Config) applyFile(file *FileConfig) {
	if file.Endpoint != "" {
		c.Endpoint = file.Endpoint
	}
	if file.Cache.Enabled != nil {
		c.CacheEnabled = *file.Cache.Enabled
	}
	if file.Cache.TTLSeconds != nil && *file.Cache.TTLSeconds >= 0 {
		c.TTLSeconds = *file.Cache.TTLSeconds
	}
	if file.Logging.Level != "" {
		c.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		c.Logging.Format = file.Logging.Format
	}
}

func (c *Config) applyEnv(lookup LookupFunc) {
	c.TTLSeconds = cache.TTLFromLookup(lookup, c.TTLSeconds)
	c.CacheEnabled = cache.EnabledFromLookup(lookup, c.CacheEnabled)

	if v, ok := lookup(EnvEndpoint); ok && strings.TrimSpace(v) != "" {
		c.Endpoint = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// layered consults lookup first and falls back to the dotenv values.
func layered(lookup LookupFunc, dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// readDotenv returns nil without error when the file does not exist.
func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil //nolint:nilnil // absent file is not an error
		}
		return nil, err
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parsing dotenv: %w", err)
	}
	return values, nil
}

// readFileConfig returns nil without error when the file does not exist.
func readFileConfig(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil //nolint:nilnil // absent file is not an error
		}
		return nil, err
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &fc, nil
}
