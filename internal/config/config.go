// Package config loads the command line tool's configuration from a YAML
// file, a .env file and MEDOIDS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MEDOIDS_"

// StoreConfig selects and configures the blob store datasets are read from.
type StoreConfig struct {
	// Type is one of "local", "s3" or "minio".
	Type     string `yaml:"type"`
	Root     string `yaml:"root"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Secure   bool   `yaml:"secure"`
}

// ClusterConfig configures the clustering engine.
type ClusterConfig struct {
	MaxIterations      int    `yaml:"max_iterations"`
	EmptyClusterPolicy string `yaml:"empty_cluster_policy"`
	// Format is "text", "json" or "go-json".
	Format string `yaml:"format"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ResourceConfig bounds IO, concurrency and memory.
type ResourceConfig struct {
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
	MaxWorkers         int64 `yaml:"max_workers"`
	MemoryLimitBytes   int64 `yaml:"memory_limit_bytes"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Store     StoreConfig    `yaml:"store"`
	Cluster   ClusterConfig  `yaml:"cluster"`
	Log       LogConfig      `yaml:"log"`
	Resources ResourceConfig `yaml:"resources"`
}

// Load reads a config from path. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./medoids.yaml, then ~/.config/medoids/config.yaml, and
// falls back to the defaults. It returns the path that was used, if any.
func LoadDefault() (*AppConfig, string, error) {
	candidates := []string{"medoids.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "medoids", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}
	return Default(), "", nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Store:   StoreConfig{Type: "local", Root: "."},
		Cluster: ClusterConfig{MaxIterations: 1000, EmptyClusterPolicy: "reseed-farthest", Format: "text"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Resources: ResourceConfig{
			MaxWorkers: 4,
		},
	}
}

func applyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
	}
	if cfg.Store.Type == "local" && cfg.Store.Root == "" {
		cfg.Store.Root = def.Store.Root
	}
	if cfg.Cluster.Format == "" {
		cfg.Cluster.Format = def.Cluster.Format
	}
	if cfg.Cluster.EmptyClusterPolicy == "" {
		cfg.Cluster.EmptyClusterPolicy = def.Cluster.EmptyClusterPolicy
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Resources.MaxWorkers <= 0 {
		cfg.Resources.MaxWorkers = def.Resources.MaxWorkers
	}
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment, falling back
// to the variables in envFile. A missing envFile is ignored.
func EnvLookup(envFile string) (LookupFunc, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
		if vars != nil {
			fileVars = vars
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from MEDOIDS_* variables.
func (c *AppConfig) ApplyEnv(lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int64) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	str("STORE", &c.Store.Type)
	str("ROOT", &c.Store.Root)
	str("BUCKET", &c.Store.Bucket)
	str("PREFIX", &c.Store.Prefix)
	str("ENDPOINT", &c.Store.Endpoint)
	str("REGION", &c.Store.Region)
	str("EMPTY_CLUSTER_POLICY", &c.Cluster.EmptyClusterPolicy)
	str("FORMAT", &c.Cluster.Format)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup(EnvPrefix + "SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSECURE: %w", EnvPrefix, err)
		}
		c.Store.Secure = b
	}

	maxIter := int64(c.Cluster.MaxIterations)
	if err := integer("MAX_ITERATIONS", &maxIter); err != nil {
		return err
	}
	c.Cluster.MaxIterations = int(maxIter)

	if err := integer("IO_LIMIT", &c.Resources.IOLimitBytesPerSec); err != nil {
		return err
	}
	if err := integer("MAX_WORKERS", &c.Resources.MaxWorkers); err != nil {
		return err
	}
	return integer("MEMORY_LIMIT", &c.Resources.MemoryLimitBytes)
}

// Validate checks that enumerated fields hold known values.
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Store.Type {
	case "local":
	case "s3", "minio":
		if c.Store.Bucket == "" {
			errs = append(errs, fmt.Errorf("store %q requires a bucket", c.Store.Type))
		}
		if c.Store.Type == "minio" && c.Store.Endpoint == "" {
			errs = append(errs, errors.New(`store "minio" requires an endpoint`))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store type %q", c.Store.Type))
	}

	switch c.Cluster.Format {
	case "text", "json", "go-json":
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Cluster.Format))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if c.Cluster.MaxIterations < 0 {
		errs = append(errs, errors.New("max_iterations must not be negative"))
	}

	return errors.Join(errs...)
}
