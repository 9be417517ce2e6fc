package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/medoids"
	"github.com/hupe1980/medoids/blobstore"
	miniostore "github.com/hupe1980/medoids/blobstore/minio"
	s3store "github.com/hupe1980/medoids/blobstore/s3"
	"github.com/hupe1980/medoids/codec"
	"github.com/hupe1980/medoids/internal/config"
	"github.com/hupe1980/medoids/resource"
	"github.com/spf13/cobra"
)

// app holds everything a subcommand needs, resolved from config file,
// environment and flags, in increasing precedence.
type app struct {
	cfg    *config.AppConfig
	logger *medoids.Logger
	store  blobstore.BlobStore
	rc     *resource.Controller
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cmd.Context(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Type, err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.Resources.MemoryLimitBytes,
			MaxWorkers:         cfg.Resources.MaxWorkers,
			IOLimitBytesPerSec: cfg.Resources.IOLimitBytesPerSec,
		}),
	}, nil
}

func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	flags := cmd.Flags()

	cfgPath, _ := flags.GetString("config")
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	envFile, _ := flags.GetString("env-file")
	lookup, err := config.EnvLookup(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	overrideString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	overrideString("store", &cfg.Store.Type)
	overrideString("root", &cfg.Store.Root)
	overrideString("bucket", &cfg.Store.Bucket)
	overrideString("prefix", &cfg.Store.Prefix)
	overrideString("endpoint", &cfg.Store.Endpoint)
	overrideString("region", &cfg.Store.Region)
	overrideString("log-level", &cfg.Log.Level)
	overrideString("log-format", &cfg.Log.Format)
	overrideString("format", &cfg.Cluster.Format)
	overrideString("empty-cluster-policy", &cfg.Cluster.EmptyClusterPolicy)

	if flags.Changed("io-limit") {
		cfg.Resources.IOLimitBytesPerSec, _ = flags.GetInt64("io-limit")
	}
	if flags.Changed("max-iterations") {
		cfg.Cluster.MaxIterations, _ = flags.GetInt("max-iterations")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.LogConfig) (*medoids.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	w := cmd.ErrOrStderr()
	if cfg.Format == "json" {
		return medoids.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return medoids.NewLogger(slog.NewTextHandler(w, opts)), nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (blobstore.BlobStore, error) {
	switch cfg.Type {
	case "local":
		return blobstore.NewLocalStore(cfg.Root), nil
	case "s3":
		opts := []s3store.Option{s3store.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3store.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(cfg.Endpoint))
		}
		return s3store.New(ctx, cfg.Bucket, opts...)
	case "minio":
		return miniostore.New(cfg.Endpoint, cfg.Bucket,
			miniostore.WithPrefix(cfg.Prefix),
			miniostore.WithSecure(cfg.Secure),
			miniostore.WithRegion(cfg.Region),
		)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}

// outputCodec returns the codec for format, or nil for plain text.
func outputCodec(format string) (codec.Codec, error) {
	if format == "text" {
		return nil, nil
	}
	c, ok := codec.ByName(format)
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return c, nil
}
