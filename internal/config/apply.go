package config

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siteoverview/pkg/cache"
	"github.com/matzehuels/siteoverview/pkg/pipeline"
)

// PipelineOptions returns the configured render defaults as pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:       c.Render.Width,
		Height:      c.Render.Height,
		Constants:   c.Sizing,
		Formats:     append([]string(nil), c.Render.Formats...),
		LinkBase:    c.Render.LinkBase,
		Scale:       c.Render.Scale,
		Thumbnail:   c.Render.Thumbnail,
		Interaction: c.Render.Interaction,
		LinkTarget:  c.Render.LinkTarget,
		Frame:       c.Render.Frame,
	}
}

// Open creates the configured cache backend and its keyer.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if c.Scope != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Scope+":")
	}

	switch strings.ToLower(c.Backend) {
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: c.RedisURL, Prefix: c.Prefix})
		if err != nil {
			return nil, nil, err
		}
		return rc, keyer, nil
	case CacheNone:
		return cache.NewNullCache(), keyer, nil
	default:
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	}
}

// NewLogger builds a logger from the log section. TimeFormat matches the CLI.
func (c LogConfig) NewLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
	if lvl, err := log.ParseLevel(strings.ToLower(c.Level)); err == nil {
		logger.SetLevel(lvl)
	}
	switch strings.ToLower(c.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	}
	return logger
}
