package config

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/pipeline"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites/source"
)

// Validate validates the configuration and returns an error if invalid
func Validate(cfg *Config) error {
	checks := []struct {
		section string
		fn      func() error
	}{
		{"server", func() error { return validateServerConfig(&cfg.Server) }},
		{"cache", func() error { return validateCacheConfig(&cfg.Cache) }},
		{"source", func() error { return validateSourceConfig(&cfg.Source) }},
		{"render", func() error { return validateRenderConfig(&cfg.Render) }},
		{"log", func() error { return validateLogConfig(&cfg.Log) }},
		{"sizing", func() error { return validateSizing(&cfg.Sizing) }},
	}
	for _, c := range checks {
		if err := c.fn(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s config", c.section)
		}
	}
	return nil
}

// validateServerConfig validates HTTP server configuration
func validateServerConfig(c *ServerConfig) error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "addr is required")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.RequestTimeout < 0 || c.ShutdownTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeouts cannot be negative")
	}
	return nil
}

// validateCacheConfig validates the cache backend selection
func validateCacheConfig(c *CacheConfig) error {
	switch strings.ToLower(c.Backend) {
	case CacheFile:
		if c.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "dir is required for the file cache")
		}
	case CacheRedis:
		if c.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis_url is required for the redis cache")
		}
	case CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid backend: %s (valid: file, redis, none)", c.Backend)
	}
	return nil
}

// validateSourceConfig validates the site source selection
func validateSourceConfig(c *source.Config) error {
	switch c.Kind {
	case source.KindFile:
		if c.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "path is required for the file source")
		}
	case source.KindMongo:
		if c.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo_uri is required for the mongo source")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid kind: %s (valid: file, mongo)", c.Kind)
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout cannot be negative")
	}
	return nil
}

// validateRenderConfig validates the default render options
func validateRenderConfig(c *RenderConfig) error {
	opts := pipeline.Options{
		Width:       c.Width,
		Height:      c.Height,
		Formats:     c.Formats,
		LinkBase:    c.LinkBase,
		Scale:       c.Scale,
		Thumbnail:   c.Thumbnail,
		Interaction: c.Interaction,
		LinkTarget:  c.LinkTarget,
		Frame:       c.Frame,
	}
	return opts.ValidateAndSetDefaults()
}

// validateLogConfig validates log configuration
func validateLogConfig(c *LogConfig) error {
	if _, err := log.ParseLevel(strings.ToLower(c.Level)); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log level: %s (valid: debug, info, warn, error, fatal)", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "text", "json", "logfmt":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log format: %s (valid: text, json, logfmt)", c.Format)
	}
	return nil
}

// validateSizing rejects constants that break the layout search.
func validateSizing(c *layout.Constants) error {
	if c.MaxBoxWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_box_width must be positive")
	}
	if c.BoxHorizontalPadding < 0 || c.BoxHorizontalPadding >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "box_horizontal_padding must be in [0, 1)")
	}
	if c.BoxVerticalPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "box_vertical_padding cannot be negative")
	}
	for name, v := range map[string]float64{
		"min_label_width":         c.MinLabelWidth,
		"label_height":            c.LabelHeight,
		"label_vertical_padding":  c.LabelVerticalPadding,
		"area_vertical_padding":   c.AreaVerticalPadding,
		"area_horizontal_padding": c.AreaHorizontalPadding,
		"header_height":           c.HeaderHeight,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s cannot be negative", name)
		}
	}
	return nil
}
