// Package config loads siteoverview settings from a TOML file, the
// environment and built-in defaults.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites/source"
)

// EnvPrefix prefixes every environment variable, e.g. SITEOVERVIEW_SERVER_ADDR.
const EnvPrefix = "SITEOVERVIEW"

// Config holds the complete application configuration
type Config struct {
	Server ServerConfig     `mapstructure:"server"`
	Cache  CacheConfig      `mapstructure:"cache"`
	Source source.Config    `mapstructure:"source"`
	Render RenderConfig     `mapstructure:"render"`
	Log    LogConfig        `mapstructure:"log"`
	Sizing layout.Constants `mapstructure:"sizing"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig selects the cache backend
type CacheConfig struct {
	Backend  string `mapstructure:"backend"`
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
	Prefix   string `mapstructure:"prefix"`
	// Scope namespaces keys so several dashboards can share one backend.
	Scope string `mapstructure:"scope"`
}

// RenderConfig holds default render options
type RenderConfig struct {
	Width       float64  `mapstructure:"width"`
	Height      float64  `mapstructure:"height"`
	Formats     []string `mapstructure:"formats"`
	LinkBase    string   `mapstructure:"link_base"`
	Scale       float64  `mapstructure:"scale"`
	Thumbnail   int      `mapstructure:"thumbnail"`
	Interaction bool     `mapstructure:"interaction"`
	LinkTarget  string   `mapstructure:"link_target"`
	Frame       bool     `mapstructure:"frame"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (applied by the caller)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases for the connection strings deployments set most.
	_ = v.BindEnv("cache.redis_url", EnvPrefix+"_CACHE_REDIS_URL", EnvPrefix+"_REDIS_URL")
	_ = v.BindEnv("source.mongo_uri", EnvPrefix+"_SOURCE_MONGO_URI", EnvPrefix+"_MONGO_URI")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("siteoverview")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/siteoverview")
		v.AddConfigPath("/etc/siteoverview/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file")
		}
		// Config file not found is not an error - we can use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshal config")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Cache defaults
	v.SetDefault("cache.backend", CacheFile)
	v.SetDefault("cache.dir", DefaultCacheDir())
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.prefix", "siteoverview:")
	v.SetDefault("cache.scope", "")

	// Source defaults
	v.SetDefault("source.kind", source.KindFile)
	v.SetDefault("source.path", "sites.json")
	v.SetDefault("source.title", "")
	v.SetDefault("source.mongo_uri", "")
	v.SetDefault("source.mongo_database", source.DefaultMongoDatabase)
	v.SetDefault("source.mongo_collection", source.DefaultMongoCollection)
	v.SetDefault("source.timeout", source.DefaultMongoTimeout)

	// Render defaults
	v.SetDefault("render.width", 800.0)
	v.SetDefault("render.height", 600.0)
	v.SetDefault("render.formats", []string{"svg"})
	v.SetDefault("render.link_base", "")
	v.SetDefault("render.scale", 2.0)
	v.SetDefault("render.thumbnail", 0)
	v.SetDefault("render.interaction", false)
	v.SetDefault("render.link_target", "")
	v.SetDefault("render.frame", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Sizing defaults
	c := layout.DefaultConstants()
	v.SetDefault("sizing.max_box_width", c.MaxBoxWidth)
	v.SetDefault("sizing.box_vertical_padding", c.BoxVerticalPadding)
	v.SetDefault("sizing.box_horizontal_padding", c.BoxHorizontalPadding)
	v.SetDefault("sizing.min_label_width", c.MinLabelWidth)
	v.SetDefault("sizing.label_height", c.LabelHeight)
	v.SetDefault("sizing.label_vertical_padding", c.LabelVerticalPadding)
	v.SetDefault("sizing.area_vertical_padding", c.AreaVerticalPadding)
	v.SetDefault("sizing.area_horizontal_padding", c.AreaHorizontalPadding)
	v.SetDefault("sizing.header_height", c.HeaderHeight)
}

// DefaultCacheDir returns ~/.cache/siteoverview, or a directory below the
// system temp dir when the home directory is unknown.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "siteoverview")
	}
	return filepath.Join(os.TempDir(), "siteoverview-cache")
}
