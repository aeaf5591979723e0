// Package config loads service settings from an optional YAML file and
// LEWS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/lews/internal/lockin"
	"github.com/ZanzyTHEbar/lews/internal/middleware"
	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/ZanzyTHEbar/lews/internal/ratelimit"
	"github.com/ZanzyTHEbar/lews/internal/security"
)

// Config is the complete service configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	CORS         CORSConfig         `mapstructure:"cors"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Compression  CompressionConfig  `mapstructure:"compression"`
	Trajectories TrajectoriesConfig `mapstructure:"trajectories"`
	Engine       EngineConfig       `mapstructure:"engine"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	EnableHSTS      bool          `mapstructure:"enable_hsts"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	BurstMultiplier   int  `mapstructure:"burst_multiplier"`
}

// RedisConfig with an empty Addr keeps rate limiting in memory
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type CompressionConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	MinBytes int  `mapstructure:"min_bytes"`
	Level    int  `mapstructure:"level"`
}

// TrajectoriesConfig with an empty File selects the embedded dataset
type TrajectoriesConfig struct {
	File string `mapstructure:"file"`
}

type EngineConfig struct {
	LockinOffsetYears int           `mapstructure:"lockin_offset_years"`
	Weights           WeightsConfig `mapstructure:"weights"`
}

type WeightsConfig struct {
	Animals        float64 `mapstructure:"animals"`
	Suffering      float64 `mapstructure:"suffering"`
	CanTheyFeel    float64 `mapstructure:"can_they_feel"`
	Growth         float64 `mapstructure:"growth"`
	SupportGap     float64 `mapstructure:"support_gap"`
	PathDependence float64 `mapstructure:"path_dependence"`
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if _, err := monitoring.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			errs = append(errs, fmt.Errorf("ratelimit.requests_per_minute must be positive, got %d", c.RateLimit.RequestsPerMinute))
		}
		if c.RateLimit.BurstMultiplier <= 0 {
			errs = append(errs, fmt.Errorf("ratelimit.burst_multiplier must be positive, got %d", c.RateLimit.BurstMultiplier))
		}
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis.db must not be negative, got %d", c.Redis.DB))
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive when the cache is enabled"))
	}
	if c.Compression.Enabled && (c.Compression.Level < -2 || c.Compression.Level > 9) {
		errs = append(errs, fmt.Errorf("compression.level must be in -2..9, got %d", c.Compression.Level))
	}
	if c.Engine.LockinOffsetYears < 0 {
		errs = append(errs, fmt.Errorf("engine.lockin_offset_years must not be negative, got %d", c.Engine.LockinOffsetYears))
	}
	if err := c.Weights().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine.weights: %w", err))
	}

	return errors.Join(errs...)
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Weights converts the configured coefficients
func (c *Config) Weights() lockin.WeightSet {
	w := c.Engine.Weights
	return lockin.WeightSet{
		Animals:        w.Animals,
		Suffering:      w.Suffering,
		CanTheyFeel:    w.CanTheyFeel,
		Growth:         w.Growth,
		SupportGap:     w.SupportGap,
		PathDependence: w.PathDependence,
	}
}

// Security builds the HTTP hardening settings
func (c *Config) Security() security.Config {
	return security.Config{
		AllowedOrigins: c.CORS.AllowedOrigins,
		EnableHSTS:     c.Server.EnableHSTS,
		MaxBodyBytes:   c.Server.MaxBodyBytes,
		RequestTimeout: c.Server.RequestTimeout,
	}
}

// Compressor builds the gzip settings, or nil when compression is off
func (c *Config) Compressor() *middleware.CompressionConfig {
	if !c.Compression.Enabled {
		return nil
	}
	cfg := middleware.DefaultCompressionConfig()
	cfg.MinSize = c.Compression.MinBytes
	cfg.CompressionLevel = c.Compression.Level
	return &cfg
}

// Limiter builds the rate limiter settings
func (c *Config) Limiter() ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.RequestsPerMinute = c.RateLimit.RequestsPerMinute
	cfg.BurstMultiplier = c.RateLimit.BurstMultiplier
	return cfg
}
