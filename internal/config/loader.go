package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings
const envPrefix = "LEWS"

// newViper maps nested keys like "redis.addr" onto LEWS_REDIS_ADDR
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

// Load reads the YAML file at configPath when it is non-empty, applies LEWS_*
// environment overrides on top of the defaults and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
		}
	}

	return unmarshalAndValidate(v)
}

// Default returns the configuration with no file and no environment
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v)
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return cfg
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
