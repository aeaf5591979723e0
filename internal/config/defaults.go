package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/ZanzyTHEbar/lews/internal/lockin"
)

// setDefaults registers every key with viper. Env overrides only reach keys
// viper knows about, so each field needs a default here.
func setDefaults(v *viper.Viper) {
	w := lockin.DefaultWeights()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_body_bytes", 64<<10)
	v.SetDefault("server.enable_hsts", false)

	v.SetDefault("log.level", "info")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 120)
	v.SetDefault("ratelimit.burst_multiplier", 2)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 15*time.Minute)

	v.SetDefault("compression.enabled", true)
	v.SetDefault("compression.min_bytes", 1024)
	v.SetDefault("compression.level", -1)

	v.SetDefault("trajectories.file", "")

	v.SetDefault("engine.lockin_offset_years", lockin.DefaultLockinOffsetYears)
	v.SetDefault("engine.weights.animals", w.Animals)
	v.SetDefault("engine.weights.suffering", w.Suffering)
	v.SetDefault("engine.weights.can_they_feel", w.CanTheyFeel)
	v.SetDefault("engine.weights.growth", w.Growth)
	v.SetDefault("engine.weights.support_gap", w.SupportGap)
	v.SetDefault("engine.weights.path_dependence", w.PathDependence)
}
