package config

import (
	"os"
	"strconv"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Stream   string `yaml:"stream"`
	Group    string `yaml:"group"`
}

// GetRedisConfig builds the Redis settings from the environment alone,
// for tools that run without a config file
func GetRedisConfig() RedisConfig {
	var cfg RedisConfig
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

func (r *RedisConfig) applyDefaults() {
	if r.Addr == "" {
		r.Addr = "localhost:6379"
	}
	if r.Stream == "" {
		r.Stream = "weather_snapshots"
	}
	if r.Group == "" {
		r.Group = "renderers"
	}
}

func (r *RedisConfig) applyEnv() {
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, err := strconv.Atoi(dbStr); err == nil {
			r.DB = parsed
		}
	}

	r.Addr = getEnv("REDIS_ADDR", r.Addr)
	r.Password = getEnv("REDIS_PASSWORD", r.Password)
	r.Stream = getEnv("REDIS_STREAM", r.Stream)
	r.Group = getEnv("REDIS_GROUP", r.Group)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
