package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	instance *Config
	once     sync.Once
)

type OpenWeatherMapConfig struct {
	BaseURL           string  `yaml:"base_url"`
	APIKey            string  `yaml:"api_key"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type DashboardConfig struct {
	DefaultCity    string        `yaml:"default_city"`
	Timezone       string        `yaml:"timezone"` // IANA name, empty means local time
	EffectInterval time.Duration `yaml:"effect_interval"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config - file settings, overridden by environment variables
type Config struct {
	OpenWeatherMap OpenWeatherMapConfig `yaml:"openweathermap"`
	Dashboard      DashboardConfig      `yaml:"dashboard"`
	Server         ServerConfig         `yaml:"server"`
	Redis          RedisConfig          `yaml:"redis"`
}

func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}

		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			err = fmt.Errorf("failed to read config file %s: %w", configPath, readErr)
			return
		}

		if parseErr := yaml.Unmarshal(data, instance); parseErr != nil {
			err = fmt.Errorf("failed to parse config: %w", parseErr)
			return
		}

		instance.applyDefaults()
		instance.applyEnv()

		if validateErr := instance.validate(); validateErr != nil {
			err = validateErr
			return
		}
	})

	return instance, err
}

func Get() *Config {
	if instance == nil {
		panic("config not loaded - call config.Load() first")
	}
	return instance
}

// Location resolves the dashboard timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Dashboard.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Dashboard.Timezone)
}

func (c *Config) applyDefaults() {
	if c.OpenWeatherMap.BaseURL == "" {
		c.OpenWeatherMap.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if c.OpenWeatherMap.Burst == 0 {
		c.OpenWeatherMap.Burst = 5
	}
	if c.Dashboard.DefaultCity == "" {
		c.Dashboard.DefaultCity = "Surat"
	}
	if c.Dashboard.EffectInterval == 0 {
		c.Dashboard.EffectInterval = 300 * time.Millisecond
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	c.Redis.applyDefaults()
}

func (c *Config) applyEnv() {
	c.OpenWeatherMap.APIKey = getEnv("OPENWEATHER_API_KEY", c.OpenWeatherMap.APIKey)
	c.OpenWeatherMap.BaseURL = getEnv("OPENWEATHER_BASE_URL", c.OpenWeatherMap.BaseURL)
	c.Server.Addr = getEnv("HTTP_ADDR", c.Server.Addr)
	c.Redis.applyEnv()
}

func (c *Config) validate() error {
	if c.OpenWeatherMap.APIKey == "" {
		return fmt.Errorf("openweathermap.api_key cannot be empty (or set OPENWEATHER_API_KEY)")
	}
	if c.OpenWeatherMap.RequestsPerSecond < 0 {
		return fmt.Errorf("openweathermap.requests_per_second cannot be negative")
	}
	if c.Dashboard.EffectInterval < 0 {
		return fmt.Errorf("dashboard.effect_interval cannot be negative")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid dashboard.timezone %q: %w", c.Dashboard.Timezone, err)
	}
	return nil
}
