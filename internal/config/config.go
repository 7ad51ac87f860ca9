package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MinGeocodeInterval is the smallest spacing allowed between two geocoding
// provider calls.
const MinGeocodeInterval = 1100 * time.Millisecond

// Config is the explicit configuration object threaded through the composition root.
type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	DefaultRegion  string
	MaxUploadBytes int64
	RouteXL        RouteXLConfig
	Nominatim      NominatimConfig
	Cache          CacheConfig
	Endpoint       EndpointConfig
}

type RouteXLConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// HasCredentials reports whether both username and password are set.
func (c RouteXLConfig) HasCredentials() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Password) != ""
}

type NominatimConfig struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	MinInterval  time.Duration
	Timeout      time.Duration
}

type CacheConfig struct {
	Backend       string
	TTL           time.Duration
	DBPath        string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// EndpointConfig controls the fixed-endpoint policy. An empty Region disables it.
type EndpointConfig struct {
	Region     string
	InMultiDay bool
}

// Load reads an optional .env file and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load config: read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DEFAULT_REGION", "ARNHEM")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)

	v.SetDefault("ROUTEXL_BASE_URL", "https://api.routexl.com")
	v.SetDefault("ROUTEXL_TIMEOUT", "60s")

	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("NOMINATIM_USER_AGENT", "VrachtwagenBV-RoutePlanner/1.0")
	v.SetDefault("NOMINATIM_COUNTRY_CODES", "nl")
	v.SetDefault("NOMINATIM_TIMEOUT", "10s")
	v.SetDefault("GEOCODE_MIN_INTERVAL", "1100ms")

	v.SetDefault("GEOCODE_CACHE", "memory")
	v.SetDefault("GEOCODE_CACHE_TTL", "720h")
	v.SetDefault("DB_PATH", "data/geocode.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENDPOINT_IN_MULTI_DAY", false)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("PORT"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		DefaultRegion:  strings.ToUpper(v.GetString("DEFAULT_REGION")),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		RouteXL: RouteXLConfig{
			BaseURL:  strings.TrimRight(v.GetString("ROUTEXL_BASE_URL"), "/"),
			Username: v.GetString("ROUTEXL_USERNAME"),
			Password: v.GetString("ROUTEXL_PASSWORD"),
			Timeout:  v.GetDuration("ROUTEXL_TIMEOUT"),
		},
		Nominatim: NominatimConfig{
			BaseURL:      strings.TrimRight(v.GetString("NOMINATIM_BASE_URL"), "/"),
			UserAgent:    v.GetString("NOMINATIM_USER_AGENT"),
			CountryCodes: v.GetString("NOMINATIM_COUNTRY_CODES"),
			MinInterval:  v.GetDuration("GEOCODE_MIN_INTERVAL"),
			Timeout:      v.GetDuration("NOMINATIM_TIMEOUT"),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(v.GetString("GEOCODE_CACHE")),
			TTL:           v.GetDuration("GEOCODE_CACHE_TTL"),
			DBPath:        v.GetString("DB_PATH"),
			DatabaseURL:   v.GetString("DATABASE_URL"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Endpoint: EndpointConfig{
			Region:     strings.ToUpper(strings.TrimSpace(v.GetString("ENDPOINT_REGION"))),
			InMultiDay: v.GetBool("ENDPOINT_IN_MULTI_DAY"),
		},
	}

	// The provider's usage policy forbids faster lookups.
	if cfg.Nominatim.MinInterval < MinGeocodeInterval {
		cfg.Nominatim.MinInterval = MinGeocodeInterval
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "memory", "none", "sqlite", "redis":
	case "postgres":
		if strings.TrimSpace(c.Cache.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when GEOCODE_CACHE=postgres")
		}
	default:
		return fmt.Errorf("unknown GEOCODE_CACHE %q", c.Cache.Backend)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
