package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Routing  RoutingConfig
	Basemap  BasemapConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RoutingConfig - настройки openrouteservice
type RoutingConfig struct {
	APIKey         string
	BaseURL        string
	Profile        string
	RequestTimeout int // seconds
}

// BasemapConfig - настройки сервера тайлов подложки
type BasemapConfig struct {
	TileURL        string
	UserAgent      string
	MaxTiles       int
	MaxZoom        int
	Concurrency    int
	RequestTimeout int // seconds
}

type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

type CacheConfig struct {
	TilesCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// DefaultsConfig - значения формы по умолчанию
type DefaultsConfig struct {
	Lat float64
	Lon float64
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			ReadTimeout:  time.Duration(v.GetInt("API_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("API_WRITE_TIMEOUT")) * time.Second,
		},
		Routing: RoutingConfig{
			APIKey:         v.GetString("ORS_API_KEY"),
			BaseURL:        v.GetString("ORS_BASE_URL"),
			Profile:        v.GetString("ORS_PROFILE"),
			RequestTimeout: v.GetInt("ORS_REQUEST_TIMEOUT"),
		},
		Basemap: BasemapConfig{
			TileURL:        v.GetString("BASEMAP_TILE_URL"),
			UserAgent:      v.GetString("BASEMAP_USER_AGENT"),
			MaxTiles:       v.GetInt("BASEMAP_MAX_TILES"),
			MaxZoom:        v.GetInt("BASEMAP_MAX_ZOOM"),
			Concurrency:    v.GetInt("BASEMAP_CONCURRENCY"),
			RequestTimeout: v.GetInt("BASEMAP_REQUEST_TIMEOUT"),
		},
		Redis: RedisConfig{
			Enabled:   v.GetBool("REDIS_ENABLED"),
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetInt("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Cache: CacheConfig{
			TilesCacheTTL: time.Duration(v.GetInt("TILES_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Defaults: DefaultsConfig{
			Lat: v.GetFloat64("DEFAULT_LAT"),
			Lon: v.GetFloat64("DEFAULT_LON"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_READ_TIMEOUT", 10)
	v.SetDefault("API_WRITE_TIMEOUT", 120)

	v.SetDefault("ORS_BASE_URL", "https://api.openrouteservice.org")
	v.SetDefault("ORS_PROFILE", "driving-car")
	v.SetDefault("ORS_REQUEST_TIMEOUT", 60)

	v.SetDefault("BASEMAP_TILE_URL", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("BASEMAP_USER_AGENT", "isochrone-map/1.0")
	v.SetDefault("BASEMAP_MAX_TILES", 16)
	v.SetDefault("BASEMAP_MAX_ZOOM", 19)
	v.SetDefault("BASEMAP_CONCURRENCY", 4)
	v.SetDefault("BASEMAP_REQUEST_TIMEOUT", 30)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "isochrone")
	v.SetDefault("TILES_CACHE_TTL", 86400)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DEFAULT_LAT", 25.00307729247567)
	v.SetDefault("DEFAULT_LON", 55.167526256190804)
}

// Validate проверяет обязательные параметры. Ключ провайдера никогда не берётся из кода.
func (c *Config) Validate() error {
	if c.Routing.APIKey == "" {
		return errors.New("ORS_API_KEY is required")
	}
	if c.Routing.BaseURL == "" {
		return errors.New("ORS_BASE_URL is required")
	}
	if c.Basemap.TileURL == "" {
		return errors.New("BASEMAP_TILE_URL is required")
	}
	if c.Basemap.MaxTiles <= 0 {
		return fmt.Errorf("BASEMAP_MAX_TILES must be positive, got %d", c.Basemap.MaxTiles)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
