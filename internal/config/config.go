package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Cache  CacheConfig
	Log    LogConfig
	Zones  ZonesConfig
	Policy PolicyConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RecommendationTTL time.Duration
}

type LogConfig struct {
	Level string
}

// ZonesConfig - пути к статическим наборам данных, загружаемым при старте
type ZonesConfig struct {
	PaidZonesPath   string
	PermitZonesPath string
	RateRulesPath   string
}

// PolicyConfig - пороги бизнес-правил рекомендаций
type PolicyConfig struct {
	// DowntownCapMeters - порог, за которым точка назначения считается
	// слишком далёкой от платной парковки
	DowntownCapMeters float64
	// ResidentialCapMeters - независимый радиус поиска резидентных зон
	ResidentialCapMeters float64
	// DefaultLimit - количество рекомендаций при отсутствии лимита в запросе
	DefaultLimit int
	// DefaultFallbackRadiusMeters - радиус поиска ближайшей зоны при
	// классификации без вхождения
	DefaultFallbackRadiusMeters float64
	// CheckInRadiusCapMeters - верхняя граница радиуса, выводимого из
	// GPS-точности при чек-ине
	CheckInRadiusCapMeters float64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env опционален: в контейнере конфигурация приходит из окружения
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RecommendationTTL: time.Duration(viper.GetInt("RECOMMENDATION_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Zones: ZonesConfig{
			PaidZonesPath:   viper.GetString("PAID_ZONES_PATH"),
			PermitZonesPath: viper.GetString("PERMIT_ZONES_PATH"),
			RateRulesPath:   viper.GetString("RATE_RULES_PATH"),
		},
		Policy: PolicyConfig{
			DowntownCapMeters:           viper.GetFloat64("POLICY_DOWNTOWN_CAP_METERS"),
			ResidentialCapMeters:        viper.GetFloat64("POLICY_RESIDENTIAL_CAP_METERS"),
			DefaultLimit:                viper.GetInt("POLICY_DEFAULT_LIMIT"),
			DefaultFallbackRadiusMeters: viper.GetFloat64("POLICY_DEFAULT_FALLBACK_RADIUS_METERS"),
			CheckInRadiusCapMeters:      viper.GetFloat64("POLICY_CHECKIN_RADIUS_CAP_METERS"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Cache.RecommendationTTL == 0 {
		cfg.Cache.RecommendationTTL = 300 * time.Second
	}
	if cfg.Zones.PaidZonesPath == "" {
		cfg.Zones.PaidZonesPath = "data/paid_zones.geojson"
	}
	if cfg.Zones.PermitZonesPath == "" {
		cfg.Zones.PermitZonesPath = "data/permit_zones.geojson"
	}
	if cfg.Zones.RateRulesPath == "" {
		cfg.Zones.RateRulesPath = "data/rate_crosswalk.json"
	}
	if cfg.Policy.DowntownCapMeters == 0 {
		cfg.Policy.DowntownCapMeters = 1200
	}
	if cfg.Policy.ResidentialCapMeters == 0 {
		cfg.Policy.ResidentialCapMeters = 500
	}
	if cfg.Policy.DefaultLimit == 0 {
		cfg.Policy.DefaultLimit = 3
	}
	if cfg.Policy.DefaultFallbackRadiusMeters == 0 {
		cfg.Policy.DefaultFallbackRadiusMeters = 150
	}
	if cfg.Policy.CheckInRadiusCapMeters == 0 {
		cfg.Policy.CheckInRadiusCapMeters = 100
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
