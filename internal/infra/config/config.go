package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию сервисов.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	Port        int    `envconfig:"PORT" default:"8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`

	Session struct {
		TTL       time.Duration `envconfig:"SESSION_TTL" default:"30m"`
		CacheSize int           `envconfig:"SESSION_CACHE_SIZE" default:"256"`
	} `envconfig:""`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Export struct {
		ContainerClass string `envconfig:"EXPORT_CONTAINER_CLASS" default:"_a6-g"`
		ProfileDomain  string `envconfig:"EXPORT_PROFILE_DOMAIN" default:"instagram.com"`
		TZ             string `envconfig:"EXPORT_TZ" default:"UTC"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// Parse читает конфиг из окружения и возвращает ошибку вместо завершения процесса.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, err
	}
	if _, err := time.LoadLocation(cfg.Export.TZ); err != nil {
		return AppConfig{}, fmt.Errorf("EXPORT_TZ %q: %w", cfg.Export.TZ, err)
	}
	return cfg, nil
}

// Location возвращает часовой пояс для дат выгрузки без зоны.
// Parse уже проверил EXPORT_TZ, UTC остаётся только для конфигов, собранных вручную.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Export.TZ)
	if err != nil {
		return time.UTC
	}
	return loc
}
