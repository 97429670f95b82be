package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/pkg/geohash"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Geohash  GeohashConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SessionTTL       time.Duration
	VisualizationTTL time.Duration
	StatsTTL         time.Duration
}

type LogConfig struct {
	Level string
}

// GeohashConfig - параметры сборки geohash-агрегаций
type GeohashConfig struct {
	CollarMargin float64
	MaxPrecision int
	GridBounds   domain.GridBoundsSource
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
}

// Load читает конфигурацию из .env (если он есть) и переменных окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного .env файла и окружения.
// Отсутствующий файл не ошибка: значения берутся из окружения и умолчаний.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	gridBounds, err := domain.ParseGridBoundsSource(v.GetString("GRID_BOUNDS_SOURCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRID_BOUNDS_SOURCE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SessionTTL:       time.Duration(v.GetInt("SESSION_TTL")) * time.Second,
			VisualizationTTL: time.Duration(v.GetInt("VISUALIZATION_CACHE_TTL")) * time.Second,
			StatsTTL:         time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Geohash: GeohashConfig{
			CollarMargin: v.GetFloat64("COLLAR_MARGIN"),
			MaxPrecision: v.GetInt("GEOHASH_MAX_PRECISION"),
			GridBounds:   gridBounds,
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "geogrid")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_TTL", 86400)
	v.SetDefault("VISUALIZATION_CACHE_TTL", 600)
	v.SetDefault("STATS_CACHE_TTL", 30)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("COLLAR_MARGIN", geohash.DefaultMargin)
	v.SetDefault("GEOHASH_MAX_PRECISION", geohash.DefaultMaxPrecision)
	v.SetDefault("GRID_BOUNDS_SOURCE", string(domain.GridBoundsViewport))

	v.SetDefault("WORKER_CONSUMER_GROUP", "geogrid-collar-stats")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
}

// Validate проверяет значения, которые нельзя молча исправить
func (c *Config) Validate() error {
	if c.Geohash.CollarMargin <= 0 {
		return errors.New("COLLAR_MARGIN must be positive")
	}
	if c.Geohash.MaxPrecision < geohash.MinPrecision || c.Geohash.MaxPrecision > geohash.MaxEnginePrecision {
		return fmt.Errorf("GEOHASH_MAX_PRECISION must be within [%d, %d]",
			geohash.MinPrecision, geohash.MaxEnginePrecision)
	}
	if c.Server.Port <= 0 {
		return errors.New("API_PORT must be positive")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value для pgx
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
