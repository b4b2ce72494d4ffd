// Package config 從環境變數（可選 .env）載入服務設定
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 支援的資料庫驅動
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config 服務設定
type Config struct {
	Database DatabaseConfig
	Mongo    MongoConfig
	Logging  LoggingConfig

	// UTCOffsetHours 成交量日期使用的時區偏移
	UTCOffsetHours int
	MetricsEnabled bool
}

// DatabaseConfig 關聯式資料庫設定
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
	RetryDelay      time.Duration
}

// MongoConfig 文件資料庫設定（URI 為空時停用）
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Enabled 是否啟用文件資料庫
func (m MongoConfig) Enabled() bool {
	return m.URI != ""
}

// LoggingConfig 日誌設定
type LoggingConfig struct {
	Level string
}

// SlogLevel 轉換為 slog.Level（未知值視為 info）
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load 載入設定
//
// 先讀取 .env（不存在時忽略），再讀取環境變數；未設定的項目使用預設值
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}
	return FromEnv()
}

// FromEnv 只從目前的環境變數建立設定
func FromEnv() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
			DSN:             getEnvOrDefault("DB_DSN", "file:pinoydesk.db"),
			MaxOpenConns:    parseIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    parseIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: parseDurationOrDefault("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnectRetries:  parseIntOrDefault("DB_CONNECT_RETRIES", 5),
			RetryDelay:      parseDurationOrDefault("DB_RETRY_DELAY", time.Second),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnvOrDefault("MONGO_DATABASE", "pinoydesk"),
			Timeout:  parseDurationOrDefault("MONGO_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		UTCOffsetHours: parseIntOrDefault("UTC_OFFSET_HOURS", 8),
		MetricsEnabled: parseBoolOrDefault("METRICS_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate 驗證設定
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("DB_DSN must not be empty")
	}
	if c.Database.ConnectRetries < 1 {
		return errors.New("DB_CONNECT_RETRIES must be at least 1")
	}
	if c.Mongo.Enabled() && strings.TrimSpace(c.Mongo.Database) == "" {
		return errors.New("MONGO_DATABASE must be set when MONGO_URI is set")
	}
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return fmt.Errorf("UTC_OFFSET_HOURS out of range: %d", c.UTCOffsetHours)
	}
	return nil
}

// ===========================
// 環境變數輔助函數
// ===========================

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return d
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
