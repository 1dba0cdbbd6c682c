// Package config конфигурация навыка: переменные окружения с
// возможностью переопределения из сервисной базы.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"skillserver/database"
)

// Ключ, под которым конфигурация хранится в app_config сервисной базы
const appConfigKey = "skill_config"

// Config конфигурация сервера навыка
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Данные
	DataDir             string `json:"data_dir"`
	ServiceDatabasePath string `json:"service_database_path"`

	// Навык
	SkillID string `json:"skill_id"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Connection pooling сервисной базы
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Обновление каталога с сайта магазина
	Scraper *ScraperConfig `json:"scraper"`
}

// ScraperConfig конфигурация обхода сайта магазина
type ScraperConfig struct {
	BaseURL         string        `json:"base_url"`
	Timeout         time.Duration `json:"timeout"`
	RateLimitPerSec int           `json:"rate_limit_per_sec"`
	MaxPages        int           `json:"max_pages"`
}

// LoadConfig загружает конфигурацию из сервисной БД (если serviceDB
// передан и в ней есть сохраненная конфигурация) или из переменных
// окружения. Невалидная конфигурация из базы не валит запуск, а лишь
// откатывает на окружение.
func LoadConfig(serviceDB ...*database.ServiceDB) (*Config, error) {
	if len(serviceDB) > 0 && serviceDB[0] != nil {
		if config := loadFromDB(serviceDB[0]); config != nil {
			return config, nil
		}
	}

	config := &Config{
		Port: getEnv("SERVER_PORT", "9999"),

		DataDir:             getEnv("DATA_DIR", "data"),
		ServiceDatabasePath: getEnv("SERVICE_DATABASE_PATH", "service.db"),

		SkillID: os.Getenv("SKILL_ID"),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 3),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		Scraper: LoadScraperConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("невалидная конфигурация: %w", err)
	}
	return config, nil
}

// loadFromDB пытается прочитать конфигурацию из сервисной базы;
// nil означает "нет или непригодна, грузись из окружения"
func loadFromDB(serviceDB *database.ServiceDB) *Config {
	logger := slog.Default().With("component", "config")

	raw, ok, err := serviceDB.GetAppConfig(context.Background(), appConfigKey)
	if err != nil || !ok || raw == "" {
		return nil
	}

	var cfgJSON configJSON
	if err := json.Unmarshal([]byte(raw), &cfgJSON); err != nil {
		logger.Warn("Stored config unreadable, falling back to env", "error", err.Error())
		return nil
	}

	config := cfgJSON.toConfig()
	if err := config.Validate(); err != nil {
		logger.Warn("Stored config invalid, falling back to env", "error", err.Error())
		return nil
	}

	logger.Info("Config loaded from service database")
	return config
}

// LoadScraperConfig загружает конфигурацию обхода сайта
func LoadScraperConfig() *ScraperConfig {
	return &ScraperConfig{
		BaseURL:         getEnv("SCRAPER_BASE_URL", "https://www.21vek.by"),
		Timeout:         getEnvDuration("SCRAPER_TIMEOUT", 15*time.Second),
		RateLimitPerSec: getEnvInt("SCRAPER_RATE_LIMIT_PER_SEC", 1),
		MaxPages:        getEnvInt("SCRAPER_MAX_PAGES", 20),
	}
}

// SaveConfig сохраняет конфигурацию в сервисную БД
func SaveConfig(cfg *Config, serviceDB *database.ServiceDB) error {
	if serviceDB == nil {
		return fmt.Errorf("сервисная база не передана")
	}

	data, err := json.Marshal(newConfigJSON(cfg))
	if err != nil {
		return fmt.Errorf("сериализация конфигурации: %w", err)
	}

	if err := serviceDB.SaveAppConfig(context.Background(), appConfigKey, string(data)); err != nil {
		return fmt.Errorf("сохранение конфигурации: %w", err)
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// configJSON структура для сериализации конфигурации: Duration хранится
// строкой, чтобы запись в базе оставалась читаемой
type configJSON struct {
	Port                string         `json:"port"`
	DataDir             string         `json:"data_dir"`
	ServiceDatabasePath string         `json:"service_database_path"`
	SkillID             string         `json:"skill_id"`
	LogLevel            string         `json:"log_level"`
	MaxOpenConns        int            `json:"max_open_conns"`
	MaxIdleConns        int            `json:"max_idle_conns"`
	ConnMaxLifetime     string         `json:"conn_max_lifetime"`
	Scraper             *ScraperConfig `json:"scraper"`
}

func newConfigJSON(cfg *Config) *configJSON {
	return &configJSON{
		Port:                cfg.Port,
		DataDir:             cfg.DataDir,
		ServiceDatabasePath: cfg.ServiceDatabasePath,
		SkillID:             cfg.SkillID,
		LogLevel:            cfg.LogLevel,
		MaxOpenConns:        cfg.MaxOpenConns,
		MaxIdleConns:        cfg.MaxIdleConns,
		ConnMaxLifetime:     cfg.ConnMaxLifetime.String(),
		Scraper:             cfg.Scraper,
	}
}

func (cj *configJSON) toConfig() *Config {
	connMaxLifetime, err := time.ParseDuration(cj.ConnMaxLifetime)
	if err != nil {
		connMaxLifetime = 5 * time.Minute
	}

	return &Config{
		Port:                cj.Port,
		DataDir:             cj.DataDir,
		ServiceDatabasePath: cj.ServiceDatabasePath,
		SkillID:             cj.SkillID,
		LogLevel:            cj.LogLevel,
		MaxOpenConns:        cj.MaxOpenConns,
		MaxIdleConns:        cj.MaxIdleConns,
		ConnMaxLifetime:     connMaxLifetime,
		Scraper:             cj.Scraper,
	}
}
