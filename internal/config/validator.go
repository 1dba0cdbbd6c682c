package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация путей
	if c.DataDir == "" {
		errors = append(errors, "data dir is required")
	}
	if c.ServiceDatabasePath == "" {
		errors = append(errors, "service database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	// Валидация обхода сайта
	if c.Scraper != nil {
		if err := c.Scraper.Validate(); err != nil {
			errors = append(errors, fmt.Sprintf("scraper config: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

// Validate проверяет корректность конфигурации обхода сайта
func (sc *ScraperConfig) Validate() error {
	var errors []string

	if sc.BaseURL == "" {
		errors = append(errors, "base url is required")
	}
	if sc.Timeout < time.Second {
		errors = append(errors, "timeout must be at least 1 second")
	}
	if sc.RateLimitPerSec < 1 {
		errors = append(errors, "rate limit must be at least 1 request per second")
	}
	if sc.MaxPages < 1 {
		errors = append(errors, "max pages must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("scraper validation errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:                "9999",
		DataDir:             "data",
		ServiceDatabasePath: "service.db",
		LogLevel:            "INFO",
		MaxOpenConns:        10,
		MaxIdleConns:        3,
		ConnMaxLifetime:     5 * time.Minute,
		Scraper: &ScraperConfig{
			BaseURL:         "https://www.21vek.by",
			Timeout:         15 * time.Second,
			RateLimitPerSec: 1,
			MaxPages:        20,
		},
	}
}
