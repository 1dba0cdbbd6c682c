// Package database сервисная база навыка: журнал диалогов для аналитики
// и конфигурация приложения, переживающая перезапуск.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация подключения к сервисной базе
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServiceDB обертка над сервисной базой данных навыка
type ServiceDB struct {
	conn *sql.DB
}

// NewServiceDB открывает сервисную базу и применяет миграции
func NewServiceDB(dbPath string) (*ServiceDB, error) {
	config := DBConfig{}

	// Для in-memory SQLite требуется ровно одно соединение, иначе каждое
	// новое соединение получает пустую БД без таблиц
	if isInMemoryServiceDB(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	return NewServiceDBWithConfig(dbPath, config)
}

// isInMemoryServiceDB определяет, что путь относится к in-memory SQLite
func isInMemoryServiceDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// NewServiceDBWithConfig открывает сервисную базу с настройками пула
func NewServiceDBWithConfig(dbPath string, config DBConfig) (*ServiceDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("открытие сервисной базы: %w", err)
	}

	// SQLite плохо переносит большое число одновременных соединений
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(10)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("проверка сервисной базы: %w", err)
	}

	db := &ServiceDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close закрывает подключение к сервисной базе
func (db *ServiceDB) Close() error {
	return db.conn.Close()
}

// migrate создает таблицы сервисной базы
func (db *ServiceDB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS dialog_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			application_id TEXT NOT NULL DEFAULT '',
			utterance TEXT NOT NULL,
			normalized TEXT NOT NULL DEFAULT '',
			intent TEXT NOT NULL,
			resolved_code TEXT NOT NULL DEFAULT '',
			response_text TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dialog_log_intent ON dialog_log(intent)`,
		`CREATE INDEX IF NOT EXISTS idx_dialog_log_session ON dialog_log(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_dialog_log_created ON dialog_log(created_at)`,
		`CREATE TABLE IF NOT EXISTS app_config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := db.conn.Exec(migration); err != nil {
			return fmt.Errorf("миграция сервисной базы: %w", err)
		}
	}
	return nil
}
