package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetAppConfig возвращает значение ключа конфигурации; пустая строка и
// false, если ключ не задан
func (db *ServiceDB) GetAppConfig(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("чтение конфигурации %q: %w", key, err)
	}
	return value, true, nil
}

// SaveAppConfig сохраняет значение ключа конфигурации, затирая старое
func (db *ServiceDB) SaveAppConfig(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO app_config (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("сохранение конфигурации %q: %w", key, err)
	}
	return nil
}

// GetAllAppConfig возвращает всю таблицу конфигурации
func (db *ServiceDB) GetAllAppConfig(ctx context.Context) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT key, value FROM app_config`)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("чтение строки конфигурации: %w", err)
		}
		values[key] = value
	}
	return values, rows.Err()
}
