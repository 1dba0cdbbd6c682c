package database

import (
	"context"
	"fmt"
	"time"
)

// DialogRecord одна реплика пользователя с результатом обработки
type DialogRecord struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"session_id"`
	ApplicationID string    `json:"application_id,omitempty"`
	Utterance     string    `json:"utterance"`
	Normalized    string    `json:"normalized,omitempty"`
	Intent        string    `json:"intent"`
	ResolvedCode  string    `json:"resolved_code,omitempty"`
	ResponseText  string    `json:"response_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// IntentCount количество реплик одного намерения
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

// RecordDialog сохраняет обработанную реплику в журнал
func (db *ServiceDB) RecordDialog(ctx context.Context, rec DialogRecord) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO dialog_log
			(session_id, application_id, utterance, normalized, intent, resolved_code, response_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.ApplicationID, rec.Utterance, rec.Normalized,
		rec.Intent, rec.ResolvedCode, rec.ResponseText)
	if err != nil {
		return fmt.Errorf("запись реплики в журнал: %w", err)
	}
	return nil
}

// GetRecentDialogs возвращает последние реплики журнала, свежие первыми
func (db *ServiceDB) GetRecentDialogs(ctx context.Context, limit int) ([]DialogRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, session_id, application_id, utterance, normalized,
			intent, resolved_code, response_text, created_at
		 FROM dialog_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала диалогов: %w", err)
	}
	defer rows.Close()

	var records []DialogRecord
	for rows.Next() {
		var rec DialogRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.ApplicationID,
			&rec.Utterance, &rec.Normalized, &rec.Intent,
			&rec.ResolvedCode, &rec.ResponseText, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("чтение строки журнала: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetIntentStats возвращает распределение реплик по намерениям,
// от самых частых к редким
func (db *ServiceDB) GetIntentStats(ctx context.Context) ([]IntentCount, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT intent, COUNT(*) FROM dialog_log
		 GROUP BY intent ORDER BY COUNT(*) DESC, intent`)
	if err != nil {
		return nil, fmt.Errorf("статистика намерений: %w", err)
	}
	defer rows.Close()

	var stats []IntentCount
	for rows.Next() {
		var ic IntentCount
		if err := rows.Scan(&ic.Intent, &ic.Count); err != nil {
			return nil, fmt.Errorf("чтение строки статистики: %w", err)
		}
		stats = append(stats, ic)
	}
	return stats, rows.Err()
}

// CountDialogs возвращает общее число реплик в журнале
func (db *ServiceDB) CountDialogs(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dialog_log`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("подсчет реплик: %w", err)
	}
	return count, nil
}
