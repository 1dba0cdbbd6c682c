package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"skillserver/catalog"
	"skillserver/database"
	"skillserver/speech"
)

// importSnapshotKey ключ сводки последнего импорта в app_config
const importSnapshotKey = "articles_import_snapshot"

// ImportResult итог импорта прайс-листа
type ImportResult struct {
	Total     int           `json:"total"`
	Imported  int           `json:"imported"`
	Skipped   []string      `json:"skipped,omitempty"`
	Started   time.Time     `json:"started"`
	Completed time.Time     `json:"completed"`
	Duration  time.Duration `json:"-"`
}

// ArticleImporter собирает каталог артикулов из прайс-листа и пишет его
// на диск. Сервисная база опциональна: с ней импортер сохраняет сводку
// последнего импорта, чтобы ее было видно после перезапуска.
type ArticleImporter struct {
	db     *database.ServiceDB
	logger *slog.Logger
}

// NewArticleImporter создает импортер каталога артикулов
func NewArticleImporter(db *database.ServiceDB) *ArticleImporter {
	return &ArticleImporter{
		db:     db,
		logger: slog.Default().With("component", "article_importer"),
	}
}

// BuildCatalog превращает записи прайс-листа в каталог артикулов.
// Цена проговаривается заранее: озвучка цены на каждом запросе — лишняя
// работа, а прайс-лист меняется редко.
func BuildCatalog(records []ArticleRecord) (*catalog.Catalog, []string) {
	var skipped []string
	entries := make([]catalog.Entry, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, record := range records {
		if seen[record.Article] {
			skipped = append(skipped, fmt.Sprintf("%s: дубликат артикула", record.Article))
			continue
		}
		seen[record.Article] = true

		entry := catalog.Entry{
			Code:        record.Article,
			Name:        record.Name,
			Price:       record.Price,
			Description: record.Description,
		}
		if record.Price > 0 {
			priceText, err := speech.FormatPrice(record.Price, true)
			if err != nil {
				skipped = append(skipped, fmt.Sprintf("%s: %v", record.Article, err))
				continue
			}
			entry.PriceText = priceText
		}

		entries = append(entries, entry)
	}

	return &catalog.Catalog{Name: "articles", Entries: entries}, skipped
}

// ImportFile читает прайс-лист и перезаписывает каталог артикулов в dataDir
func (ai *ArticleImporter) ImportFile(ctx context.Context, priceListPath, dataDir string) (*ImportResult, error) {
	result := &ImportResult{Started: time.Now()}

	records, err := ParsePriceListFile(priceListPath)
	if err != nil {
		return nil, err
	}
	result.Total = len(records)

	built, skipped := BuildCatalog(records)
	result.Imported = len(built.Entries)
	result.Skipped = skipped

	if err := catalog.WriteFile(built, filepath.Join(dataDir, "articles.json")); err != nil {
		return nil, err
	}

	result.Completed = time.Now()
	result.Duration = result.Completed.Sub(result.Started)

	ai.logger.Info("Articles imported",
		"total", result.Total,
		"imported", result.Imported,
		"skipped", len(result.Skipped),
		"duration", result.Duration.String())

	ai.saveSnapshot(ctx, result)
	return result, nil
}

// saveSnapshot сохраняет сводку импорта в сервисную базу; сбой сводки
// импорт не отменяет
func (ai *ArticleImporter) saveSnapshot(ctx context.Context, result *ImportResult) {
	if ai.db == nil {
		return
	}

	snapshot, err := json.Marshal(result)
	if err != nil {
		ai.logger.Warn("Import snapshot marshal failed", "error", err.Error())
		return
	}
	if err := ai.db.SaveAppConfig(ctx, importSnapshotKey, string(snapshot)); err != nil {
		ai.logger.Warn("Import snapshot save failed", "error", err.Error())
	}
}
