package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Имена файлов каталогов внутри каталога данных
const (
	sofasFile      = "divans.json"
	mattressesFile = "matrasy.json"
	articlesFile   = "articles.json"
	shelvesFile    = "shelves.json"
)

// Store все каталоги процесса. Создается один раз при старте и передается
// зависимым компонентам явно; после создания каталоги только читаются,
// поэтому Store безопасен для любого числа одновременных читателей.
type Store struct {
	Sofas      *Catalog
	Mattresses *Catalog
	Articles   *Catalog
	Shelves    *ShelfInventory

	logger *slog.Logger
}

// NewStore загружает все каталоги из dataDir. Испорченный или
// отсутствующий файл не валит процесс: соответствующий каталог остается
// пустым, все запросы к нему будут отвечать "не найдено", а в лог уходит
// предупреждение. Доступность диалога важнее полноты справочника.
func NewStore(dataDir string) *Store {
	logger := slog.Default().With("component", "catalog_store")

	s := &Store{logger: logger}
	s.Sofas = s.loadCatalog(dataDir, sofasFile, "sofas", true)
	s.Mattresses = s.loadCatalog(dataDir, mattressesFile, "mattresses", true)
	s.Articles = s.loadCatalog(dataDir, articlesFile, "articles", false)
	s.Shelves = s.loadShelves(dataDir)

	logger.Info("Catalogs loaded",
		"sofas", len(s.Sofas.Entries),
		"mattresses", len(s.Mattresses.Entries),
		"articles", len(s.Articles.Entries),
		"racks", len(s.Shelves.Racks))

	return s
}

// catalogFile формат файла каталога на диске
type catalogFile struct {
	Entries []Entry `json:"entries"`
}

// loadCatalog читает один каталог; при любой ошибке возвращает пустой
func (s *Store) loadCatalog(dataDir, fileName, name string, hierarchical bool) *Catalog {
	empty := &Catalog{Name: name, Hierarchical: hierarchical}

	data, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err != nil {
		s.logger.Warn("Catalog source unavailable, catalog stays empty",
			"catalog", name, "file", fileName, "error", err.Error())
		return empty
	}

	parsed, err := ParseCatalog(data, name, hierarchical)
	if err != nil {
		s.logger.Warn("Catalog source corrupted, catalog stays empty",
			"catalog", name, "file", fileName, "error", err.Error())
		return empty
	}
	return parsed
}

// ParseCatalog разбирает содержимое файла каталога. Чистая функция: тот же
// вход дает ту же таблицу.
func ParseCatalog(data []byte, name string, hierarchical bool) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("разбор каталога %s: %w", name, err)
	}

	c := &Catalog{Name: name, Hierarchical: hierarchical, Entries: file.Entries}
	if err := validateCatalog(c); err != nil {
		return nil, err
	}
	return c, nil
}

// validateCatalog проверяет инварианты таблицы: код каждой записи уникален
func validateCatalog(c *Catalog) error {
	seen := make(map[string]bool, len(c.Entries))
	for i := range c.Entries {
		code := cleanCode(c.Entries[i].Code)
		if code == "" {
			return fmt.Errorf("каталог %s: запись %d без кода", c.Name, i)
		}
		if seen[code] {
			return fmt.Errorf("каталог %s: дубликат кода %q", c.Name, c.Entries[i].Code)
		}
		seen[code] = true
	}
	return nil
}
