package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteFile атомарно пишет каталог на диск: сначала во временный файл,
// затем переименование, чтобы читатель не увидел полузаписанный JSON
func WriteFile(c *Catalog, path string) error {
	data, err := json.MarshalIndent(catalogFile{Entries: c.Entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация каталога %s: %w", c.Name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("запись каталога %s: %w", c.Name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("замена каталога %s: %w", c.Name, err)
	}
	return nil
}
