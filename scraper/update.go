package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"skillserver/catalog"
)

// sofasCategoryPath путь категории диванов на сайте магазина
const sofasCategoryPath = "/mebel/divany/"

// UpdateResult итог обновления каталога по данным сайта
type UpdateResult struct {
	Fetched int      // карточек собрано с сайта
	Updated int      // записей каталога обновлено
	Unknown []string // артикулы сайта, которых нет в каталоге
}

// RefreshSofas обновляет цены и описания каталога диванов по данным
// сайта. Состав каталога не меняется: алиасы и иерархия бренд-модель
// ведутся вручную, сайт лишь освежает цифры. Незнакомые артикулы
// попадают в отчет, решение о добавлении остается за человеком.
func (s *Scraper) RefreshSofas(ctx context.Context, dataDir string) (*UpdateResult, error) {
	path := filepath.Join(dataDir, "divans.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога диванов: %w", err)
	}
	sofas, err := catalog.ParseCatalog(data, "sofas", true)
	if err != nil {
		return nil, err
	}

	products, err := s.FetchCategory(ctx, sofasCategoryPath)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{Fetched: len(products)}
	for _, product := range products {
		entry := sofas.FindByCode(product.Code)
		if entry == nil {
			result.Unknown = append(result.Unknown, product.Code)
			continue
		}

		changed := false
		if product.Price > 0 && product.Price != entry.Price {
			entry.Price = product.Price
			// Текст цены устарел вместе с ценой, убираем до переимпорта
			entry.PriceText = ""
			changed = true
		}
		if product.Description != "" && product.Description != entry.Description {
			entry.Description = product.Description
			changed = true
		}
		if changed {
			result.Updated++
		}
	}

	if result.Updated > 0 {
		if err := catalog.WriteFile(sofas, path); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Sofa catalog refreshed",
		"fetched", result.Fetched,
		"updated", result.Updated,
		"unknown", len(result.Unknown))
	return result, nil
}
