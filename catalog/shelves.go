package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ShelfProduct товар, стоящий на конкретной полке стеллажа
type ShelfProduct struct {
	Article      string  `json:"article"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand,omitempty"`
	Price        float64 `json:"price"`
	Description  string  `json:"description,omitempty"`
	Availability string  `json:"availability,omitempty"`
}

// ShelfLevel одна полка стеллажа
type ShelfLevel struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Products []ShelfProduct `json:"products"`
}

// Rack стеллаж торгового зала с пронумерованными полками
type Rack struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Levels      []ShelfLevel `json:"levels"`
}

// ShelfInventory инвентарь стеллажей зала. Как и каталоги, загружается
// один раз и дальше только читается.
type ShelfInventory struct {
	Racks []Rack `json:"racks"`
}

// ShelfLocation место товара: стеллаж и полка
type ShelfLocation struct {
	Product   *ShelfProduct
	RackID    string
	RackName  string
	LevelID   string
	LevelName string
}

// loadShelves читает инвентарь стеллажей; при ошибке возвращает пустой
func (s *Store) loadShelves(dataDir string) *ShelfInventory {
	data, err := os.ReadFile(filepath.Join(dataDir, shelvesFile))
	if err != nil {
		s.logger.Warn("Shelf inventory unavailable",
			"file", shelvesFile, "error", err.Error())
		return &ShelfInventory{}
	}

	inv, err := ParseShelves(data)
	if err != nil {
		s.logger.Warn("Shelf inventory corrupted",
			"file", shelvesFile, "error", err.Error())
		return &ShelfInventory{}
	}
	return inv
}

// ParseShelves разбирает файл инвентаря стеллажей
func ParseShelves(data []byte) (*ShelfInventory, error) {
	var inv ShelfInventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("разбор инвентаря стеллажей: %w", err)
	}
	return &inv, nil
}

// Rack возвращает стеллаж по идентификатору
func (inv *ShelfInventory) Rack(id string) *Rack {
	for i := range inv.Racks {
		if inv.Racks[i].ID == id {
			return &inv.Racks[i]
		}
	}
	return nil
}

// Level возвращает полку стеллажа
func (r *Rack) Level(id string) *ShelfLevel {
	for i := range r.Levels {
		if r.Levels[i].ID == id {
			return &r.Levels[i]
		}
	}
	return nil
}

// FindByArticle ищет товар по артикулу на всех стеллажах; порядок обхода —
// порядок инвентаря, первый найденный побеждает
func (inv *ShelfInventory) FindByArticle(article string) *ShelfLocation {
	cleaned := cleanCode(article)
	for ri := range inv.Racks {
		rack := &inv.Racks[ri]
		for li := range rack.Levels {
			level := &rack.Levels[li]
			for pi := range level.Products {
				if cleanCode(level.Products[pi].Article) == cleaned {
					return &ShelfLocation{
						Product:   &level.Products[pi],
						RackID:    rack.ID,
						RackName:  rack.Name,
						LevelID:   level.ID,
						LevelName: level.Name,
					}
				}
			}
		}
	}
	return nil
}
