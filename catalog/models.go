package catalog

// Property одно свойство импортированного товара. Порядок свойств
// сохраняется таким, каким он был в источнике выгрузки.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry запись каталога. Code уникален в пределах своего каталога и не
// зависит от алиасов. Для иерархических каталогов (бренд -> модель)
// заполняются BrandAliases и ModelAliases; плоские каталоги используют
// только Aliases.
type Entry struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand,omitempty"`
	Model        string     `json:"model,omitempty"`
	Price        float64    `json:"price,omitempty"`
	PriceText    string     `json:"price_text,omitempty"`
	Description  string     `json:"description,omitempty"`
	Height       string     `json:"height,omitempty"`
	Firmness     string     `json:"firmness,omitempty"`
	MaxLoad      string     `json:"max_load,omitempty"`
	Warranty     string     `json:"warranty,omitempty"`
	InStock      bool       `json:"in_stock,omitempty"`
	ImageID      string     `json:"image_id,omitempty"`
	URL          string     `json:"url,omitempty"`
	Aliases      []string   `json:"aliases,omitempty"`
	BrandAliases []string   `json:"brand_aliases,omitempty"`
	ModelAliases []string   `json:"model_aliases,omitempty"`
	Properties   []Property `json:"properties,omitempty"`
}

// Catalog неизменяемая таблица записей одной схемы. Порядок Entries —
// это порядок обхода при поиске: при нескольких кандидатах побеждает
// первый, без какого-либо скоринга.
type Catalog struct {
	Name         string  `json:"name"`
	Hierarchical bool    `json:"hierarchical"`
	Entries      []Entry `json:"entries"`
}

// FindByCode возвращает запись с данным каноническим кодом
func (c *Catalog) FindByCode(code string) *Entry {
	cleaned := cleanCode(code)
	for i := range c.Entries {
		if cleanCode(c.Entries[i].Code) == cleaned {
			return &c.Entries[i]
		}
	}
	return nil
}

// EntriesOfBrand возвращает все записи бренда в порядке каталога
func (c *Catalog) EntriesOfBrand(brand string) []*Entry {
	var entries []*Entry
	for i := range c.Entries {
		if c.Entries[i].Brand == brand {
			entries = append(entries, &c.Entries[i])
		}
	}
	return entries
}
