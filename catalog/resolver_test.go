package catalog

import (
	"testing"
)

// sofaFixture уменьшенная копия иерархического каталога диванов
func sofaFixture() *Catalog {
	return &Catalog{
		Name:         "sofas",
		Hierarchical: true,
		Entries: []Entry{
			{
				Code: "9174297", Name: "Диван Аскона Юкки",
				Brand: "аскона", Model: "юкки",
				BrandAliases: []string{"аскона"},
				ModelAliases: []string{"юкки", "юки"},
			},
			{
				Code: "9174305", Name: "Диван Аскона Гизела",
				Brand: "аскона", Model: "гизела",
				BrandAliases: []string{"аскона"},
				ModelAliases: []string{"гизела", "гизелла"},
			},
			{
				Code: "7745018", Name: "Диван Moon Trade Бильбао",
				Brand: "мун трейд", Model: "бильбао",
				BrandAliases: []string{"мун трейд", "мун"},
				ModelAliases: []string{"бильбао", "билбао"},
			},
		},
	}
}

// flatFixture плоский каталог с алиасами без иерархии
func flatFixture() *Catalog {
	return &Catalog{
		Name: "articles",
		Entries: []Entry{
			{Code: "5561234", Name: "Кровать Veluna Frame 160",
				Aliases: []string{"кровать велуна", "фрейм"}},
			{Code: "1082620", Name: "Подушка Lagoma Soft",
				Aliases: []string{"подушка лагома"}},
		},
	}
}

func TestResolveByCode(t *testing.T) {
	c := sofaFixture()

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"голый код", "9174297", "9174297"},
		{"код с пробелами и точками", "917 42.97", "9174297"},
		{"код внутри фразы", "диван 9174297 сколько стоит", "9174297"},
		{"код в верхнем регистре с дефисом", "9174-305", "9174305"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.query, c)
			if r.Kind != ResultExact {
				t.Fatalf("Resolve(%q): kind = %v, ожидался ResultExact", tt.query, r.Kind)
			}
			if r.Entry.Code != tt.code {
				t.Errorf("Resolve(%q): код %q, ожидался %q", tt.query, r.Entry.Code, tt.code)
			}
		})
	}
}

func TestResolveBySpokenCode(t *testing.T) {
	c := sofaFixture()

	t.Run("полный код словами", func(t *testing.T) {
		r := Resolve("девять один семь четыре два девять семь", c)
		if r.Kind != ResultExact || r.Entry.Code != "9174297" {
			t.Fatalf("kind = %v, entry = %+v", r.Kind, r.Entry)
		}
	})

	t.Run("префикс кода словами", func(t *testing.T) {
		// 91742 — префикс только у 9174297, первый по каталогу
		r := Resolve("девять один семь четыре два", c)
		if r.Kind != ResultExact || r.Entry.Code != "9174297" {
			t.Fatalf("kind = %v, entry = %+v", r.Kind, r.Entry)
		}
	})

	t.Run("три цифры словами не считаются кодом", func(t *testing.T) {
		r := Resolve("девять один семь", c)
		if r.Kind != ResultNotFound {
			t.Fatalf("kind = %v, ожидался ResultNotFound", r.Kind)
		}
	})
}

func TestResolveByAlias(t *testing.T) {
	c := flatFixture()

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"алиас внутри запроса", "покажи кровать велуна с ящиком", "5561234"},
		{"обрезанный запрос внутри алиаса", "подушка лаго", "1082620"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.query, c)
			if r.Kind != ResultExact {
				t.Fatalf("Resolve(%q): kind = %v", tt.query, r.Kind)
			}
			if r.Entry.Code != tt.code {
				t.Errorf("Resolve(%q): код %q, ожидался %q", tt.query, r.Entry.Code, tt.code)
			}
		})
	}

	t.Run("короткий обрывок не совпадает через обратное вхождение", func(t *testing.T) {
		if r := Resolve("фре", c); r.Kind != ResultNotFound {
			t.Errorf("kind = %v, ожидался ResultNotFound", r.Kind)
		}
	})
}

func TestResolveBrandModel(t *testing.T) {
	c := sofaFixture()

	t.Run("бренд с моделью", func(t *testing.T) {
		r := Resolve("аскона юкки", c)
		if r.Kind != ResultExact || r.Entry.Code != "9174297" {
			t.Fatalf("kind = %v, entry = %+v", r.Kind, r.Entry)
		}
	})

	t.Run("бренд без модели дает неоднозначность", func(t *testing.T) {
		r := Resolve("аскона", c)
		if r.Kind != ResultAmbiguous {
			t.Fatalf("kind = %v, ожидался ResultAmbiguous", r.Kind)
		}
		if r.Brand != "аскона" {
			t.Errorf("brand = %q", r.Brand)
		}
		if len(r.Candidates) != 2 {
			t.Errorf("кандидатов %d, ожидалось 2", len(r.Candidates))
		}
	})

	t.Run("модель без бренда", func(t *testing.T) {
		r := Resolve("бильбао", c)
		if r.Kind != ResultExact || r.Entry.Code != "7745018" {
			t.Fatalf("kind = %v, entry = %+v", r.Kind, r.Entry)
		}
	})

	t.Run("короткий алиас бренда", func(t *testing.T) {
		r := Resolve("мун", c)
		if r.Kind != ResultAmbiguous || r.Brand != "мун трейд" {
			t.Fatalf("kind = %v, brand = %q", r.Kind, r.Brand)
		}
	})
}

func TestResolveNotFound(t *testing.T) {
	for _, query := range []string{"", "   ", "шкаф купе", "стол обеденный"} {
		if r := Resolve(query, sofaFixture()); r.Kind != ResultNotFound {
			t.Errorf("Resolve(%q): kind = %v, ожидался ResultNotFound", query, r.Kind)
		}
	}

	if r := Resolve("юкки", nil); r.Kind != ResultNotFound {
		t.Errorf("nil каталог: kind = %v", r.Kind)
	}
	empty := &Catalog{Name: "empty", Hierarchical: true}
	if r := Resolve("юкки", empty); r.Kind != ResultNotFound {
		t.Errorf("пустой каталог: kind = %v", r.Kind)
	}
}

// TestResolveSelfConsistency каждый код боевых каталогов находит свою запись
func TestResolveSelfConsistency(t *testing.T) {
	store := NewStore("../data")

	for _, c := range []*Catalog{store.Sofas, store.Mattresses, store.Articles} {
		if len(c.Entries) == 0 {
			t.Fatalf("каталог %s пуст — файлы данных не загрузились", c.Name)
		}
		for i := range c.Entries {
			entry := &c.Entries[i]
			r := Resolve(entry.Code, c)
			if r.Kind != ResultExact {
				t.Errorf("%s: Resolve(%q): kind = %v", c.Name, entry.Code, r.Kind)
				continue
			}
			if r.Entry.Code != entry.Code {
				t.Errorf("%s: Resolve(%q) нашел %q", c.Name, entry.Code, r.Entry.Code)
			}
		}
	}
}

// TestResolveAliasCoverage каждый алиас модели в одиночку дает точный
// результат, и именно свою запись
func TestResolveAliasCoverage(t *testing.T) {
	store := NewStore("../data")

	for _, c := range []*Catalog{store.Sofas, store.Mattresses} {
		for i := range c.Entries {
			entry := &c.Entries[i]
			for _, alias := range entry.ModelAliases {
				r := Resolve(alias, c)
				if r.Kind == ResultAmbiguous {
					t.Errorf("%s: алиас %q дал неоднозначность", c.Name, alias)
					continue
				}
				if r.Kind != ResultExact {
					t.Errorf("%s: алиас %q не нашелся", c.Name, alias)
					continue
				}
				if r.Entry.Code != entry.Code {
					t.Errorf("%s: алиас %q нашел %q вместо %q",
						c.Name, alias, r.Entry.Code, entry.Code)
				}
			}
		}
	}
}

// TestResolveBrandDisambiguation каждый алиас бренда в одиночку дает
// неоднозначность со всеми записями этого бренда
func TestResolveBrandDisambiguation(t *testing.T) {
	store := NewStore("../data")

	for _, c := range []*Catalog{store.Sofas, store.Mattresses} {
		for i := range c.Entries {
			entry := &c.Entries[i]
			for _, alias := range entry.BrandAliases {
				r := Resolve(alias, c)
				if r.Kind != ResultAmbiguous {
					t.Errorf("%s: алиас бренда %q: kind = %v", c.Name, alias, r.Kind)
					continue
				}
				if r.Brand != entry.Brand {
					t.Errorf("%s: алиас %q нашел бренд %q вместо %q",
						c.Name, alias, r.Brand, entry.Brand)
				}
				want := len(c.EntriesOfBrand(entry.Brand))
				if len(r.Candidates) != want {
					t.Errorf("%s: бренд %q: кандидатов %d, ожидалось %d",
						c.Name, entry.Brand, len(r.Candidates), want)
				}
			}
		}
	}
}

func TestCleanCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9174297", "9174297"},
		{"917 42.97", "9174297"},
		{"VELUNA-LAOMA", "velunalaoma"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanCode(tt.in); got != tt.want {
			t.Errorf("cleanCode(%q) = %q, ожидалось %q", tt.in, got, tt.want)
		}
	}
}
