package importer

import (
	"os"
	"path/filepath"
	"testing"

	"skillserver/catalog"
	"skillserver/database"
)

func TestBuildCatalog(t *testing.T) {
	records := []ArticleRecord{
		{Article: "9174297", Name: "Диван Аскона Юкки", Price: 3190, Description: "Прямой диван"},
		{Article: "1082620", Name: "Подушка Lagoma Soft"},
		{Article: "9174297", Name: "Дубликат"},
	}

	built, skipped := BuildCatalog(records)

	if len(built.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(built.Entries))
	}
	if len(skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(skipped))
	}

	first := built.Entries[0]
	if first.Code != "9174297" {
		t.Errorf("Code = %q, want %q", first.Code, "9174297")
	}
	if first.PriceText != "три тысячи сто девяносто рублей" {
		t.Errorf("PriceText = %q", first.PriceText)
	}

	// Товар без цены остается без текста цены
	if built.Entries[1].PriceText != "" {
		t.Errorf("PriceText for free-form entry = %q, want empty", built.Entries[1].PriceText)
	}
}

func TestImportFile(t *testing.T) {
	priceList := writePriceList(t, [][]any{
		{"Артикул", "Наименование", "Цена"},
		{"9174297", "Диван Аскона Юкки", "3190"},
		{"1082620", "Подушка Lagoma Soft", "1082,62"},
	})

	db, err := database.NewServiceDB(":memory:")
	if err != nil {
		t.Fatalf("NewServiceDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dataDir := t.TempDir()
	importer := NewArticleImporter(db)

	result, err := importer.ImportFile(t.Context(), priceList, dataDir)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}

	// Записанный файл читается загрузчиком каталогов
	data, err := os.ReadFile(filepath.Join(dataDir, "articles.json"))
	if err != nil {
		t.Fatalf("read articles.json: %v", err)
	}
	parsed, err := catalog.ParseCatalog(data, "articles", false)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(parsed.Entries))
	}
	if parsed.Entries[1].PriceText != "одна тысяча восемьдесят три рубля" {
		t.Errorf("PriceText = %q", parsed.Entries[1].PriceText)
	}

	// Сводка импорта сохранена в сервисной базе
	snapshot, ok, err := db.GetAppConfig(t.Context(), importSnapshotKey)
	if err != nil || !ok {
		t.Fatalf("GetAppConfig: ok=%v, err=%v", ok, err)
	}
	if snapshot == "" {
		t.Error("import snapshot should not be empty")
	}
}
