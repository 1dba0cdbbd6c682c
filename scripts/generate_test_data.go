// Генератор тестовых данных: синтетический каталог артикулов и журнал
// диалогов для ручной проверки аналитики и нагрузочных прогонов поиска.
//
// Запуск: go run scripts/generate_test_data.go [каталог_вывода]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"

	"skillserver/catalog"
	"skillserver/database"
	"skillserver/speech"
)

// Размеры синтетических каталогов
var catalogSizes = []struct {
	name string
	size int
}{
	{"100", 100},
	{"1K", 1000},
	{"10K", 10000},
}

const dialogRows = 500

var intents = []string{
	"article_search", "specific_product", "category_info",
	"promotions", "help", "shelf_question", "unknown",
}

var utteranceTemplates = []string{
	"сколько стоит %s",
	"расскажи про %s",
	"покажи %s",
	"есть ли в наличии %s",
}

func main() {
	gofakeit.Seed(0)

	outDir := "tests/fixtures"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	for _, size := range catalogSizes {
		fmt.Printf("Generating %s article catalog...\n", size.name)
		if err := writeArticleCatalog(outDir, size.name, size.size); err != nil {
			log.Fatalf("Failed to generate %s catalog: %v", size.name, err)
		}
	}

	fmt.Printf("Generating dialog journal (%d rows)...\n", dialogRows)
	if err := writeDialogJournal(outDir); err != nil {
		log.Fatalf("Failed to generate dialog journal: %v", err)
	}

	fmt.Println("Done.")
}

// writeArticleCatalog пишет синтетический каталог артикулов заданного
// размера в формате боевого articles.json
func writeArticleCatalog(outDir, name string, size int) error {
	entries := make([]catalog.Entry, 0, size)
	seen := make(map[string]bool, size)

	for len(entries) < size {
		code := strconv.Itoa(gofakeit.Number(1000000, 9999999))
		if seen[code] {
			continue
		}
		seen[code] = true

		price := float64(gofakeit.Number(990, 999990)) / 100
		priceText, err := speech.FormatPrice(price, true)
		if err != nil {
			return err
		}

		entries = append(entries, catalog.Entry{
			Code:        code,
			Name:        fmt.Sprintf("%s %s", gofakeit.ProductName(), gofakeit.Word()),
			Price:       price,
			PriceText:   priceText,
			Description: gofakeit.Sentence(8),
		})
	}

	c := &catalog.Catalog{Name: "articles", Entries: entries}
	return catalog.WriteFile(c, filepath.Join(outDir, fmt.Sprintf("articles_%s.json", name)))
}

// writeDialogJournal заполняет сервисную базу случайными репликами
func writeDialogJournal(outDir string) error {
	db, err := database.NewServiceDB(filepath.Join(outDir, "service_test.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	for i := 0; i < dialogRows; i++ {
		utterance := fmt.Sprintf(
			gofakeit.RandomString(utteranceTemplates), gofakeit.Word())

		rec := database.DialogRecord{
			SessionID: gofakeit.UUID(),
			ApplicationID: gofakeit.RandomString([]string{
				"showroom-sofa-1", "showroom-mattress-1", "showroom-entrance-1", "dev-console",
			}),
			Utterance:    utterance,
			Normalized:   utterance,
			Intent:       gofakeit.RandomString(intents),
			ResponseText: gofakeit.Sentence(10),
		}
		if err := db.RecordDialog(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
