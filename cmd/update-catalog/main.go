// Обновление цен каталога диванов по данным сайта магазина.
//
// Запуск: update-catalog [-data data]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"skillserver/internal/config"
	"skillserver/scraper"
)

func main() {
	dataDir := flag.String("data", config.GetDefaults().DataDir, "каталог данных навыка")
	flag.Parse()

	cfg := config.LoadScraperConfig()
	if err := cfg.Validate(); err != nil {
		slog.Error("Scraper config invalid", "error", err.Error())
		os.Exit(1)
	}

	result, err := scraper.NewScraper(cfg).
		RefreshSofas(context.Background(), *dataDir)
	if err != nil {
		slog.Error("Catalog refresh failed", "error", err.Error())
		os.Exit(1)
	}

	fmt.Printf("Собрано %d карточек, обновлено %d записей\n", result.Fetched, result.Updated)
	for _, code := range result.Unknown {
		fmt.Printf("  незнакомый артикул: %s\n", code)
	}
}
