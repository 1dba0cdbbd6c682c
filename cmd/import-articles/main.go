// Импорт каталога артикулов из прайс-листа Excel.
//
// Запуск: import-articles -file прайс.xlsx [-data data] [-db skill_service.db]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"skillserver/database"
	"skillserver/importer"
	"skillserver/internal/config"
)

func main() {
	defaults := config.GetDefaults()

	filePath := flag.String("file", "", "путь к прайс-листу Excel")
	dataDir := flag.String("data", defaults.DataDir, "каталог данных навыка")
	dbPath := flag.String("db", defaults.ServiceDatabasePath, "путь к сервисной базе; пустой отключает сводку импорта")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var serviceDB *database.ServiceDB
	if *dbPath != "" {
		db, err := database.NewServiceDB(*dbPath)
		if err != nil {
			slog.Error("Service DB open failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		serviceDB = db
	}

	result, err := importer.NewArticleImporter(serviceDB).
		ImportFile(context.Background(), *filePath, *dataDir)
	if err != nil {
		slog.Error("Import failed", "error", err.Error())
		os.Exit(1)
	}

	fmt.Printf("Импортировано %d из %d записей за %s\n",
		result.Imported, result.Total, result.Duration)
	for _, skipped := range result.Skipped {
		fmt.Printf("  пропущено: %s\n", skipped)
	}
}
