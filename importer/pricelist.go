// Package importer загрузка каталога товаров из прайс-листа Excel.
// Прайс-лист приходит от товароведов салона: колонки называются по-разному
// от выгрузки к выгрузке, поэтому парсер ищет колонки по ключевым словам
// заголовка, а не по фиксированным индексам.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ArticleRecord одна строка прайс-листа
type ArticleRecord struct {
	Article     string  // Артикул с ценника
	Name        string  // Наименование товара
	Price       float64 // Цена в рублях
	Description string  // Описание, если колонка присутствует
}

// columnIndices индексы найденных колонок; -1 означает, что колонки нет
type columnIndices struct {
	article     int
	name        int
	price       int
	description int
}

// ParsePriceListFile парсит Excel-файл прайс-листа салона
func ParsePriceListFile(filePath string) ([]ArticleRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("открытие прайс-листа: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("в прайс-листе нет листов")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("чтение строк прайс-листа: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("прайс-лист слишком короткий: нужна строка заголовков и хотя бы одна строка данных")
	}

	cols := findColumnIndices(rows[0])
	if cols.article == -1 {
		return nil, fmt.Errorf("в заголовках прайс-листа не найдена колонка артикула")
	}
	if cols.name == -1 {
		return nil, fmt.Errorf("в заголовках прайс-листа не найдена колонка наименования")
	}

	var records []ArticleRecord
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		record := ArticleRecord{
			Article: cellAt(row, cols.article),
			Name:    cellAt(row, cols.name),
		}
		if record.Article == "" || record.Name == "" {
			continue
		}

		if cols.price >= 0 {
			price, err := parsePrice(cellAt(row, cols.price))
			if err != nil {
				return nil, fmt.Errorf("строка %d: %w", rowIdx+1, err)
			}
			record.Price = price
		}
		if cols.description >= 0 {
			record.Description = cellAt(row, cols.description)
		}

		records = append(records, record)
	}

	return records, nil
}

// findColumnIndices определяет индексы колонок по ключевым словам заголовка
func findColumnIndices(headers []string) columnIndices {
	cols := columnIndices{article: -1, name: -1, price: -1, description: -1}

	for i, header := range headers {
		h := strings.TrimSpace(strings.ToLower(header))
		switch {
		case cols.article == -1 && (strings.Contains(h, "артикул") || strings.Contains(h, "код товара")):
			cols.article = i
		case cols.name == -1 && (strings.Contains(h, "наименование") || strings.Contains(h, "название")):
			cols.name = i
		case cols.price == -1 && (strings.Contains(h, "цена") || strings.Contains(h, "стоимость")):
			cols.price = i
		case cols.description == -1 && strings.Contains(h, "описание"):
			cols.description = i
		}
	}
	return cols
}

// parsePrice разбирает цену из ячейки: товароведы пишут и "3 190,50",
// и "3190.50", и просто "3190"
func parsePrice(cell string) (float64, error) {
	cleaned := strings.NewReplacer(" ", "", " ", "", ",", ".", "р.", "", "руб", "").
		Replace(strings.ToLower(strings.TrimSpace(cell)))
	if cleaned == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("нечитаемая цена %q", cell)
	}
	if price < 0 {
		return 0, fmt.Errorf("отрицательная цена %q", cell)
	}
	return price, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
