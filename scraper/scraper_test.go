package scraper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"skillserver/catalog"
	"skillserver/internal/config"
)

const listingHTML = `
<html><body>
  <div class="catalog">
    <div class="card" data-article="9174297">
      <a href="/mebel/divany/askona-yukki">
        <span class="product-title">Диван Аскона Юкки</span>
      </a>
      <span class="product-price">3 290,50 р.</span>
      <p class="product-description">Прямой диван с механизмом еврокнижка.</p>
    </div>
    <div class="card" data-article="8231144">
      <a href="/mebel/divany/rivalli-kyanti">
        <span class="product-title">Диван Rivalli Кьянти</span>
      </a>
      <span class="product-price">2790 р.</span>
    </div>
    <div class="card" data-article="">
      <span class="product-title">Карточка без артикула</span>
    </div>
  </div>
</body></html>`

func TestParseProducts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		t.Fatalf("NewDocumentFromReader: %v", err)
	}

	products := ParseProducts(doc)
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	first := products[0]
	if first.Code != "9174297" {
		t.Errorf("Code = %q, want %q", first.Code, "9174297")
	}
	if first.Name != "Диван Аскона Юкки" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Price != 3290.50 {
		t.Errorf("Price = %v, want %v", first.Price, 3290.50)
	}
	if first.Description != "Прямой диван с механизмом еврокнижка." {
		t.Errorf("Description = %q", first.Description)
	}
	if first.URL != "/mebel/divany/askona-yukki" {
		t.Errorf("URL = %q", first.URL)
	}
}

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"3 190,50 р.", 3190.50},
		{"2790 р.", 2790},
		{"от 1 082 руб.", 1082},
		{"цена по запросу", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parsePriceText(tt.text); got != tt.want {
			t.Errorf("parsePriceText(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func testScraperConfig(baseURL string) *config.ScraperConfig {
	return &config.ScraperConfig{
		BaseURL:         baseURL,
		Timeout:         5 * time.Second,
		RateLimitPerSec: 100,
		MaxPages:        5,
	}
}

func TestFetchCategory(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.String())

		// Первая страница с товарами, вторая пустая — обход должен
		// остановиться сам
		if r.URL.Query().Get("page") == "" {
			fmt.Fprint(w, listingHTML)
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	s := NewScraper(testScraperConfig(srv.URL))

	products, err := s.FetchCategory(t.Context(), "/mebel/divany/")
	if err != nil {
		t.Fatalf("FetchCategory() error = %v", err)
	}
	if len(products) != 2 {
		t.Errorf("got %d products, want 2", len(products))
	}
	if len(requests) != 2 {
		t.Errorf("got %d requests, want 2 (first page and empty second)", len(requests))
	}
}

func TestFetchCategory_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewScraper(testScraperConfig(srv.URL))

	if _, err := s.FetchCategory(t.Context(), "/mebel/divany/"); err == nil {
		t.Error("FetchCategory() should fail on server error")
	}
}

func TestRefreshSofas(t *testing.T) {
	dataDir := t.TempDir()
	seed := map[string]any{
		"entries": []map[string]any{
			{
				"code": "9174297", "name": "Диван Аскона Юкки",
				"brand": "аскона", "model": "юкки",
				"price":      3190.0,
				"price_text": "три тысячи сто девяносто рублей",
			},
			{
				"code": "7745018", "name": "Диван Мун Трейд Бильбао",
				"brand": "мун трейд", "model": "бильбао",
				"price": 4390.0,
			},
		},
	}
	data, err := json.Marshal(seed)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "divans.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "" {
			fmt.Fprint(w, listingHTML)
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	s := NewScraper(testScraperConfig(srv.URL))

	result, err := s.RefreshSofas(t.Context(), dataDir)
	if err != nil {
		t.Fatalf("RefreshSofas() error = %v", err)
	}

	if result.Fetched != 2 {
		t.Errorf("Fetched = %d, want 2", result.Fetched)
	}
	if result.Updated != 1 {
		t.Errorf("Updated = %d, want 1", result.Updated)
	}
	// Артикул 8231144 с сайта в каталоге отсутствует
	if len(result.Unknown) != 1 || result.Unknown[0] != "8231144" {
		t.Errorf("Unknown = %v, want [8231144]", result.Unknown)
	}

	// Цена обновлена, устаревший текст цены сброшен
	updated, err := os.ReadFile(filepath.Join(dataDir, "divans.json"))
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := catalog.ParseCatalog(updated, "sofas", true)
	if err != nil {
		t.Fatal(err)
	}

	entry := parsed.FindByCode("9174297")
	if entry == nil {
		t.Fatal("entry 9174297 disappeared after refresh")
	}
	if entry.Price != 3290.50 {
		t.Errorf("Price = %v, want %v", entry.Price, 3290.50)
	}
	if entry.PriceText != "" {
		t.Errorf("PriceText = %q, want empty after price change", entry.PriceText)
	}
	if entry.Description != "Прямой диван с механизмом еврокнижка." {
		t.Errorf("Description = %q", entry.Description)
	}
}
