// Package scraper обход сайта магазина для обновления каталога диванов.
// Обход вежливый: запросы к сайту идут через ограничитель скорости, а
// число страниц категории ограничено сверху, чтобы сбой пагинации не
// превратился в бесконечный цикл.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"skillserver/internal/config"
)

// userAgent представляется честно: сайту виден служебный обход, а не
// поддельный браузер
const userAgent = "showroom-skill-catalog-bot/1.0"

var priceDigitsRe = regexp.MustCompile(`[\d\s]+(?:[.,]\d+)?`)

// Product карточка товара со страницы категории
type Product struct {
	Code        string
	Name        string
	Price       float64
	Description string
	URL         string
}

// Scraper обходчик сайта магазина
type Scraper struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     *config.ScraperConfig
	logger  *slog.Logger
}

// NewScraper создает обходчик с настройками из конфигурации
func NewScraper(cfg *config.ScraperConfig) *Scraper {
	perSec := cfg.RateLimitPerSec
	if perSec <= 0 {
		perSec = 1
	}

	return &Scraper{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
		cfg:     cfg,
		logger:  slog.Default().With("component", "catalog_scraper"),
	}
}

// FetchCategory обходит страницы категории и собирает карточки товаров.
// Обход останавливается на пустой странице или по достижении потолка
// страниц из конфигурации.
func (s *Scraper) FetchCategory(ctx context.Context, categoryPath string) ([]Product, error) {
	maxPages := s.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var products []Product
	for page := 1; page <= maxPages; page++ {
		pageURL, err := s.pageURL(categoryPath, page)
		if err != nil {
			return nil, err
		}

		pageProducts, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("страница %d категории %s: %w", page, categoryPath, err)
		}
		if len(pageProducts) == 0 {
			break
		}

		products = append(products, pageProducts...)
		s.logger.Debug("Page fetched",
			"category", categoryPath, "page", page, "products", len(pageProducts))
	}

	s.logger.Info("Category fetched", "category", categoryPath, "products", len(products))
	return products, nil
}

// pageURL собирает адрес страницы категории с номером страницы
func (s *Scraper) pageURL(categoryPath string, page int) (string, error) {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("базовый адрес магазина: %w", err)
	}

	u, err := base.Parse(categoryPath)
	if err != nil {
		return "", fmt.Errorf("адрес категории %q: %w", categoryPath, err)
	}
	if page > 1 {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// fetchPage скачивает и разбирает одну страницу категории
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) ([]Product, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("неожиданный статус %d", resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("разбор HTML: %w", err)
	}
	return ParseProducts(goquery.NewDocumentFromNode(root)), nil
}

// ParseProducts извлекает карточки товаров из документа страницы.
// Карточка без артикула или названия выбрасывается: без артикула товар
// не сопоставить с каталогом.
func ParseProducts(doc *goquery.Document) []Product {
	var products []Product

	doc.Find("[data-article]").Each(func(_ int, card *goquery.Selection) {
		code, _ := card.Attr("data-article")
		code = strings.TrimSpace(code)

		product := Product{
			Code:        code,
			Name:        strings.TrimSpace(card.Find(".product-title").First().Text()),
			Description: strings.TrimSpace(card.Find(".product-description").First().Text()),
			Price:       parsePriceText(card.Find(".product-price").First().Text()),
		}
		if href, ok := card.Find("a").First().Attr("href"); ok {
			product.URL = strings.TrimSpace(href)
		}

		if product.Code == "" || product.Name == "" {
			return
		}
		products = append(products, product)
	})

	return products
}

// parsePriceText выдергивает число из текста цены вида "3 190,50 р."
func parsePriceText(text string) float64 {
	match := priceDigitsRe.FindString(text)
	if match == "" {
		return 0
	}

	cleaned := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(match)
	price, err := strconv.ParseFloat(strings.Trim(cleaned, "."), 64)
	if err != nil {
		return 0
	}
	return price
}
