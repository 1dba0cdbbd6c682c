package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillserver/catalog"
	"skillserver/database"
	"skillserver/internal/config"
)

// testStore каталоги для тестов диалога
func testStore() *catalog.Store {
	return &catalog.Store{
		Sofas: &catalog.Catalog{
			Name:         "sofas",
			Hierarchical: true,
			Entries: []catalog.Entry{
				{
					Code: "9174297", Name: "Диван Аскона Юкки",
					Brand: "аскона", Model: "юкки",
					Price:        3190,
					Description:  "Прямой диван с механизмом еврокнижка.",
					BrandAliases: []string{"аскона"},
					ModelAliases: []string{"юкки", "юки"},
				},
				{
					Code: "9174305", Name: "Диван Аскона Гизела",
					Brand: "аскона", Model: "гизела",
					Price:        3590,
					BrandAliases: []string{"аскона"},
					ModelAliases: []string{"гизела"},
				},
			},
		},
		Mattresses: &catalog.Catalog{
			Name:         "mattresses",
			Hierarchical: true,
			Entries: []catalog.Entry{
				{
					Code: "lagoma-lund", Name: "Матрас Lagoma Lund",
					Brand: "лагома", Model: "лунд",
					Price:        1890,
					Height:       "19 см",
					Firmness:     "жесткая",
					InStock:      true,
					BrandAliases: []string{"лагома"},
					ModelAliases: []string{"лунд", "ланд"},
				},
			},
		},
		Articles: &catalog.Catalog{
			Name: "articles",
			Entries: []catalog.Entry{
				{
					Code: "9174297", Name: "Диван Аскона Юкки",
					PriceText:   "три тысячи сто девяносто рублей",
					Description: "Прямой диван с механизмом еврокнижка.",
					Properties: []catalog.Property{
						{Key: "Гарантия", Value: "3 года"},
					},
				},
			},
		},
		Shelves: &catalog.ShelfInventory{
			Racks: []catalog.Rack{
				{
					ID: "1", Name: "Стеллаж 1", Description: "Диваны",
					Levels: []catalog.ShelfLevel{
						{ID: "1", Name: "Верхняя полка", Products: []catalog.ShelfProduct{
							{Article: "9174297", Name: "Диван Аскона Юкки", Price: 3190, Availability: "в наличии"},
						}},
						{ID: "2", Name: "Средняя полка", Products: []catalog.ShelfProduct{
							{Article: "8231144", Name: "Диван Rivalli Кьянти", Price: 2790},
						}},
					},
				},
			},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	serviceDB, err := database.NewServiceDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { serviceDB.Close() })

	s := NewServer(config.GetDefaults(), testStore(), serviceDB)
	// детерминированный выбор фраз из пулов
	s.pick = func(n int) int { return 0 }
	return s
}

// postWebhook отправляет реплику и разбирает ответ навыка
func postWebhook(t *testing.T, s *Server, req WebhookRequest) WebhookResponse {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func utterance(command string, messageID int) WebhookRequest {
	return WebhookRequest{
		Version: "1.0",
		Session: Session{
			MessageID:   messageID,
			SessionID:   "test-session",
			Application: Application{ApplicationID: "dev-console"},
		},
		Request: UserRequest{Command: command, Type: "SimpleUtterance"},
	}
}

func TestWebhookGreetsNewSession(t *testing.T) {
	s := newTestServer(t)

	req := utterance("", 0)
	req.Session.New = true

	resp := postWebhook(t, s, req)
	assert.Equal(t, greetings[0], resp.Response.Text)
	assert.False(t, resp.Response.EndSession)
	assert.Equal(t, "1.0", resp.Version)
}

func TestWebhookZoneGreeting(t *testing.T) {
	s := newTestServer(t)

	req := utterance("", 0)
	req.Session.New = true
	req.Session.Application.ApplicationID = "showroom-mattress-1"

	resp := postWebhook(t, s, req)
	assert.Contains(t, resp.Response.Text, "зоне матрасов")
}

func TestWebhookArticleSearch(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("расскажи про 9174297", 1))
	text := resp.Response.Text

	assert.Contains(t, text, "Диван Аскона Юкки")
	assert.Contains(t, text, "три тысячи сто девяносто рублей")
	assert.Contains(t, text, "Гарантия: 3 года")
	// товар найден на стеллаже
	assert.Contains(t, text, "Стеллаж 1")

	require.NotNil(t, resp.Response.Card)
	assert.Equal(t, "Диван Аскона Юкки", resp.Response.Card.Title)
}

func TestWebhookSpokenDigitsArticle(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("девять один семь четыре два девять семь", 1))
	assert.Contains(t, resp.Response.Text, "Диван Аскона Юкки")
}

func TestWebhookSpecificProduct(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("сколько стоит матрас лагома лунд", 1))
	text := resp.Response.Text

	assert.Contains(t, text, "Матрас Lagoma Lund")
	assert.Contains(t, text, "одна тысяча восемьсот девяносто рублей")

	// Найденный товар сопровождается карточкой
	card := resp.Response.Card
	require.NotNil(t, card)
	assert.Equal(t, "BigImage", card.Type)
	assert.Equal(t, "Матрас Lagoma Lund", card.Title)
	assert.Equal(t, defaultProductImageID, card.ImageID)
}

func TestWebhookBrandDisambiguation(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("расскажи про диван аскона", 1))
	text := resp.Response.Text

	assert.Contains(t, text, "аскона")
	assert.Contains(t, text, "юкки")
	assert.Contains(t, text, "гизела")
	assert.Contains(t, text, "Какая вас интересует?")
	// без конкретной модели карточки нет
	assert.Nil(t, resp.Response.Card)
}

func TestWebhookDetailedInfo(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("характеристики матраса лунд", 1))
	text := resp.Response.Text

	assert.Contains(t, text, "Высота: 19 см")
	assert.Contains(t, text, "Жесткость: жесткая")
	assert.Contains(t, text, "есть в наличии")
}

func TestWebhookShelfQuestion(t *testing.T) {
	s := newTestServer(t)

	t.Run("конкретная полка", func(t *testing.T) {
		resp := postWebhook(t, s, utterance("что стоит на стеллаже один полка два", 1))
		assert.Contains(t, resp.Response.Text, "Диван Rivalli Кьянти")
	})

	t.Run("произнесенные номера", func(t *testing.T) {
		resp := postWebhook(t, s, utterance("что на стеллаже 1 полке 1", 1))
		assert.Contains(t, resp.Response.Text, "Диван Аскона Юкки")
	})

	t.Run("без номеров перечисляются стеллажи", func(t *testing.T) {
		resp := postWebhook(t, s, utterance("что стоит на полках", 1))
		assert.Contains(t, resp.Response.Text, "Стеллаж 1")
	})

	t.Run("несуществующий стеллаж", func(t *testing.T) {
		resp := postWebhook(t, s, utterance("что на стеллаже 9", 1))
		assert.Contains(t, resp.Response.Text, "Стеллажа с номером 9 в зале нет")
	})
}

func TestWebhookPromotionsAndHelp(t *testing.T) {
	s := newTestServer(t)

	// Неизвестное устройство получает общий текст об акциях
	resp := postWebhook(t, s, utterance("какие есть акции", 1))
	assert.Equal(t, promotionsText, resp.Response.Text)

	resp = postWebhook(t, s, utterance("помощь", 1))
	assert.Equal(t, helpText, resp.Response.Text)
}

func TestWebhookZonePromotions(t *testing.T) {
	s := newTestServer(t)

	sofaReq := utterance("какие есть акции", 1)
	sofaReq.Session.Application.ApplicationID = "showroom-sofa-1"
	sofaResp := postWebhook(t, s, sofaReq)

	mattressReq := utterance("какие есть акции", 1)
	mattressReq.Session.Application.ApplicationID = "showroom-mattress-1"
	mattressResp := postWebhook(t, s, mattressReq)

	// В каждой зоне свои акции
	assert.Contains(t, sofaResp.Response.Text, "угловые")
	assert.Contains(t, mattressResp.Response.Text, "Lagoma")
	assert.NotEqual(t, sofaResp.Response.Text, mattressResp.Response.Text)
	assert.NotEqual(t, promotionsText, sofaResp.Response.Text)
}

func TestWebhookGoodbyeEndsSession(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("спасибо до свидания", 1))
	assert.Equal(t, goodbyeText, resp.Response.Text)
	assert.True(t, resp.Response.EndSession)
}

func TestWebhookUnknownSuggestsButtons(t *testing.T) {
	s := newTestServer(t)

	resp := postWebhook(t, s, utterance("бурый медведь", 1))
	assert.Equal(t, unknownPhrases[0], resp.Response.Text)
	require.Len(t, resp.Response.Buttons, 3)
	assert.Equal(t, "Помощь", resp.Response.Buttons[0].Title)
}

func TestWebhookDeviceID(t *testing.T) {
	s := newTestServer(t)

	req := utterance("какой у тебя айди", 1)
	req.Session.Application.ApplicationID = "showroom-sofa-1"

	resp := postWebhook(t, s, req)
	assert.Contains(t, resp.Response.Text, "showroom-sofa-1")
	assert.Contains(t, resp.Response.Text, "зоне")
}

func TestWebhookReminderCoinFlip(t *testing.T) {
	s := newTestServer(t)

	// Монетка выпала подсказкой: pick(2) отвечает 1, выбор фразы из
	// пула — нулем
	s.pick = func(n int) int {
		if n == 2 {
			return 1
		}
		return 0
	}
	resp := postWebhook(t, s, utterance("помощь", 1))
	assert.True(t, strings.HasSuffix(resp.Response.Text, reminders[0]),
		"text: %s", resp.Response.Text)

	// Монетка выпала без подсказки
	s.pick = func(n int) int { return 0 }
	resp = postWebhook(t, s, utterance("помощь", 1))
	assert.Equal(t, helpText, resp.Response.Text)
}

func TestWebhookRejectsBadRequests(t *testing.T) {
	s := newTestServer(t)

	t.Run("битый JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{broken"))
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("без сессии", func(t *testing.T) {
		body, _ := json.Marshal(WebhookRequest{Version: "1.0"})
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
