// Package classification определяет намерение пользователя по реплике.
// Классификатор лексический: упорядоченный список правил, каждое правило
// ищет свои ключевые слова в нормализованной реплике, первое совпавшее
// побеждает. Никакого машинного обучения — порядок правил и есть вся
// модель приоритетов.
package classification

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"skillserver/normalization"
)

// Intent метка намерения пользователя
type Intent string

const (
	IntentShowDeviceID    Intent = "show_device_id"
	IntentHelp            Intent = "help"
	IntentShelfQuestion   Intent = "shelf_question"
	IntentUserGreeting    Intent = "user_greeting"
	IntentArticleSearch   Intent = "article_search"
	IntentSpecificProduct Intent = "specific_product"
	IntentDetailedInfo    Intent = "detailed_info"
	IntentPromotions      Intent = "promotions"
	IntentConsultation    Intent = "consultation"
	IntentProductSearch   Intent = "product_search"
	IntentCategoryInfo    Intent = "category_info"
	IntentGoodbye         Intent = "goodbye"
	IntentUnknown         Intent = "unknown"
)

// minArticleDigits минимальная длина цифровой последовательности, которая
// считается артикулом и перебивает любые лексические правила
const minArticleDigits = 5

var digitRunRe = regexp.MustCompile(`\d{5,}`)

// rule одно правило классификации: намерение и его признаки
type rule struct {
	intent Intent
	match  func(normalized string) bool
}

// Classifier лексический классификатор намерений
type Classifier struct {
	normalizer *normalization.TextNormalizer
	rules      []rule
	logger     *slog.Logger
}

// NewClassifier создает классификатор с боевым набором правил.
// Нормализатор не выбрасывает родовые слова категорий: для выбора
// намерения слова "диван" и "матрас" как раз значимы.
func NewClassifier() *Classifier {
	return &Classifier{
		normalizer: normalization.NewTextNormalizer(false),
		rules:      defaultRules(),
		logger:     slog.Default().With("component", "intent_classifier"),
	}
}

// productNouns родовые слова товаров в единственном числе. Во
// множественном числе те же слова говорят о категории, а не о товаре.
var productNouns = map[string]bool{
	"диван":   true,
	"матрас":  true,
	"кровать": true,
}

// modelKeywords известные бренды и модели; любое из этих слов в реплике
// означает вопрос о конкретном товаре
var modelKeywords = []string{
	"велуна", "лаома", "палато",
	"лагома", "альма", "аскер", "глатта", "ильта", "ленвик", "лунд", "нарвик", "ульвик",
	"аскона", "юкки", "гизела",
	"ривалли", "кьянти", "вито",
	"мун трейд", "бильбао", "пекин",
	"мио тесоро", "майами", "аспен",
	"элва", "лейтон", "эвас",
	"мебельград", "сонни", "элой",
	"вудкрафт", "кубо",
	"хомми", "айсти",
}

// defaultRules боевой порядок правил. Порядок несет смысл: служебные и
// точные правила стоят раньше родовых, прощание — последним, чтобы
// вежливое "спасибо, пока" не перебило содержательный вопрос.
func defaultRules() []rule {
	return []rule{
		{IntentShowDeviceID, keywordMatcher(
			"айди", "идентификатор", "device id", "какое ты устройство")},
		{IntentHelp, keywordMatcher(
			"помощь", "помоги", "что ты умеешь", "как работаешь", "справка", "инструкция")},
		{IntentShelfQuestion, keywordMatcher(
			"полке", "полка", "полки", "полках", "стеллаж", "стеллаже", "стеллажа", "стеллажи")},
		{IntentUserGreeting, keywordMatcher(
			"привет", "здравствуй", "здравствуйте", "добрый день", "доброе утро", "добрый вечер")},
		{IntentArticleSearch, keywordMatcher(
			"артикул", "артикулу", "артикулом", "номер товара", "по коду")},
		{IntentDetailedInfo, keywordMatcher(
			"подробнее", "подробности", "характеристики", "расскажи подробно")},
		{IntentSpecificProduct, matchSpecificProduct},
		{IntentPromotions, keywordMatcher(
			"акции", "акция", "акциях", "скидки", "скидка", "скидках",
			"распродажа", "цена", "цены", "ценам")},
		{IntentConsultation, keywordMatcher(
			"консультант", "консультанта", "продавец", "продавца", "менеджер",
			"позови", "позовите")},
		{IntentProductSearch, keywordMatcher(
			"покажи", "найди", "поищи", "подбери", "ищу", "посоветуй")},
		{IntentCategoryInfo, keywordMatcher(
			"диван", "диваны", "диванах", "матрас", "матрасы", "матрасах",
			"кровати", "кроватях", "ассортимент", "каталог")},
		{IntentGoodbye, keywordMatcher(
			"пока", "до свидания", "до встречи", "прощай", "прощайте", "всего доброго")},
	}
}

// Classify определяет намерение реплики. Длинная цифровая
// последовательность — в том числе продиктованная словами — всегда
// означает поиск по артикулу и проверяется раньше лексических правил.
func (c *Classifier) Classify(utterance string) Intent {
	normalized := c.normalizer.Normalize(utterance)
	if normalized == "" {
		return IntentUnknown
	}

	if digitRunRe.MatchString(normalized) {
		return IntentArticleSearch
	}
	converted := normalization.ConvertSpokenDigits(normalized, minArticleDigits)
	if converted != normalized && digitRunRe.MatchString(converted) {
		return IntentArticleSearch
	}

	for _, r := range c.rules {
		if r.match(normalized) {
			return r.intent
		}
	}

	c.logger.Debug("No rule matched", "utterance", normalized)
	return IntentUnknown
}

// Rules возвращает порядок намерений в боевом наборе правил
func (c *Classifier) Rules() []Intent {
	order := make([]Intent, 0, len(c.rules))
	for _, r := range c.rules {
		order = append(order, r.intent)
	}
	return order
}

// keywordMatcher правило "хотя бы одно из слов присутствует целиком"
func keywordMatcher(keywords ...string) func(string) bool {
	return func(normalized string) bool {
		for _, kw := range keywords {
			if containsWholePhrase(normalized, kw) {
				return true
			}
		}
		return false
	}
}

// matchSpecificProduct вопрос о конкретном товаре: либо известная модель
// или бренд, либо родовое слово товара вместе с каким-то уточнением.
// Голое "диван 1234" уточнением не считается — обрывок цифр ничего не
// говорит о модели, и такая реплика уходит в категорию.
func matchSpecificProduct(normalized string) bool {
	for _, kw := range modelKeywords {
		if containsWholePhrase(normalized, kw) {
			return true
		}
	}

	hasNoun := false
	extraWords := 0
	for _, word := range strings.Fields(normalized) {
		if productNouns[word] {
			hasNoun = true
			continue
		}
		if isAlphaWord(word) {
			extraWords++
		}
	}
	return hasNoun && extraWords > 0
}

// containsWholePhrase ищет фразу в тексте с границами по словам: "пока"
// не должно совпадать с "покажи"
func containsWholePhrase(text, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start

		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(phrase)) {
			return true
		}
		start = idx + len(phrase)
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := lastRune(text[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r := firstRune(text[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// isAlphaWord проверяет, что слово состоит из букв
func isAlphaWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
