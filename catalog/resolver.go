package catalog

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"skillserver/normalization"
)

// ResultKind вид результата поиска
type ResultKind int

const (
	// ResultNotFound ничего не найдено; это обычный исход, не ошибка
	ResultNotFound ResultKind = iota
	// ResultExact найдена ровно одна запись
	ResultExact
	// ResultAmbiguous распознан бренд, но не конкретная модель
	ResultAmbiguous
)

// Result результат поиска по каталогу. Ровно один вариант активен:
// Exact несет Entry, Ambiguous несет Brand и всех кандидатов этого бренда,
// NotFound не несет ничего.
type Result struct {
	Kind       ResultKind
	Entry      *Entry
	Brand      string
	Candidates []*Entry
}

// exact собирает результат точного совпадения
func exact(e *Entry) Result {
	return Result{Kind: ResultExact, Entry: e}
}

// ambiguous собирает результат "бренд без модели"
func ambiguous(brand string, candidates []*Entry) Result {
	return Result{Kind: ResultAmbiguous, Brand: brand, Candidates: candidates}
}

// notFound пустой результат
func notFound() Result {
	return Result{Kind: ResultNotFound}
}

// minSpokenDigits минимальная длина цифровой строки, восстановленной из
// произнесенных цифр, при которой ей можно верить как коду
const minSpokenDigits = 4

// minContainmentRunes минимальная длина запроса (в рунах), при которой
// разрешено направление "запрос внутри алиаса": для совсем коротких
// запросов это направление совпадало бы почти с чем угодно
const minContainmentRunes = 3

var codeDigitsRe = regexp.MustCompile(`\d{4,}`)

var resolverLog = slog.Default().With("component", "entity_resolver")

// Resolve ищет запись каталога по нормализованному запросу. Пять стадий,
// каждая следующая пробуется только если предыдущая ничего не дала:
//
//  1. точное совпадение канонического кода (пунктуация и регистр не в счет);
//  2. повтор стадии 1 по цифрам, восстановленным из произнесенных слов,
//     дополнительно допуская совпадение по префиксу кода — реплику часто
//     обрезают на полуслове;
//  3. вхождение алиаса в запрос или запроса в алиас, первый по порядку
//     каталога;
//  4. для иерархических каталогов: бренд по BrandAliases, затем модель по
//     ModelAliases записей этого бренда; бренд без модели дает Ambiguous
//     со всеми записями бренда;
//  5. поиск только по ModelAliases всех записей — реплики нередко опускают
//     бренд целиком.
//
// Непопадание — это значение ResultNotFound, а не ошибка.
func Resolve(query string, c *Catalog) Result {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || c == nil || len(c.Entries) == 0 {
		return notFound()
	}

	// Стадия 1: точный код
	if r := resolveByCode(query, c); r.Kind != ResultNotFound {
		return r
	}

	// Стадия 2: восстановленные из слов цифры, точно или по префиксу
	if r := resolveBySpokenCode(query, c); r.Kind != ResultNotFound {
		return r
	}

	// Стадия 3: вхождение алиасов
	if r := resolveByAlias(query, c); r.Kind != ResultNotFound {
		return r
	}

	if c.Hierarchical {
		// Стадия 4: бренд, затем модель
		if r := resolveByBrandModel(query, c); r.Kind != ResultNotFound {
			return r
		}
		// Стадия 5: только модель
		if r := resolveByModelOnly(query, c); r.Kind != ResultNotFound {
			return r
		}
	}

	resolverLog.Debug("No match", "catalog", c.Name, "query", query)
	return notFound()
}

// resolveByCode стадия 1: сравнение канонических кодов
func resolveByCode(query string, c *Catalog) Result {
	candidates := []string{cleanCode(query)}
	if run := codeDigitsRe.FindString(query); run != "" {
		candidates = append(candidates, run)
	}

	for i := range c.Entries {
		code := cleanCode(c.Entries[i].Code)
		if code == "" {
			continue
		}
		for _, q := range candidates {
			if q != "" && q == code {
				return exact(&c.Entries[i])
			}
		}
	}
	return notFound()
}

// resolveBySpokenCode стадия 2: цифры из произнесенных слов, с допуском
// совпадения по префиксу кода
func resolveBySpokenCode(query string, c *Catalog) Result {
	converted := normalization.ConvertSpokenDigits(query, minSpokenDigits)
	if converted == query || !isDigitString(converted) {
		return notFound()
	}

	var prefixMatch *Entry
	for i := range c.Entries {
		code := cleanCode(c.Entries[i].Code)
		if code == converted {
			return exact(&c.Entries[i])
		}
		if prefixMatch == nil && strings.HasPrefix(code, converted) {
			prefixMatch = &c.Entries[i]
		}
	}
	if prefixMatch != nil {
		resolverLog.Debug("Prefix code match",
			"catalog", c.Name, "digits", converted, "code", prefixMatch.Code)
		return exact(prefixMatch)
	}
	return notFound()
}

// resolveByAlias стадия 3: двустороннее вхождение плоских алиасов
func resolveByAlias(query string, c *Catalog) Result {
	for i := range c.Entries {
		for _, alias := range c.Entries[i].Aliases {
			if aliasMatches(query, alias) {
				return exact(&c.Entries[i])
			}
		}
	}
	return notFound()
}

// resolveByBrandModel стадия 4: сначала бренд, внутри бренда — модель
func resolveByBrandModel(query string, c *Catalog) Result {
	brand := ""
	for i := range c.Entries {
		for _, alias := range c.Entries[i].BrandAliases {
			if aliasMatches(query, alias) {
				brand = c.Entries[i].Brand
				break
			}
		}
		if brand != "" {
			break
		}
	}
	if brand == "" {
		return notFound()
	}

	candidates := c.EntriesOfBrand(brand)
	for _, e := range candidates {
		for _, alias := range e.ModelAliases {
			if aliasMatches(query, alias) {
				return exact(e)
			}
		}
	}

	resolverLog.Debug("Brand without model",
		"catalog", c.Name, "brand", brand, "candidates", len(candidates))
	return ambiguous(brand, candidates)
}

// resolveByModelOnly стадия 5: модель без бренда
func resolveByModelOnly(query string, c *Catalog) Result {
	for i := range c.Entries {
		for _, alias := range c.Entries[i].ModelAliases {
			if aliasMatches(query, alias) {
				return exact(&c.Entries[i])
			}
		}
	}
	return notFound()
}

// aliasMatches двустороннее вхождение: алиас в запросе или запрос в алиасе.
// Обратное направление терпит обрезанные реплики, но требует от запроса
// минимальной длины, иначе односложный обрывок совпадет с чем угодно.
func aliasMatches(query, alias string) bool {
	if alias == "" {
		return false
	}
	if strings.Contains(query, alias) {
		return true
	}
	if utf8.RuneCountInString(query) > minContainmentRunes && strings.Contains(alias, query) {
		return true
	}
	return false
}

// cleanCode приводит канонический код к сравнимому виду: нижний регистр,
// без пробелов, точек и дефисов
func cleanCode(code string) string {
	var builder strings.Builder
	for _, r := range strings.ToLower(code) {
		if unicode.IsSpace(r) || r == '.' || r == '-' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// isDigitString проверяет, что строка непуста и состоит из одних цифр
func isDigitString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
