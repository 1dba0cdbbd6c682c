package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TextNormalizer нормализует распознанную речь для классификации и поиска.
// Нормализация детерминирована и идемпотентна: повторный вызов Normalize
// над уже нормализованным текстом ничего не меняет.
type TextNormalizer struct {
	stripCategoryNouns bool
	stopPhrases        []string
	corrections        []replacement
}

// replacement пара "что заменить" -> "на что заменить"
type replacement struct {
	from string
	to   string
}

// NewTextNormalizer создает новый нормализатор текста.
// stripCategoryNouns включает удаление родовых слов категорий ("диван",
// "матрас" и т.п.) — это нужно поисковым запросам по каталогу, чтобы
// родовое слово не мешало сопоставлению с алиасами моделей. Классификатор
// интентов работает с выключенным флагом: ему эти слова как раз нужны.
func NewTextNormalizer(stripCategoryNouns bool) *TextNormalizer {
	return &TextNormalizer{
		stripCategoryNouns: stripCategoryNouns,
		stopPhrases:        defaultStopPhrases(),
		corrections:        defaultCorrections(),
	}
}

// Normalize выполняет полную нормализацию текста
func (tn *TextNormalizer) Normalize(text string) string {
	// 1. Приведение к нижнему регистру
	text = strings.ToLower(text)

	// 2. Нормализация Unicode (каноническая форма NFC)
	text = norm.NFC.String(text)

	// 3. Удаление стоп-фраз (по границам слов)
	for _, phrase := range tn.stopPhrases {
		text = removeWholePhrase(text, phrase)
	}
	if tn.stripCategoryNouns {
		for _, noun := range categoryNouns() {
			text = removeWholePhrase(text, noun)
		}
	}

	// 4. Исправление известных ошибок распознавания речи
	for _, c := range tn.corrections {
		text = replaceWholePhrase(text, c.from, c.to)
	}

	// 5. Транслитерация латиницы в кириллицу
	text = TransliterateLatin(text)

	// 6. Схлопывание пробелов
	return strings.Join(strings.Fields(text), " ")
}

// defaultStopPhrases возвращает дискурсивные слова-паразиты, которые речь
// добавляет к любому запросу. Длинные фразы идут первыми, чтобы короткая
// не разрезала длинную пополам.
func defaultStopPhrases() []string {
	return []string{
		"будьте добры",
		"пожалуйста",
		"подскажите",
		"подскажи",
		"алиса",
	}
}

// categoryNouns возвращает родовые слова категорий, засоряющие поиск по
// алиасам моделей
func categoryNouns() []string {
	return []string{
		"матрасы", "матрасе", "матрас",
		"диваны", "диване", "дивана", "диван",
		"модель", "модели",
	}
}

// defaultCorrections возвращает таблицу известных ошибок распознавания:
// фонетически близкие варианты, которые колонка стабильно слышит вместо
// канонического названия (Норвик/Нарвик, Ланд/Лунд и т.п.)
func defaultCorrections() []replacement {
	return []replacement{
		{"норвик", "нарвик"},
		{"ланд", "лунд"},
		{"лунт", "лунд"},
		{"оскер", "аскер"},
		{"аскэр", "аскер"},
		{"глатто", "глатта"},
		{"глата", "глатта"},
		{"палатто", "палато"},
		{"улвик", "ульвик"},
		{"илта", "ильта"},
		{"алма", "альма"},
		{"велюна", "велуна"},
		{"лесэт", "лесет"},
	}
}

// removeWholePhrase удаляет фразу из текста только по границам слов
func removeWholePhrase(text, phrase string) string {
	return replaceWholePhrase(text, phrase, "")
}

// replaceWholePhrase заменяет фразу в тексте только по границам слов.
// strings.ReplaceAll здесь не подходит: "про" внутри "простор" трогать
// нельзя.
func replaceWholePhrase(text, phrase, with string) string {
	if phrase == "" {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))

	rest := text
	for {
		idx := strings.Index(rest, phrase)
		if idx < 0 {
			builder.WriteString(rest)
			break
		}

		before := rest[:idx]
		after := rest[idx+len(phrase):]

		if boundaryBefore(before) && boundaryAfter(after) {
			builder.WriteString(before)
			builder.WriteString(with)
		} else {
			builder.WriteString(rest[:idx+len(phrase)])
		}
		rest = after
	}

	return builder.String()
}

// boundaryBefore проверяет, что перед вхождением нет буквы или цифры
func boundaryBefore(prefix string) bool {
	if prefix == "" {
		return true
	}
	runes := []rune(prefix)
	last := runes[len(runes)-1]
	return !unicode.IsLetter(last) && !unicode.IsDigit(last)
}

// boundaryAfter проверяет, что после вхождения нет буквы или цифры
func boundaryAfter(suffix string) bool {
	if suffix == "" {
		return true
	}
	first := []rune(suffix)[0]
	return !unicode.IsLetter(first) && !unicode.IsDigit(first)
}
