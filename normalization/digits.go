package normalization

import (
	"strings"
	"unicode"
)

// digitWords лексикон произнесенных цифр: базовые формы, разговорные
// варианты и типичные ошибки распознавания каждой цифры
var digitWords = map[string]rune{
	"ноль":    '0',
	"нуль":    '0',
	"нолик":   '0',
	"зеро":    '0',
	"один":    '1',
	"одна":    '1',
	"адин":    '1',
	"единица": '1',
	"два":     '2',
	"две":     '2',
	"двойка":  '2',
	"три":     '3',
	"тройка":  '3',
	"четыре":  '4',
	"четыри":  '4',
	"читыре":  '4',
	"пять":    '5',
	"пядь":    '5',
	"шесть":   '6',
	"шэсть":   '6',
	"семь":    '7',
	"сем":     '7',
	"восемь":  '8',
	"восем":   '8',
	"восимь":  '8',
	"девять":  '9',
	"девить":  '9',
	"дявять":  '9',
}

// ConvertSpokenDigits восстанавливает цифровую строку из произнесенных
// по одной цифр ("восемь четыре семь четыре..."). Токены, не являющиеся
// цифрой или цифровым словом, отбрасываются. Если восстановленная строка
// короче minLen, функция возвращает исходный текст без изменений: короткий
// обрывок цифр почти наверняка ложное срабатывание, и вызывающий код
// обязан проверить форму результата прежде чем верить ему как коду.
func ConvertSpokenDigits(text string, minLen int) string {
	var digits strings.Builder

	for _, token := range strings.Fields(text) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if token == "" {
			continue
		}

		if d, ok := digitWords[strings.ToLower(token)]; ok {
			digits.WriteRune(d)
			continue
		}

		if isAllDigits(token) {
			digits.WriteString(token)
		}
	}

	result := digits.String()
	if len(result) < minLen {
		return text
	}
	return result
}

// ConvertSpokenDigitsInPlace заменяет цифровые слова цифрами, сохраняя
// остальные слова на местах: "стеллаж один полка два" -> "стеллаж 1
// полка 2". В отличие от ConvertSpokenDigits соседние цифры не
// склеиваются, поэтому результат годится для выделения отдельных номеров.
func ConvertSpokenDigitsInPlace(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		core := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if d, ok := digitWords[strings.ToLower(core)]; ok {
			words[i] = strings.Replace(word, core, string(d), 1)
		}
	}
	return strings.Join(words, " ")
}

// isAllDigits проверяет, что строка целиком состоит из цифр
func isAllDigits(s string) bool {
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
