package normalization

import (
	"strings"
	"unicode"
)

// translitExceptions целые слова, которые транслитерируются не по буквам:
// побуквенный перевод названий вроде Yuki или Chianti дает нечитаемый
// результат, поэтому известные имена переводятся целиком
var translitExceptions = map[string]string{
	"yuki":    "юкки",
	"yukki":   "юкки",
	"gizela":  "гизела",
	"chianti": "кьянти",
	"kyanti":  "кьянти",
	"vito":    "вито",
	"bilbao":  "бильбао",
	"pekin":   "пекин",
	"beijing": "пекин",
	"aisti":   "айсти",
	"isti":    "исти",
	"miami":   "майами",
	"aspen":   "аспен",
	"leyton":  "лейтон",
	"evas":    "эвас",
	"sonni":   "сонни",
	"eloy":    "элой",
	"kubo":    "кубо",
	"veluna":  "велуна",
	"lagoma":  "лагома",
	"laoma":   "лаома",
	"palato":  "палато",
	"palatto": "палато",
	"alma":    "альма",
	"asker":   "аскер",
	"glatta":  "глатта",
	"glata":   "глатта",
	"ilta":    "ильта",
	"lenvik":  "ленвик",
	"lund":    "лунд",
	"narvik":  "нарвик",
	"norvik":  "нарвик",
	"ulvik":   "ульвик",
	"moon":    "мун",
	"trade":   "трейд",
	"first":   "фёрст",
	"homeme":  "хомми",
}

// translitDigraphs многобуквенные комбинации, которые должны разбираться
// раньше одиночных букв (длинные первыми)
var translitDigraphs = []replacement{
	{"shch", "щ"},
	{"sch", "щ"},
	{"yo", "ё"},
	{"zh", "ж"},
	{"kh", "х"},
	{"ch", "ч"},
	{"sh", "ш"},
	{"yu", "ю"},
	{"ya", "я"},
	{"ts", "ц"},
}

// translitSingles одиночные латинские буквы
var translitSingles = map[rune]string{
	'a': "а", 'b': "б", 'c': "к", 'd': "д", 'e': "е",
	'f': "ф", 'g': "г", 'h': "х", 'i': "и", 'j': "дж",
	'k': "к", 'l': "л", 'm': "м", 'n': "н", 'o': "о",
	'p': "п", 'q': "к", 'r': "р", 's': "с", 't': "т",
	'u': "у", 'v': "в", 'w': "в", 'x': "кс", 'y': "й",
	'z': "з",
}

// TransliterateLatin переводит латинские подстроки текста в кириллицу.
// Текст должен быть уже приведен к нижнему регистру. Кириллица, цифры и
// пунктуация проходят без изменений, поэтому повторный вызов — no-op.
func TransliterateLatin(text string) string {
	words := strings.FieldsFunc(text, func(r rune) bool { return r == ' ' })
	for i, w := range words {
		words[i] = transliterateWord(w)
	}
	return strings.Join(words, " ")
}

// transliterateWord транслитерирует одно слово
func transliterateWord(word string) string {
	if !containsLatin(word) {
		return word
	}

	// Словарные исключения сверяются без обрамляющей пунктуации:
	// "veluna," — это всё еще Veluna
	core := strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if cyr, ok := translitExceptions[core]; ok {
		return strings.Replace(word, core, cyr, 1)
	}

	var builder strings.Builder
	builder.Grow(len(word) * 2)

	rest := word
	for len(rest) > 0 {
		matched := false
		// Сначала длинные комбинации
		for _, d := range translitDigraphs {
			if strings.HasPrefix(rest, d.from) {
				builder.WriteString(d.to)
				rest = rest[len(d.from):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		r := []rune(rest)[0]
		if cyr, ok := translitSingles[r]; ok {
			builder.WriteString(cyr)
		} else {
			builder.WriteRune(r)
		}
		rest = rest[len(string(r)):]
	}

	return builder.String()
}

// containsLatin сообщает, есть ли в слове латинские буквы
func containsLatin(word string) bool {
	for _, r := range word {
		if r >= 'a' && r <= 'z' {
			return true
		}
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
