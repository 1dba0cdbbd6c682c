// Package speech превращает числовые значения в русский текст,
// пригодный для озвучивания голосовым помощником.
package speech

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxAmount наибольшая сумма, которую формирователь умеет проговорить
const MaxAmount = 999_999_999

// ErrBadAmount сумма вне допустимого диапазона или не является числом
var ErrBadAmount = errors.New("сумма не может быть озвучена")

// Словари разрядов. Единицы существуют в двух родах: рубли и миллионы
// мужского рода, тысячи и копейки — женского.
var (
	unitsMasculine = [...]string{
		"", "один", "два", "три", "четыре",
		"пять", "шесть", "семь", "восемь", "девять",
	}
	unitsFeminine = [...]string{
		"", "одна", "две", "три", "четыре",
		"пять", "шесть", "семь", "восемь", "девять",
	}
	teens = [...]string{
		"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
		"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать",
	}
	tens = [...]string{
		"", "", "двадцать", "тридцать", "сорок",
		"пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто",
	}
	hundreds = [...]string{
		"", "сто", "двести", "триста", "четыреста",
		"пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот",
	}
)

// FormatPrice проговаривает цену в рублях и копейках со всеми
// согласованиями: "одна тысяча восемьдесят два рубля шестьдесят две
// копейки". При roundToWhole копейки отбрасываются, причем пятьдесят
// и более копеек округляют рубли вверх. Нулевая цена озвучивается как
// "бесплатно".
func FormatPrice(amount float64, roundToWhole bool) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 || amount > MaxAmount {
		return "", fmt.Errorf("%w: %v", ErrBadAmount, amount)
	}

	total := int64(math.Round(amount * 100))
	rubles := total / 100
	kopecks := total % 100

	if roundToWhole {
		if kopecks >= 50 {
			rubles++
		}
		kopecks = 0
	}

	if rubles == 0 && kopecks == 0 {
		return "бесплатно", nil
	}

	var parts []string
	if rubles > 0 {
		parts = append(parts, numberWords(rubles, false)...)
		parts = append(parts, declension(rubles, "рубль", "рубля", "рублей"))
	}
	if kopecks > 0 {
		parts = append(parts, numberWords(kopecks, true)...)
		parts = append(parts, declension(kopecks, "копейка", "копейки", "копеек"))
	}
	return strings.Join(parts, " "), nil
}

// numberWords раскладывает число на слова по разрядным группам
func numberWords(n int64, feminine bool) []string {
	if n == 0 {
		return []string{"ноль"}
	}

	var parts []string
	if millions := n / 1_000_000; millions > 0 {
		parts = append(parts, tripleWords(millions, false)...)
		parts = append(parts, declension(millions, "миллион", "миллиона", "миллионов"))
	}
	if thousands := n / 1000 % 1000; thousands > 0 {
		parts = append(parts, tripleWords(thousands, true)...)
		parts = append(parts, declension(thousands, "тысяча", "тысячи", "тысяч"))
	}
	if rest := n % 1000; rest > 0 {
		parts = append(parts, tripleWords(rest, feminine)...)
	}
	return parts
}

// tripleWords проговаривает группу из трех разрядов, 1..999
func tripleWords(n int64, feminine bool) []string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}

	rest := n % 100
	switch {
	case rest >= 10 && rest <= 19:
		parts = append(parts, teens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			parts = append(parts, tens[t])
		}
		if u := rest % 10; u > 0 {
			if feminine {
				parts = append(parts, unitsFeminine[u])
			} else {
				parts = append(parts, unitsMasculine[u])
			}
		}
	}
	return parts
}

// declension выбирает форму существительного по последним разрядам
// числительного: один рубль, два рубля, пять рублей, одиннадцать рублей
func declension(n int64, one, few, many string) string {
	n = n % 100
	if n >= 11 && n <= 19 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}
