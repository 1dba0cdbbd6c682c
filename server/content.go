package server

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"skillserver/catalog"
	"skillserver/speech"
)

// pickFunc выбирает индекс из пула фраз; в боевом коде это rand.IntN,
// в тестах — детерминированная подмена
type pickFunc func(n int) int

func defaultPick(n int) int {
	return rand.IntN(n)
}

// Пулы фраз. Каждый ответ собирается из случайной фразы пула, чтобы
// диалог не звучал заезженной пластинкой.
var greetings = []string{
	"Здравствуйте! Я помощник мебельного салона. Назовите артикул товара или спросите про диван или матрас.",
	"Добрый день! Подскажу цену и характеристики по артикулу, дивану или матрасу. Что вас интересует?",
	"Приветствую! Спрашивайте про наши диваны, матрасы и акции — постараюсь помочь.",
}

var reminders = []string{
	"Кстати, если запутаетесь — просто скажите «помощь».",
	"Напомню: я понимаю артикулы, даже если продиктовать их по одной цифре.",
	"Если нужен живой консультант, скажите «позови консультанта».",
}

var notFoundPhrases = []string{
	"К сожалению, ничего не нашла. Попробуйте назвать артикул или уточнить модель.",
	"Не нашла такого товара. Назовите, пожалуйста, артикул с ценника или модель целиком.",
	"Такого не встречала. Могу поискать по артикулу — продиктуйте его цифрами.",
}

var unknownPhrases = []string{
	"Я вас не поняла. Скажите «помощь», и я расскажу, что умею.",
	"Не разобрала запрос. Спросите про диван, матрас или назовите артикул.",
}

const helpText = "Я помощник мебельного салона. Умею искать товары по артикулу, " +
	"рассказывать про диваны и матрасы, подсказывать цены, действующие акции " +
	"и что стоит на стеллажах. Например, спросите: «сколько стоит матрас лагома лунд» " +
	"или назовите артикул с ценника."

const promotionsText = "Сейчас действуют акции: скидка двадцать процентов на все матрасы " +
	"Lagoma при покупке с основанием, третья подушка в подарок при покупке двух, " +
	"и бесплатная доставка по городу при заказе от тысячи рублей."

const consultationText = "Зову консультанта, он подойдет к вам в течение пары минут. " +
	"А пока можете спросить меня про любой товар с ценника."

const goodbyeText = "Спасибо, что заглянули! Будем ждать вас снова."

const categoryInfoText = "В нашем салоне два больших раздела: диваны и матрасы. " +
	"Спросите про конкретную модель или бренд, например «расскажи про аскону» " +
	"или «матрас лагома лунд»."

// maybeReminder примерно к половине ответов добавляет ненавязчивую
// подсказку; приветствие первой реплики подсказкой не нагружается.
// Монетка бросается через pick, чтобы тесты могли ее зафиксировать.
func maybeReminder(text string, messageID int, pick pickFunc) string {
	if messageID == 0 || pick(2) != 1 {
		return text
	}
	return text + " " + reminders[pick(len(reminders))]
}

// formatEntryCard собирает озвучиваемую карточку товара
func formatEntryCard(e *catalog.Entry) string {
	var b strings.Builder
	b.WriteString(e.Name)

	if price, err := priceText(e); err == nil && price != "" {
		b.WriteString(" стоит ")
		b.WriteString(price)
	}
	b.WriteString(".")

	if e.Description != "" {
		b.WriteString(" ")
		b.WriteString(e.Description)
	}
	return b.String()
}

// formatEntryDetails собирает подробный ответ о товаре
func formatEntryDetails(e *catalog.Entry) string {
	var b strings.Builder
	b.WriteString(formatEntryCard(e))

	details := []struct{ label, value string }{
		{"Высота", e.Height},
		{"Жесткость", e.Firmness},
		{"Максимальная нагрузка", e.MaxLoad},
		{"Гарантия", e.Warranty},
	}
	for _, d := range details {
		if d.value != "" {
			b.WriteString(fmt.Sprintf(" %s: %s.", d.label, d.value))
		}
	}
	for _, p := range e.Properties {
		b.WriteString(fmt.Sprintf(" %s: %s.", p.Key, p.Value))
	}

	if e.InStock {
		b.WriteString(" Товар есть в наличии.")
	}
	return b.String()
}

// formatBrandList собирает ответ-уточнение, когда распознан только бренд
func formatBrandList(brand string, candidates []*catalog.Entry) string {
	names := make([]string, 0, len(candidates))
	for _, e := range candidates {
		if e.Model != "" {
			names = append(names, e.Model)
		} else {
			names = append(names, e.Name)
		}
	}

	return fmt.Sprintf("У бренда %s есть модели: %s. Какая вас интересует?",
		brand, strings.Join(names, ", "))
}

// formatShelfLocation собирает ответ о месте товара в зале
func formatShelfLocation(loc *catalog.ShelfLocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s стоит на стеллаже «%s», %s.",
		loc.Product.Name, loc.RackName, strings.ToLower(loc.LevelName))

	if price, err := speech.FormatPrice(loc.Product.Price, true); err == nil {
		fmt.Fprintf(&b, " Цена — %s.", price)
	}
	if loc.Product.Availability != "" {
		fmt.Fprintf(&b, " Товар %s.", loc.Product.Availability)
	}
	return b.String()
}

// formatShelfOverview собирает ответ о содержимом полки стеллажа
func formatShelfOverview(rack *catalog.Rack, level *catalog.ShelfLevel) string {
	if len(level.Products) == 0 {
		return fmt.Sprintf("На стеллаже «%s» %s сейчас пусто.",
			rack.Name, strings.ToLower(level.Name))
	}

	names := make([]string, 0, len(level.Products))
	for i := range level.Products {
		names = append(names, level.Products[i].Name)
	}
	return fmt.Sprintf("На стеллаже «%s», %s: %s.",
		rack.Name, strings.ToLower(level.Name), strings.Join(names, "; "))
}

// defaultProductImageID картинка-заглушка для товаров без своей картинки
const defaultProductImageID = "1521359/default-product"

// productCard собирает карточку BigImage для найденного товара
func productCard(e *catalog.Entry) *Card {
	card := &Card{
		Type:        "BigImage",
		ImageID:     e.ImageID,
		Title:       e.Name,
		Description: e.Description,
	}
	if card.ImageID == "" {
		card.ImageID = defaultProductImageID
	}

	if price, err := priceText(e); err == nil && price != "" {
		if card.Description != "" {
			card.Description += " "
		}
		card.Description += "Цена: " + price + "."
	}
	if e.URL != "" {
		card.Button = &CardButton{Text: "Подробнее", URL: e.URL}
	}
	return card
}

// priceText выбирает, как озвучить цену: готовым текстом из каталога или
// через числовой формирователь
func priceText(e *catalog.Entry) (string, error) {
	if e.PriceText != "" {
		return e.PriceText, nil
	}
	if e.Price > 0 {
		return speech.FormatPrice(e.Price, true)
	}
	return "", nil
}
