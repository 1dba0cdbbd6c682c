// Package server HTTP сервер навыка: вебхук голосового помощника и
// служебный API аналитики диалогов.
package server

import (
	"fmt"
	"strings"
)

// MaxResponseChars потолок длины текста ответа, который принимает
// платформа голосового помощника
const MaxResponseChars = 1024

// MaxButtons потолок числа кнопок-подсказок под репликой
const MaxButtons = 5

// WebhookRequest запрос платформы к вебхуку навыка
type WebhookRequest struct {
	Meta    Meta        `json:"meta"`
	Session Session     `json:"session"`
	Request UserRequest `json:"request"`
	Version string      `json:"version"`
}

// Meta сведения об устройстве и поверхности
type Meta struct {
	Locale     string         `json:"locale,omitempty"`
	Timezone   string         `json:"timezone,omitempty"`
	ClientID   string         `json:"client_id,omitempty"`
	Interfaces map[string]any `json:"interfaces,omitempty"`
}

// Session сведения о сессии диалога
type Session struct {
	New         bool        `json:"new"`
	MessageID   int         `json:"message_id"`
	SessionID   string      `json:"session_id"`
	SkillID     string      `json:"skill_id,omitempty"`
	Application Application `json:"application"`
	User        *User       `json:"user,omitempty"`
}

// Application устройство, с которого пришла реплика
type Application struct {
	ApplicationID string `json:"application_id"`
}

// User авторизованный пользователь, если есть
type User struct {
	UserID string `json:"user_id"`
}

// UserRequest реплика пользователя
type UserRequest struct {
	Command           string `json:"command"`
	OriginalUtterance string `json:"original_utterance,omitempty"`
	Type              string `json:"type"`
}

// WebhookResponse ответ навыка платформе
type WebhookResponse struct {
	Response ResponsePayload `json:"response"`
	Version  string          `json:"version"`
}

// ResponsePayload содержимое ответа
type ResponsePayload struct {
	Text       string   `json:"text"`
	TTS        string   `json:"tts,omitempty"`
	Buttons    []Button `json:"buttons,omitempty"`
	Card       *Card    `json:"card,omitempty"`
	EndSession bool     `json:"end_session"`
}

// Button кнопка-подсказка под репликой
type Button struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Hide  bool   `json:"hide"`
}

// Card карточка BigImage под текстом ответа: на колонках с экраном
// показывает товар картинкой, на остальных игнорируется
type Card struct {
	Type        string      `json:"type"`
	ImageID     string      `json:"image_id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Button      *CardButton `json:"button,omitempty"`
}

// CardButton кнопка внутри карточки
type CardButton struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Validate проверяет, что запрос пригоден для обработки
func (r *WebhookRequest) Validate() error {
	if r.Version == "" {
		return fmt.Errorf("запрос без версии протокола")
	}
	if r.Session.SessionID == "" {
		return fmt.Errorf("запрос без идентификатора сессии")
	}
	return nil
}

// NewResponse собирает ответ навыка, обрезая текст до потолка платформы
func NewResponse(req *WebhookRequest, text string, endSession bool) WebhookResponse {
	version := req.Version
	if version == "" {
		version = "1.0"
	}
	return WebhookResponse{
		Response: ResponsePayload{
			Text:       TruncateResponse(text),
			EndSession: endSession,
		},
		Version: version,
	}
}

// WithButtons добавляет кнопки-подсказки к ответу; лишние сверх потолка
// платформы молча отбрасываются
func (r WebhookResponse) WithButtons(titles ...string) WebhookResponse {
	for _, title := range titles {
		if len(r.Response.Buttons) >= MaxButtons {
			break
		}
		r.Response.Buttons = append(r.Response.Buttons, Button{Title: title, Hide: true})
	}
	return r
}

// WithCard прикрепляет карточку товара к ответу
func (r WebhookResponse) WithCard(card *Card) WebhookResponse {
	r.Response.Card = card
	return r
}

// TruncateResponse обрезает текст до потолка платформы, не разрывая руну;
// обрезанный текст получает многоточие
func TruncateResponse(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxResponseChars {
		return text
	}

	cut := strings.TrimSpace(string(runes[:MaxResponseChars-3]))
	return cut + "..."
}
