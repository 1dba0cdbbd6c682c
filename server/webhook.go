package server

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skillserver/catalog"
	"skillserver/classification"
	"skillserver/database"
	"skillserver/normalization"
)

// dialogResult результат обработки реплики, уходит в журнал аналитики
type dialogResult struct {
	intent       classification.Intent
	normalized   string
	resolvedCode string
	text         string
	card         *Card
	endSession   bool
}

var shelfNumbersRe = regexp.MustCompile(`\d+`)

// HandleWebhook обрабатывает запрос платформы голосового помощника.
// Любая реплика получает ответ со статусом 200: платформа повторяет
// запросы при других статусах, а пользователю в этот момент нечего
// сказать, кроме текста.
// @Summary Вебхук голосового помощника
// @Tags webhook
// @Accept json
// @Produce json
// @Param request body server.WebhookRequest true "Запрос платформы"
// @Success 200 {object} server.WebhookResponse
// @Failure 400 {object} map[string]string
// @Router /webhook [post]
func (s *Server) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидный запрос: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.handleUtterance(&req)

	s.recordDialog(&req, result)

	resp := NewResponse(&req, result.text, result.endSession)
	if result.card != nil {
		resp = resp.WithCard(result.card)
	}
	if result.intent == classification.IntentUnknown {
		resp = resp.WithButtons("Помощь", "Акции", "Позвать консультанта")
	}
	c.JSON(http.StatusOK, resp)
}

// handleUtterance маршрутизирует реплику по намерению
func (s *Server) handleUtterance(req *WebhookRequest) dialogResult {
	command := strings.TrimSpace(req.Request.Command)

	// Первый запрос сессии без команды — приветствие
	if req.Session.New && command == "" {
		return dialogResult{
			intent: classification.IntentUserGreeting,
			text:   s.welcome(req.Session.Application.ApplicationID),
		}
	}

	intent := s.classifier.Classify(command)
	normalized := s.queryNormalizer.Normalize(command)

	result := dialogResult{intent: intent, normalized: normalized}

	switch intent {
	case classification.IntentShowDeviceID:
		result.text = deviceAnswer(req.Session.Application.ApplicationID)

	case classification.IntentHelp:
		result.text = helpText

	case classification.IntentUserGreeting:
		result.text = s.welcome(req.Session.Application.ApplicationID)

	case classification.IntentShelfQuestion:
		result.text = s.answerShelfQuestion(command)

	case classification.IntentArticleSearch:
		result = s.answerArticleSearch(normalized, result)

	case classification.IntentSpecificProduct, classification.IntentProductSearch:
		result = s.answerProductSearch(normalized, result, false)

	case classification.IntentDetailedInfo:
		result = s.answerProductSearch(normalized, result, true)

	case classification.IntentPromotions:
		result.text = s.promotionsAnswer(req.Session.Application.ApplicationID)

	case classification.IntentConsultation:
		result.text = consultationText

	case classification.IntentCategoryInfo:
		result.text = categoryInfoText

	case classification.IntentGoodbye:
		result.text = goodbyeText
		result.endSession = true

	default:
		result.text = unknownPhrases[s.pick(len(unknownPhrases))]
	}

	if !result.endSession {
		result.text = maybeReminder(result.text, req.Session.MessageID, s.pick)
	}
	return result
}

// welcome собирает приветствие: зональное для известных колонок зала,
// случайное из пула для остальных
func (s *Server) welcome(applicationID string) string {
	if zone, ok := zoneForDevice(applicationID); ok {
		return zone.Greeting
	}
	return greetings[s.pick(len(greetings))]
}

// promotionsAnswer отвечает про акции: в известной зоне — про акции этой
// зоны, для остальных устройств — общий текст
func (s *Server) promotionsAnswer(applicationID string) string {
	if zone, ok := zoneForDevice(applicationID); ok && zone.Promotions != "" {
		return zone.Promotions
	}
	return promotionsText
}

// answerArticleSearch ищет товар по артикулу в плоском каталоге
func (s *Server) answerArticleSearch(normalized string, result dialogResult) dialogResult {
	r := catalog.Resolve(normalized, s.store.Articles)
	if r.Kind != catalog.ResultExact {
		result.text = notFoundPhrases[s.pick(len(notFoundPhrases))]
		return result
	}

	result.resolvedCode = r.Entry.Code
	result.text = formatEntryDetails(r.Entry)
	result.card = productCard(r.Entry)

	// Подсказываем, где товар стоит в зале
	if loc := s.store.Shelves.FindByArticle(r.Entry.Code); loc != nil {
		result.text += " " + formatShelfLocation(loc)
	}
	return result
}

// answerProductSearch ищет товар в иерархических каталогах: сначала
// диваны, затем матрасы; порядок закреплен и не зависит от реплики
func (s *Server) answerProductSearch(normalized string, result dialogResult, detailed bool) dialogResult {
	for _, c := range []*catalog.Catalog{s.store.Sofas, s.store.Mattresses} {
		r := catalog.Resolve(normalized, c)
		switch r.Kind {
		case catalog.ResultExact:
			result.resolvedCode = r.Entry.Code
			if detailed {
				result.text = formatEntryDetails(r.Entry)
			} else {
				result.text = formatEntryCard(r.Entry)
			}
			result.card = productCard(r.Entry)
			return result
		case catalog.ResultAmbiguous:
			result.text = formatBrandList(r.Brand, r.Candidates)
			return result
		}
	}

	result.text = notFoundPhrases[s.pick(len(notFoundPhrases))]
	return result
}

// answerShelfQuestion отвечает про стеллажи: с номерами — про конкретную
// полку, без номеров — перечисляет стеллажи зала
func (s *Server) answerShelfQuestion(command string) string {
	converted := normalization.ConvertSpokenDigitsInPlace(strings.ToLower(command))
	numbers := shelfNumbersRe.FindAllString(converted, 2)

	if len(numbers) == 0 {
		return s.listRacks()
	}

	rack := s.store.Shelves.Rack(numbers[0])
	if rack == nil {
		return fmt.Sprintf("Стеллажа с номером %s в зале нет. %s", numbers[0], s.listRacks())
	}

	if len(numbers) == 1 {
		var parts []string
		for i := range rack.Levels {
			parts = append(parts, formatShelfOverview(rack, &rack.Levels[i]))
		}
		if len(parts) == 0 {
			return fmt.Sprintf("На стеллаже «%s» пока ничего не выставлено.", rack.Name)
		}
		return strings.Join(parts, " ")
	}

	level := rack.Level(numbers[1])
	if level == nil {
		return fmt.Sprintf("На стеллаже «%s» нет полки с номером %s.", rack.Name, numbers[1])
	}
	return formatShelfOverview(rack, level)
}

// listRacks перечисляет стеллажи зала
func (s *Server) listRacks() string {
	if len(s.store.Shelves.Racks) == 0 {
		return "Сведений о стеллажах у меня пока нет. Спросите про товар по артикулу."
	}

	var parts []string
	for i := range s.store.Shelves.Racks {
		rack := &s.store.Shelves.Racks[i]
		if rack.Description != "" {
			parts = append(parts, fmt.Sprintf("%s — %s", rack.Name, strings.ToLower(rack.Description)))
		} else {
			parts = append(parts, rack.Name)
		}
	}
	return fmt.Sprintf("В зале %d стеллажа: %s. Назовите номер стеллажа и полки.",
		len(s.store.Shelves.Racks), strings.Join(parts, "; "))
}

// recordDialog асинхронно пишет реплику в журнал аналитики; сбой журнала
// не должен задерживать или ломать ответ пользователю
func (s *Server) recordDialog(req *WebhookRequest, result dialogResult) {
	if s.serviceDB == nil {
		return
	}

	rec := database.DialogRecord{
		SessionID:     req.Session.SessionID,
		ApplicationID: req.Session.Application.ApplicationID,
		Utterance:     req.Request.Command,
		Normalized:    result.normalized,
		Intent:        string(result.intent),
		ResolvedCode:  result.resolvedCode,
		ResponseText:  TruncateResponse(result.text),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.serviceDB.RecordDialog(ctx, rec); err != nil {
			s.logger.Warn("Dialog record failed", "error", err.Error())
		}
	}()
}
