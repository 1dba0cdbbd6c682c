package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HandleRecentDialogs возвращает последние реплики журнала диалогов
// @Summary Последние реплики журнала
// @Tags analytics
// @Produce json
// @Param limit query int false "Сколько реплик вернуть" default(50)
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/analytics/dialogs [get]
func (s *Server) HandleRecentDialogs(c *gin.Context) {
	if s.serviceDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "журнал диалогов не подключен"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := s.serviceDB.GetRecentDialogs(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("Dialog log read failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось прочитать журнал"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"dialogs": records,
	})
}

// HandleIntentStats возвращает распределение реплик по намерениям
// @Summary Статистика намерений
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/analytics/intents [get]
func (s *Server) HandleIntentStats(c *gin.Context) {
	if s.serviceDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "журнал диалогов не подключен"})
		return
	}

	stats, err := s.serviceDB.GetIntentStats(c.Request.Context())
	if err != nil {
		s.logger.Error("Intent stats read failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось собрать статистику"})
		return
	}

	total, err := s.serviceDB.CountDialogs(c.Request.Context())
	if err != nil {
		s.logger.Error("Dialog count failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось собрать статистику"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"intents": stats,
	})
}

// HandleCatalogSummary возвращает размеры загруженных каталогов
// @Summary Сводка по каталогам
// @Tags service
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/catalogs/summary [get]
func (s *Server) HandleCatalogSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sofas":      len(s.store.Sofas.Entries),
		"mattresses": len(s.store.Mattresses.Entries),
		"articles":   len(s.store.Articles.Entries),
		"racks":      len(s.store.Shelves.Racks),
	})
}
