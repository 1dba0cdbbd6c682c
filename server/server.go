package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"skillserver/catalog"
	"skillserver/classification"
	"skillserver/database"
	"skillserver/internal/config"
	"skillserver/normalization"
)

// Server HTTP сервер навыка
type Server struct {
	config          *config.Config
	store           *catalog.Store
	classifier      *classification.Classifier
	queryNormalizer *normalization.TextNormalizer
	serviceDB       *database.ServiceDB
	logger          *slog.Logger

	// pick выбирает фразу из пула; в тестах подменяется детерминированной
	pick pickFunc

	httpServer  *http.Server
	httpHandler http.Handler
	handlerOnce sync.Once

	startTime time.Time
}

// NewServer собирает сервер навыка. Нормализатор запросов к каталогам
// выбрасывает родовые слова товаров: для поиска записи слово "матрас"
// только мешает.
func NewServer(cfg *config.Config, store *catalog.Store, serviceDB *database.ServiceDB) *Server {
	return &Server{
		config:          cfg,
		store:           store,
		classifier:      classification.NewClassifier(),
		queryNormalizer: normalization.NewTextNormalizer(true),
		serviceDB:       serviceDB,
		logger:          slog.Default().With("component", "server"),
		pick:            defaultPick,
		startTime:       time.Now(),
	}
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.Port),
		Handler:      s.ensureHTTPHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("Server starting", "port", s.config.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск HTTP сервера: %w", err)
	}
	return nil
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Initiating graceful shutdown")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}
	s.logger.Info("Graceful shutdown completed")
	return nil
}

// ServeHTTP реализует http.Handler для тестов
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ensureHTTPHandler().ServeHTTP(w, r)
}

// ensureHTTPHandler строит роутер ровно один раз
func (s *Server) ensureHTTPHandler() http.Handler {
	s.handlerOnce.Do(func() {
		s.httpHandler = s.buildHTTPHandler()
	})
	return s.httpHandler
}

func (s *Server) buildHTTPHandler() http.Handler {
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middlewareChain()...)

	RegisterSwaggerRoutes(router)
	s.registerRoutes(router)

	return router
}

// registerRoutes регистрирует маршруты навыка
func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.HandleHealth)
	router.POST("/webhook", s.HandleWebhook)

	api := router.Group("/api")
	{
		analyticsAPI := api.Group("/analytics")
		{
			analyticsAPI.GET("/dialogs", s.HandleRecentDialogs)
			analyticsAPI.GET("/intents", s.HandleIntentStats)
		}

		catalogsAPI := api.Group("/catalogs")
		{
			catalogsAPI.GET("/summary", s.HandleCatalogSummary)
		}
	}
}

// HandleHealth служебная проверка живости
// @Summary Проверка живости сервиса
// @Tags service
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "skill-server",
		"uptime":  time.Since(s.startTime).String(),
		"time":    time.Now().Format(time.RFC3339),
	})
}
