// @title Showroom Skill API
// @version 1.0
// @description Вебхук голосового навыка мебельного салона и служебный API аналитики диалогов.

// @host localhost:9999
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"skillserver/catalog"
	"skillserver/database"
	"skillserver/internal/config"
	"skillserver/server"
)

func main() {
	// Базовая конфигурация из окружения: без нее не узнать даже путь
	// к сервисной базе
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Config load failed", "error", err.Error())
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	serviceDB, err := database.NewServiceDBWithConfig(cfg.ServiceDatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("Service DB open failed", "error", err.Error())
		os.Exit(1)
	}
	defer serviceDB.Close()
	slog.Info("Service DB ready", "path", cfg.ServiceDatabasePath)

	// Перечитываем конфигурацию: сохраненная в базе старше окружения
	cfg, err = config.LoadConfig(serviceDB)
	if err != nil {
		slog.Error("Config reload failed", "error", err.Error())
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	// Действующая конфигурация переживает перезапуск
	if err := config.SaveConfig(cfg, serviceDB); err != nil {
		slog.Warn("Config persist failed", "error", err.Error())
	}

	store := catalog.NewStore(cfg.DataDir)

	srv := server.NewServer(cfg, store, serviceDB)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("Server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

// setupLogging настраивает глобальный slog по уровню из конфигурации
func setupLogging(level string) {
	var slogLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		slogLevel = slog.LevelDebug
	case "WARN":
		slogLevel = slog.LevelWarn
	case "ERROR":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}
