package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"planning-bot/internal/app"
	"planning-bot/internal/config"
	"planning-bot/internal/handler"
	"planning-bot/internal/metrics"
	"planning-bot/pkg/telegram"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.SetLevel(cfg.LogLevel)
	logrus.Info("Config initialized...")

	if cfg.TelegramToken == "" {
		logrus.Fatal("could not get bot token")
	}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load planning settings")
	}

	// Обработка сигналов для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	metricsServer := startMetricsServer(cfg.MetricsAddr)

	backend, closeBackend, err := app.OpenBackend(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open planning backend")
	}

	states, closeStates, err := app.OpenStateStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open chat state store")
	}

	services := app.NewServices(backend, cfg, settings)

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		services.Establishments,
		services.Users,
		services.Templates,
		services.Shifts,
		services.Absences,
		services.Planning,
		states,
		settings,
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		botHandler.HandleUpdates(ctx, client.Updates())
	}()

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-ctx.Done()

	client.Stop()
	<-done

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logrus.Infof("Error stopping metrics server: %v", err)
		}
		cancel()
	}

	if err := closeStates(); err != nil {
		logrus.Infof("Error closing state store: %v", err)
	}
	if err := closeBackend(); err != nil {
		logrus.Infof("Error closing backend: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}

func startMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logrus.WithField("addr", addr).Info("Metrics server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Metrics server failed")
		}
	}()
	return srv
}
