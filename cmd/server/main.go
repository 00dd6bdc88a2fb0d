package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/api"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/config"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/events"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/logging"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/notifier"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/rules"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/schedule"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	thresholds := rules.DefaultTable
	if err := thresholds.Validate(); err != nil {
		logger.Fatalf("invalid threshold table: %v", err)
	}
	guidance := rules.DefaultChecklist
	if err := guidance.Validate(); err != nil {
		logger.Fatalf("invalid checklist table: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend store.Store
	switch cfg.Data.Backend {
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.Data.DSN)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pg.Close()
		backend = pg
	default:
		backend = store.NewWorkbook(cfg.Data.Workbook)
	}
	logger.Infof("using %s storage backend", cfg.Data.Backend)

	readings := store.NewReadings(backend, logger)
	checklist := store.NewChecklist(backend, guidance, logger)

	hub := api.NewHub(logger)

	gateways := notifier.Fanout{hub}
	if cfg.TelegramEnabled() {
		tg, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatalf("failed to initialize telegram gateway: %v", err)
		}
		gateways = append(gateways, tg)
		logger.Info("telegram gateway enabled")
	}
	if cfg.EmailEnabled() {
		em, err := notifier.NewEmail(cfg.Email.SMTPServer, cfg.Email.SMTPPort, cfg.Email.Username, cfg.Email.Password, cfg.Email.Recipient, logger)
		if err != nil {
			logger.Fatalf("failed to initialize email gateway: %v", err)
		}
		gateways = append(gateways, em)
		logger.Info("email gateway enabled")
	}
	if len(gateways) == 1 {
		gateways = append(gateways, notifier.NewLog(logger))
	}

	var publisher *events.Publisher
	if cfg.KafkaEnabled() {
		publisher = events.NewPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		defer publisher.Close()
		logger.Infof("publishing alert events to %s/%s", cfg.Kafka.Broker, cfg.Kafka.Topic)
	}

	resolver, err := schedule.NewResolver(models.Slots)
	if err != nil {
		logger.Fatalf("invalid slot schedule: %v", err)
	}
	detector := schedule.NewDetector(readings, logger)
	reminder := schedule.NewReminder(resolver, detector, gateways, publisher, logger)

	handler := api.NewHandler(readings, checklist, thresholds, guidance, reminder, logger)
	router := api.NewRouter(cfg.API.BasePath, handler, hub, logger)

	srv := &http.Server{
		Addr:    cfg.API.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("server listening on %s", cfg.API.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
