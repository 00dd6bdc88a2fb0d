package main

import (
	"context"
	"log"
	"time"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/config"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/events"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/logging"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/notifier"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/schedule"
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/store"
)

// One-shot reminder cycle, meant to run from cron every few minutes.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	readings := store.NewReadings(backend, logger)

	var gateways notifier.Fanout
	if cfg.TelegramEnabled() {
		tg, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatalf("failed to initialize telegram gateway: %v", err)
		}
		gateways = append(gateways, tg)
	}
	if cfg.EmailEnabled() {
		em, err := notifier.NewEmail(cfg.Email.SMTPServer, cfg.Email.SMTPPort, cfg.Email.Username, cfg.Email.Password, cfg.Email.Recipient, logger)
		if err != nil {
			logger.Fatalf("failed to initialize email gateway: %v", err)
		}
		gateways = append(gateways, em)
	}
	if len(gateways) == 0 {
		gateways = append(gateways, notifier.NewLog(logger))
	}

	var publisher *events.Publisher
	if cfg.KafkaEnabled() {
		publisher = events.NewPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		defer publisher.Close()
	}

	resolver, err := schedule.NewResolver(models.Slots)
	if err != nil {
		logger.Fatalf("invalid slot schedule: %v", err)
	}
	detector := schedule.NewDetector(readings, logger)
	reminder := schedule.NewReminder(resolver, detector, gateways, publisher, logger)

	outcome := reminder.Run(ctx, time.Now())
	logger.Infof("reminder cycle finished: action=%s slot=%s notified=%t delivered=%t",
		outcome.Action, outcome.Slot, outcome.Notified, outcome.Delivered)
}
