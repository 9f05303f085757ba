package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"matchup/internal/config"
	"matchup/internal/db"
	"matchup/internal/events"
	"matchup/internal/handlers"
	"matchup/internal/logging"
	"matchup/internal/services"
	"matchup/internal/store"
	"matchup/internal/websocket"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	st, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open store")
	}
	defer closeStore()

	bus := events.NewBus()
	defer bus.Close()

	hub := websocket.NewHub(logger)
	hubEvents, _ := bus.Subscribe(64)
	go hub.Run(hubEvents)

	if cfg.AMQPURL != "" {
		publisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect amqp")
		}
		defer publisher.Close()
		amqpEvents, _ := bus.Subscribe(256)
		go events.Forward(amqpEvents, publisher)
		logger.WithField("exchange", cfg.AMQPExchange).Info("forwarding events to amqp")
	}

	fields := services.NewFieldService(st)
	matches := services.NewMatchService(st, bus, logger, cfg.DefaultMaxPlayers)
	ledger := services.NewLedgerService(st, bus, logger)
	promotions := services.NewPromotionService(st, bus, logger)

	handler := handlers.New(cfg, fields, matches, ledger, promotions, hub, logger)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"addr": server.Addr, "store": cfg.StoreDriver}).Info("matchup API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown error")
	}
}

func openStore(cfg config.Config, logger logrus.FieldLogger) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := database.Close(); err != nil {
				logger.WithError(err).Warn("close database")
			}
		}
		return store.NewPostgresStore(database, db.NewTxRunner(database, logger)), closeDB, nil
	default:
		if cfg.SeedData {
			now := time.Now().UTC()
			return store.NewSeededMemoryStore(store.DefaultSeed(now), now), func() {}, nil
		}
		return store.NewMemoryStore(), func() {}, nil
	}
}
