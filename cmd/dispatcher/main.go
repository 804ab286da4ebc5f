package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	queuehandler "github.com/opticstore/notify-queue/internal/api/handlers/queue"
	"github.com/opticstore/notify-queue/internal/api/router"
	"github.com/opticstore/notify-queue/internal/api/server"
	"github.com/opticstore/notify-queue/internal/config"
	"github.com/opticstore/notify-queue/internal/delivery"
	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/rabbitmq/handlers/event"
	eventqueue "github.com/opticstore/notify-queue/internal/rabbitmq/queue"
	dlogrepo "github.com/opticstore/notify-queue/internal/repository/deliverylog"
	endpointrepo "github.com/opticstore/notify-queue/internal/repository/endpoint"
	queuerepo "github.com/opticstore/notify-queue/internal/repository/queue"
	settingsrepo "github.com/opticstore/notify-queue/internal/repository/settings"
	"github.com/opticstore/notify-queue/internal/resolver"
	"github.com/opticstore/notify-queue/internal/scheduler"
	queuesvc "github.com/opticstore/notify-queue/internal/service/queue"
	"github.com/opticstore/notify-queue/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))

	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	jobRepo := queuerepo.NewRepository(db)
	endpointRepo := endpointrepo.NewRepository(db)
	logRepo := dlogrepo.NewRepository(db)
	settingsRepo := settingsrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)

	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	adapters := map[string]delivery.Adapter{
		model.EndpointPush: delivery.NewPushAdapter(
			cfg.Push.Subscriber,
			cfg.Push.VAPIDPublicKey,
			cfg.Push.VAPIDPrivateKey,
			cfg.Push.TTL,
		),
		model.EndpointWhatsApp: delivery.NewChatAdapter(cfg.WhatsApp.APIURL, cfg.WhatsApp.Token),
		model.EndpointEmail: delivery.NewEmailAdapter(
			cfg.Email.SMTPHost,
			smtpPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
		),
	}

	res := resolver.New(endpointRepo)
	w := worker.NewWorker(jobRepo, endpointRepo, logRepo, settingsRepo, res, adapters, cfg.Worker.MaxAttempts)
	service := queuesvc.NewService(jobRepo, logRepo, rdb)

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	events, err := eventqueue.NewEventQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create event queue")
	}

	eventHandler := event.NewHandler(service)

	eventChan := make(chan eventqueue.EventMessage)

	go func() {
		if err := events.Consume(eventChan, cfg.Retry); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume events")
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-eventChan:
				if !ok {
					return
				}

				eventHandler.HandleEvent(ctx, msg, cfg.Retry)
			}
		}
	}()

	sched := scheduler.New(w, cfg.Worker.Schedule, cfg.Worker.BatchSize)
	if err := sched.Start(ctx); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to start scheduler")
	}

	h := queuehandler.NewHandler(service, w, val, cfg)
	r := router.New(h)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	sched.Stop()

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
