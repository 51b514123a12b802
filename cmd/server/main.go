package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vogiaan1904/codeclash/config"
	httpDelivery "github.com/vogiaan1904/codeclash/internal/delivery/http"
	"github.com/vogiaan1904/codeclash/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/codeclash/internal/infra/redis"
	repo "github.com/vogiaan1904/codeclash/internal/repository/redis"
	"github.com/vogiaan1904/codeclash/internal/service"
	pkgKafka "github.com/vogiaan1904/codeclash/pkg/kafka"
	pkgLog "github.com/vogiaan1904/codeclash/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})

	redisCli, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
	}
	defer redis.Disconnect(redisCli)

	qRepo := repo.NewRedisQueueRepository(redisCli, l)
	roomRepo := repo.NewRedisRoomRepository(redisCli, l)
	msgRepo := repo.NewRedisMessageRepository(redisCli, l)
	questionRepo := repo.NewRedisQuestionRepository(redisCli, l)

	// Kafka is optional: without it the matchmaking flow is unchanged,
	// only the lifecycle events are skipped.
	var prod producer.Producer
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}

		prod = producer.NewProducer(kafkaSyncProd, l)
		defer prod.Close()
	}

	mmSvc := service.NewMatchmakingService(qRepo, roomRepo, msgRepo, questionRepo, prod, cfg.Matchmaking, l)
	roomSvc := service.NewRoomService(roomRepo, msgRepo, questionRepo, cfg.Matchmaking, l)
	questionSvc := service.NewQuestionService(questionRepo, l)
	healthSvc := service.NewHealthService(redisCli, questionRepo, qRepo, l)

	h := httpDelivery.NewHTTPHandler(mmSvc, roomSvc, questionSvc, healthSvc, l)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      httpDelivery.NewRouter(h, l),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		l.Infof(ctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf(ctx, "Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info(ctx, "Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Errorf(ctx, "HTTP server shutdown: %v", err)
	}

	l.Info(ctx, "Server exited")
}
