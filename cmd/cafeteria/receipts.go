package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/giovaniif/cafeteria/cmd/api"
	"github.com/giovaniif/cafeteria/infra/config"
	"github.com/giovaniif/cafeteria/infra/gateways"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

type receiptSinks struct {
	idempotency protocols.ReceiptIdempotencyGateway
	publisher   protocols.ReceiptPublisher
	checks      map[string]api.HealthCheck
	closers     []func() error
}

func (r *receiptSinks) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i]()
	}
}

// openReceipts connects the configured receipt sink. An unreachable sink
// falls back to the in-memory guard and the log publisher so the cafeteria
// keeps serving.
func openReceipts(ctx context.Context, cfg config.ReceiptConfig, logger *slog.Logger) *receiptSinks {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	sinks := &receiptSinks{
		idempotency: gateways.NewReceiptIdempotencyMemory(),
		publisher:   gateways.NewReceiptLogPublisher(logger),
		checks:      map[string]api.HealthCheck{},
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory receipt idempotency", "addr", cfg.RedisAddr, "error", err)
			_ = rdb.Close()
		} else {
			sinks.idempotency = gateways.NewReceiptIdempotencyRedis(rdb)
			sinks.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			sinks.closers = append(sinks.closers, rdb.Close)
			logger.Info("receipt idempotency: redis", "addr", cfg.RedisAddr)
		}
	}

	switch cfg.Sink {
	case config.SinkKafka:
		publisher := gateways.NewReceiptKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks.use("kafka", publisher, publisher.Ping)
	case config.SinkPostgres:
		publisher, err := gateways.OpenReceiptPostgresPublisher(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres unavailable, logging receipts instead", "error", err)
			break
		}
		sinks.use("postgres", publisher, publisher.Ping)
	case config.SinkMongo:
		publisher, err := gateways.OpenReceiptMongoPublisher(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Warn("mongo unavailable, logging receipts instead", "error", err)
			break
		}
		sinks.use("mongo", publisher, publisher.Ping)
	}
	return sinks
}

func (r *receiptSinks) use(name string, publisher protocols.ReceiptPublisher, check api.HealthCheck) {
	r.publisher = publisher
	r.checks[name] = check
	r.closers = append(r.closers, publisher.Close)
}
