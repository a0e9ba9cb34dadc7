package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/giovaniif/cafeteria/infra"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/redis/go-redis/v9"
)

const (
	receiptKeyPrefix = "idempotency:receipt:"
	receiptKeyTTL    = 24 * time.Hour
)

type redisReceiptState struct {
	Status string                          `json:"status"`
	Result *protocols.IdempotencyKeyResult `json:"result,omitempty"`
}

type ReceiptIdempotencyRedis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReceiptIdempotencyRedis(client *redis.Client) *ReceiptIdempotencyRedis {
	return &ReceiptIdempotencyRedis{client: client, ttl: receiptKeyTTL}
}

func (g *ReceiptIdempotencyRedis) key(idempotencyKey string) string {
	return receiptKeyPrefix + idempotencyKey
}

func (g *ReceiptIdempotencyRedis) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	k := g.key(idempotencyKey)
	processing, _ := json.Marshal(redisReceiptState{Status: statusProcessing})

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		_, err := g.client.SetArgs(ctx, k, processing, redis.SetArgs{Mode: "NX", TTL: g.ttl}).Result()
		if err == nil {
			return nil, nil
		}
		if !errors.Is(err, redis.Nil) {
			return nil, infra.Classify("redis set", err)
		}

		data, err := g.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			// expired between SET and GET
			continue
		}
		if err != nil {
			return nil, infra.Classify("redis get", err)
		}

		var state redisReceiptState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("decode receipt state %s: %w", k, err)
		}
		switch state.Status {
		case statusSuccess:
			return state.Result, nil
		case statusProcessing:
			return nil, ErrKeyInProgress
		default:
			if err := g.client.Del(ctx, k).Err(); err != nil {
				return nil, infra.Classify("redis del", err)
			}
		}
	}
}

func (g *ReceiptIdempotencyRedis) MarkFailure(ctx context.Context, idempotencyKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return infra.Classify("redis del", g.client.Del(ctx, g.key(idempotencyKey)).Err())
}

func (g *ReceiptIdempotencyRedis) MarkSuccess(ctx context.Context, idempotencyKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(redisReceiptState{
		Status: statusSuccess,
		Result: &protocols.IdempotencyKeyResult{Success: true},
	})
	if err != nil {
		return err
	}
	return infra.Classify("redis set", g.client.Set(ctx, g.key(idempotencyKey), raw, g.ttl).Err())
}
