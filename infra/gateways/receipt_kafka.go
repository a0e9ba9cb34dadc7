package gateways

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/giovaniif/cafeteria/infra"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ReceiptKafkaPublisher struct {
	writer  kafkaWriter
	brokers []string
}

func NewReceiptKafkaPublisher(brokers []string, topic string) *ReceiptKafkaPublisher {
	return &ReceiptKafkaPublisher{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *ReceiptKafkaPublisher) Publish(ctx context.Context, receipt protocols.Receipt) error {
	value, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("encode receipt %s: %w", receipt.SessionId, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(receipt.SessionId),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	return infra.Classify("kafka write", err)
}

// Ping dials the first reachable broker.
func (p *ReceiptKafkaPublisher) Ping(ctx context.Context) error {
	var dialer kafka.Dialer
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err == nil {
			return conn.Close()
		}
		lastErr = err
	}
	if lastErr == nil {
		return fmt.Errorf("no kafka brokers configured")
	}
	return lastErr
}

func (p *ReceiptKafkaPublisher) Close() error {
	return p.writer.Close()
}
