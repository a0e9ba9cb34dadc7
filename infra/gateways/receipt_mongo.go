package gateways

import (
	"context"
	"fmt"

	"github.com/giovaniif/cafeteria/infra"
	"github.com/giovaniif/cafeteria/protocols"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ReceiptMongoPublisher struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func OpenReceiptMongoPublisher(ctx context.Context, uri, database string) (*ReceiptMongoPublisher, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, infra.Classify("mongo ping", err)
	}
	return &ReceiptMongoPublisher{
		client:     client,
		collection: client.Database(database).Collection("receipts"),
	}, nil
}

func (p *ReceiptMongoPublisher) Publish(ctx context.Context, receipt protocols.Receipt) error {
	_, err := p.collection.InsertOne(ctx, receipt)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return infra.Classify("mongo insert", err)
}

func (p *ReceiptMongoPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

func (p *ReceiptMongoPublisher) Close() error {
	return p.client.Disconnect(context.Background())
}
