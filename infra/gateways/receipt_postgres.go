package gateways

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/giovaniif/cafeteria/infra"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/lib/pq"
)

const createReceiptsTable = `
CREATE TABLE IF NOT EXISTS receipts (
	session_id     TEXT PRIMARY KEY,
	customer       TEXT NOT NULL,
	total_quantity INTEGER NOT NULL,
	total_price    NUMERIC(12, 2) NOT NULL,
	lines          JSONB NOT NULL,
	paid_at        TIMESTAMPTZ NOT NULL
)`

const insertReceipt = `
INSERT INTO receipts (session_id, customer, total_quantity, total_price, lines, paid_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (session_id) DO NOTHING`

type ReceiptPostgresPublisher struct {
	db *sql.DB
}

func OpenReceiptPostgresPublisher(ctx context.Context, databaseURL string) (*ReceiptPostgresPublisher, error) {
	connector, err := pq.NewConnector(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, infra.Classify("postgres ping", err)
	}
	if _, err := db.ExecContext(ctx, createReceiptsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create receipts table: %w", err)
	}
	return &ReceiptPostgresPublisher{db: db}, nil
}

func (p *ReceiptPostgresPublisher) Publish(ctx context.Context, receipt protocols.Receipt) error {
	lines, err := json.Marshal(receipt.Lines)
	if err != nil {
		return fmt.Errorf("encode receipt lines: %w", err)
	}
	_, err = p.db.ExecContext(ctx, insertReceipt,
		receipt.SessionId,
		receipt.Customer,
		receipt.TotalQuantity,
		receipt.TotalPrice,
		string(lines),
		receipt.PaidAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// the server answered, retrying will not help
		return fmt.Errorf("insert receipt %s: %s: %w", receipt.SessionId, pqErr.Code.Name(), err)
	}
	return infra.Classify("postgres insert", err)
}

func (p *ReceiptPostgresPublisher) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *ReceiptPostgresPublisher) Close() error {
	return p.db.Close()
}
