package gateways

import (
	"context"
	"errors"
	"sync"

	"github.com/giovaniif/cafeteria/protocols"
)

var ErrKeyInProgress = errors.New("idempotency key is already being processed")

const (
	statusProcessing = "processing"
	statusSuccess    = "success"
)

type receiptState struct {
	Status string
	Result *protocols.IdempotencyKeyResult
}

type ReceiptIdempotencyMemory struct {
	mutex sync.Mutex
	keys  map[string]*receiptState
}

func NewReceiptIdempotencyMemory() *ReceiptIdempotencyMemory {
	return &ReceiptIdempotencyMemory{keys: make(map[string]*receiptState)}
}

// ReserveIdempotencyKey returns a stored result when the key already
// succeeded, nil when the caller now owns the key.
func (g *ReceiptIdempotencyMemory) ReserveIdempotencyKey(_ context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if state, exists := g.keys[idempotencyKey]; exists {
		switch state.Status {
		case statusSuccess:
			return state.Result, nil
		case statusProcessing:
			return nil, ErrKeyInProgress
		}
	}
	g.keys[idempotencyKey] = &receiptState{Status: statusProcessing}
	return nil, nil
}

func (g *ReceiptIdempotencyMemory) MarkFailure(_ context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.keys, idempotencyKey)
	return nil
}

func (g *ReceiptIdempotencyMemory) MarkSuccess(_ context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if state, exists := g.keys[idempotencyKey]; exists {
		state.Status = statusSuccess
		state.Result = &protocols.IdempotencyKeyResult{Success: true}
	}
	return nil
}
