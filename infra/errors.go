package infra

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrTimeout = errors.New("timeout error")
	ErrNetwork = errors.New("network error")
)

func NewTimeoutError(details string) error {
	return fmt.Errorf("%w: %s", ErrTimeout, details)
}

func NewNetworkError(details string) error {
	return fmt.Errorf("%w: %s", ErrNetwork, details)
}

// Classify maps a sink error onto ErrTimeout or ErrNetwork so the caller can
// decide whether to retry. Errors that are already classified pass through.
func Classify(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsRetriable(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(fmt.Sprintf("%s: %v", operation, err))
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", operation, err)
	default:
		return NewNetworkError(fmt.Sprintf("%s: %v", operation, err))
	}
}

// IsRetriable reports whether err is a timeout or network failure.
func IsRetriable(err error) bool {
	return err != nil && (errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork))
}
