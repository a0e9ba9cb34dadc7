package requestid

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey struct{}

var key = ctxKey{}

func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

func Generate() string {
	return uuid.NewString()
}

// Handler adds the session id carried by the context to every record.
type Handler struct {
	slog.Handler
}

func NewHandler(next slog.Handler) *Handler {
	return &Handler{Handler: next}
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if id := FromContext(ctx); id != "" {
		record.AddAttrs(slog.String("session_id", id))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
