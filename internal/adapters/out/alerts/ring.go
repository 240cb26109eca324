// Package alerts is the operator alert channel: alerts are logged and kept in
// a bounded in-memory ring for the alerts endpoint.
package alerts

import (
	"context"
	"log/slog"
	"sync"

	"atelier/internal/core/ports"
)

const DefaultCapacity = 256

// Ring keeps the latest alerts. When full, the oldest alert is dropped.
type Ring struct {
	mu     sync.Mutex
	buf    []ports.Alert
	next   int
	full   bool
	logger *slog.Logger
}

func NewRing(capacity int, logger *slog.Logger) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		buf:    make([]ports.Alert, capacity),
		logger: logger.With("component", "alerts"),
	}
}

func (r *Ring) Notify(ctx context.Context, alert ports.Alert) {
	r.logger.WarnContext(ctx, alert.Message,
		"kind", string(alert.Kind),
		"subject", alert.Subject,
		"at", alert.At,
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = alert
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

// Recent returns up to limit alerts, newest first. A limit <= 0 returns all.
func (r *Ring) Recent(_ context.Context, limit int) ([]ports.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.full {
		size = len(r.buf)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]ports.Alert, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}

	return out, nil
}
