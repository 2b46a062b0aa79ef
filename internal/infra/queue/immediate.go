package queue

import (
	"context"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

// HandlerQueue supports setting a handler for job delivery.
type HandlerQueue interface {
	wellbeing.JobQueue
	SetHandler(handler Handler)
	Stop()
}

// Handler executes a delivered job.
type Handler func(ctx context.Context, name string, payload map[string]any)

// ImmediateQueue calls the handler in a goroutine on enqueue.
type ImmediateQueue struct {
	handler Handler
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler) *ImmediateQueue {
	return &ImmediateQueue{handler: handler}
}

// SetHandler replaces the handler used for queued jobs.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.handler = handler
}

// Enqueue invokes the handler asynchronously. The job outlives the request that enqueued it.
func (q *ImmediateQueue) Enqueue(ctx context.Context, name string, payload any) error {
	typed, ok := payload.(map[string]any)
	if !ok {
		typed = map[string]any{}
	}
	if q.handler == nil {
		return nil
	}
	go q.handler(context.WithoutCancel(ctx), name, typed)
	return nil
}

// Stop is a no-op; in-flight goroutines finish on their own.
func (q *ImmediateQueue) Stop() {}

var _ HandlerQueue = (*ImmediateQueue)(nil)
