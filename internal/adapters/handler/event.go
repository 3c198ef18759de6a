package handler

import (
	"context"
	"foremanbot/internal/adapters/metrics"
	"foremanbot/internal/core/domain"
	"foremanbot/internal/core/port"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog/log"
)

type Router interface {
	Route(ctx context.Context, event domain.Event) domain.Action
}

type Executor interface {
	Execute(ctx context.Context, event domain.Event, action domain.Action, sender port.ReplySender) error
}

// Event is the entry point for the chat gateways. Handle never blocks the
// caller; events run concurrently on a bounded worker pool.
type Event struct {
	router   Router
	executor Executor
	pool     *workerpool.WorkerPool
	timeout  time.Duration
	metrics  *metrics.Metrics
}

func NewEvent(router Router, executor Executor, workers int, timeout time.Duration,
	m *metrics.Metrics) *Event {
	if workers < 1 {
		workers = 1
	}

	return &Event{
		router:   router,
		executor: executor,
		pool:     workerpool.New(workers),
		timeout:  timeout,
		metrics:  m,
	}
}

func (h *Event) Handle(event domain.Event, sender port.ReplySender) {
	origin := event.Source()
	l := log.With().
		Str("eventId", origin.EventID).
		Str("platform", string(origin.Platform)).
		Str("channel", origin.ChannelID).
		Str("event", event.Name()).
		Logger()

	l.Debug().Int("queued", h.pool.WaitingQueueSize()).Msg("received event")

	h.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		action := h.router.Route(ctx, event)
		h.metrics.RecordEvent(string(origin.Platform), event.Name(), action.Kind())

		if err := h.executor.Execute(ctx, event, action, sender); err != nil {
			h.metrics.RecordHandled(string(origin.Platform), "error")
			l.Err(err).Str("action", action.Kind()).Msg("failed to handle event")
			return
		}

		h.metrics.RecordHandled(string(origin.Platform), "ok")
		l.Debug().Str("action", action.Kind()).Msg("handled event")
	})
}

// Stop waits for queued events to finish and releases the workers.
func (h *Event) Stop() {
	h.pool.StopWait()
}
