package service

import (
	"context"
	"fmt"
	"foremanbot/internal/core/domain"
	"foremanbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Dispatcher struct {
	lookup port.HostLookup
	l      *zerolog.Logger
}

func NewDispatcher(lookup port.HostLookup) *Dispatcher {
	logger := log.With().Str("component", "dispatcher").Logger()

	return &Dispatcher{lookup: lookup, l: &logger}
}

// Execute carries out a routing decision for event, sending every reply
// through sender. Sequence steps run one after another on the calling
// goroutine; the first failed step aborts the rest.
func (d *Dispatcher) Execute(ctx context.Context, event domain.Event, action domain.Action,
	sender port.ReplySender) error {
	switch a := action.(type) {
	case domain.Ignore:
		return nil

	case domain.Reply:
		return d.send(ctx, sender, event, a.Text, a.Visibility)

	case domain.Delegate:
		return d.send(ctx, sender, event, d.resolve(ctx, event, a.Query), a.Visibility)

	case domain.Sequence:
		for i, step := range a.Steps {
			if err := d.Execute(ctx, event, step, sender); err != nil {
				return fmt.Errorf("staged reply %d of %d: %w", i+1, len(a.Steps), err)
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported action %T", action)
	}
}

func (d *Dispatcher) resolve(ctx context.Context, event domain.Event, query domain.LookupQuery) string {
	origin := event.Source()
	l := d.l.With().
		Str("eventId", origin.EventID).
		Str("hostname", query.Hostname).
		Logger()

	result, err := d.lookup.Lookup(ctx, query)
	if err != nil {
		l.Error().Err(err).Msg("host lookup failed")
		result = domain.LookupFailed{Err: err}
	}

	l.Debug().Str("result", fmt.Sprintf("%T", result)).Msg("host lookup finished")

	return domain.FormatLookup(result, origin.Sender.Mention(origin.Platform))
}

func (d *Dispatcher) send(ctx context.Context, sender port.ReplySender, event domain.Event, text string,
	visibility domain.Visibility) error {
	err := sender.SendReply(ctx, domain.OutboundReply{
		Origin:     event.Source(),
		Text:       text,
		Visibility: visibility,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
