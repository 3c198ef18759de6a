package service

import (
	"context"
	"fmt"
	"foremanbot/internal/core/domain"
	"foremanbot/internal/core/port"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Router struct {
	greetings map[string]struct{}
	commands  port.CommandRegistry
	verifier  Verifier
	l         *zerolog.Logger
}

func NewRouter(greetings []string, commands port.CommandRegistry, verifier Verifier) *Router {
	logger := log.With().Str("component", "router").Logger()

	set := make(map[string]struct{}, len(greetings))
	for _, g := range greetings {
		set[strings.ToLower(strings.TrimSpace(g))] = struct{}{}
	}

	return &Router{
		greetings: set,
		commands:  commands,
		verifier:  verifier,
		l:         &logger,
	}
}

// Route classifies an event. It never sends anything itself.
func (r *Router) Route(_ context.Context, event domain.Event) domain.Action {
	origin := event.Source()
	l := r.l.With().
		Str("eventId", origin.EventID).
		Str("platform", string(origin.Platform)).
		Str("event", event.Name()).
		Logger()

	switch e := event.(type) {
	case domain.ChannelJoin:
		l.Info().Str("channel", origin.ChannelID).Msg("joined channel")
		return domain.Reply{Text: domain.JoinMessage, Visibility: domain.Public}

	case domain.Message:
		if r.isGreeting(e.Text) {
			l.Debug().Msg("heard greeting")
			return domain.Reply{Text: domain.GreetingMessage, Visibility: domain.Public}
		}

		query := domain.ParseLookupQuery(e.Text)
		l.Debug().Str("hostname", query.Hostname).Msg("delegating host lookup")
		return domain.Delegate{Query: query, Visibility: domain.Public}

	case domain.SlashCommand:
		if !r.verifier.Verify(e) {
			l.Warn().
				Str("command", e.Command).
				Str("sender", origin.Sender.ID).
				Str("channel", origin.ChannelID).
				Msg("ignoring unverified slash command")
			return domain.Ignore{}
		}

		handler, err := r.commands.Get(e.Command)
		if err != nil {
			l.Info().Err(err).Str("command", e.Command).Msg("unknown command")
			return domain.Reply{Text: fmt.Sprintf(domain.UnknownCommand, e.Command), Visibility: domain.Public}
		}

		l.Debug().Str("command", e.Command).Msg("handling command")
		return handler.Plan(e)
	}

	l.Debug().Msg("no route for event")
	return domain.Ignore{}
}

func (r *Router) isGreeting(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(c rune) bool {
			return unicode.IsPunct(c) || unicode.IsSymbol(c)
		})
		if _, ok := r.greetings[word]; ok {
			return true
		}
	}

	return false
}
