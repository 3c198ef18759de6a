package gateway

import (
	"context"
	"errors"
	"fmt"
	"foremanbot/internal/adapters/sender"
	"foremanbot/internal/core/domain"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// Slack connects to Slack over Socket Mode and also accepts slash commands
// posted to an HTTP request URL.
type Slack struct {
	api       *slack.Client
	client    *socketmode.Client
	handler   EventHandler
	sender    *sender.Slack
	botUserID string
	l         *zerolog.Logger
}

func NewSlack(botToken, appToken string, handler EventHandler) *Slack {
	logger := log.With().Str("component", "gateway").Str("platform", string(domain.Slack)).Logger()

	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))

	return &Slack{
		api:     api,
		client:  socketmode.New(api),
		handler: handler,
		sender:  sender.NewSlack(api),
		l:       &logger,
	}
}

// Run blocks until ctx is done or the socket mode connection fails for good.
func (s *Slack) Run(ctx context.Context) error {
	auth, err := s.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test failed: %w", err)
	}
	s.botUserID = auth.UserID
	s.l.Info().Str("botUser", auth.UserID).Str("team", auth.Team).Msg("slack session authenticated")

	go s.listen(ctx)

	err = s.client.RunContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("slack socket mode stopped: %w", err)
	}

	return nil
}

func (s *Slack) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-s.client.Events:
			if !ok {
				return
			}
			s.dispatch(evt)
		}
	}
}

func (s *Slack) dispatch(evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		s.l.Info().Msg("connecting to slack")
	case socketmode.EventTypeConnected:
		s.l.Info().Msg("slack socket connected")
	case socketmode.EventTypeConnectionError:
		s.l.Warn().Interface("data", evt.Data).Msg("slack connection error")
	case socketmode.EventTypeDisconnect:
		s.l.Warn().Msg("slack socket disconnected")

	case socketmode.EventTypeEventsAPI:
		if evt.Request != nil {
			s.client.Ack(*evt.Request)
		}

		apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			s.l.Warn().Str("type", string(evt.Type)).Msg("unexpected events api payload")
			return
		}

		event, ok := eventFromEventsAPI(apiEvent, s.botUserID)
		if !ok {
			s.l.Trace().Str("inner", apiEvent.InnerEvent.Type).Msg("ignoring slack event")
			return
		}
		s.handler.Handle(event, s.sender)

	case socketmode.EventTypeSlashCommand:
		if evt.Request != nil {
			s.client.Ack(*evt.Request)
		}

		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok {
			s.l.Warn().Str("type", string(evt.Type)).Msg("unexpected slash command payload")
			return
		}
		s.handler.Handle(eventFromSlashCommand(cmd), s.sender)

	default:
		s.l.Trace().Str("type", string(evt.Type)).Msg("unhandled socket mode event")
	}
}

// CommandHandler serves slash commands configured with an HTTP request URL.
func (s *Slack) CommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			s.l.Warn().Err(err).Msg("failed to parse slash command")
			http.Error(w, "invalid slash command", http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		s.handler.Handle(eventFromSlashCommand(cmd), s.sender)
	}
}

func eventFromSlashCommand(cmd slack.SlashCommand) domain.SlashCommand {
	return domain.SlashCommand{
		Origin: domain.Origin{
			EventID:     eventID(cmd.TriggerID),
			Platform:    domain.Slack,
			ChannelID:   cmd.ChannelID,
			ResponseURL: cmd.ResponseURL,
			Sender:      domain.Sender{ID: cmd.UserID, Name: cmd.UserName},
		},
		Command: cmd.Command,
		Text:    cmd.Text,
		Token:   cmd.Token,
	}
}

func eventFromEventsAPI(apiEvent slackevents.EventsAPIEvent, botUserID string) (domain.Event, bool) {
	if apiEvent.Type != slackevents.CallbackEvent {
		return nil, false
	}

	switch ev := apiEvent.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		if ev.BotID != "" {
			return nil, false
		}

		kind := domain.Mention
		if botUserID != "" && strings.HasPrefix(strings.TrimSpace(ev.Text), "<@"+botUserID+">") {
			kind = domain.DirectMention
		}

		return domain.Message{
			Origin: domain.Origin{
				EventID:   eventID(ev.TimeStamp),
				Platform:  domain.Slack,
				ChannelID: ev.Channel,
				MessageID: ev.TimeStamp,
				ThreadID:  ev.ThreadTimeStamp,
				Sender:    domain.Sender{ID: ev.User},
			},
			Kind: kind,
			Text: ev.Text,
		}, true

	case *slackevents.MessageEvent:
		// Mentions in channels arrive as app_mention; only direct messages are taken from here.
		if ev.ChannelType != "im" || ev.BotID != "" || ev.SubType != "" || ev.User == botUserID {
			return nil, false
		}

		return domain.Message{
			Origin: domain.Origin{
				EventID:   eventID(ev.TimeStamp),
				Platform:  domain.Slack,
				ChannelID: ev.Channel,
				MessageID: ev.TimeStamp,
				ThreadID:  ev.ThreadTimeStamp,
				Sender:    domain.Sender{ID: ev.User},
			},
			Kind: domain.DirectMessage,
			Text: ev.Text,
		}, true

	case *slackevents.MemberJoinedChannelEvent:
		if botUserID == "" || ev.User != botUserID {
			return nil, false
		}

		return domain.ChannelJoin{
			Origin: domain.Origin{
				EventID:   eventID(""),
				Platform:  domain.Slack,
				ChannelID: ev.Channel,
				Sender:    domain.Sender{ID: ev.Inviter},
			},
		}, true
	}

	return nil, false
}
