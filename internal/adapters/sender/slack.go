package sender

import (
	"context"
	"errors"
	"foremanbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
}

type Slack struct {
	api         SlackAPI
	postWebhook func(ctx context.Context, url string, msg *slack.WebhookMessage) error
}

func NewSlack(api SlackAPI) *Slack {
	return &Slack{api: api, postWebhook: slack.PostWebhookContext}
}

// SendReply answers slash commands through their response_url and messages
// through the Web API.
func (s *Slack) SendReply(ctx context.Context, reply domain.OutboundReply) error {
	origin := reply.Origin
	l := log.With().
		Str("eventId", origin.EventID).
		Str("channel", origin.ChannelID).
		Str("visibility", string(reply.Visibility)).
		Logger()

	if origin.ResponseURL != "" {
		responseType := slack.ResponseTypeInChannel
		if reply.Visibility == domain.Private {
			responseType = slack.ResponseTypeEphemeral
		}

		l.Debug().Msg("posting to response url")
		return s.postWebhook(ctx, origin.ResponseURL, &slack.WebhookMessage{
			Text:         reply.Text,
			ResponseType: responseType,
		})
	}

	if origin.ChannelID == "" {
		return errors.New("slack reply without channel or response url")
	}

	options := []slack.MsgOption{slack.MsgOptionText(reply.Text, false)}
	if origin.ThreadID != "" {
		options = append(options, slack.MsgOptionTS(origin.ThreadID))
	}

	if reply.Visibility == domain.Private {
		l.Debug().Msg("posting ephemeral message")
		_, err := s.api.PostEphemeralContext(ctx, origin.ChannelID, origin.Sender.ID, options...)
		return err
	}

	l.Debug().Msg("posting message")
	_, _, err := s.api.PostMessageContext(ctx, origin.ChannelID, options...)
	return err
}
