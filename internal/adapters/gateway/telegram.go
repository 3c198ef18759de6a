package gateway

import (
	"context"
	"fmt"
	"foremanbot/internal/adapters/sender"
	"foremanbot/internal/core/domain"
	"foremanbot/internal/core/domain/command"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Telegram long-polls the Bot API and translates updates into events.
type Telegram struct {
	bot         *bot.Bot
	handler     EventHandler
	sender      *sender.Telegram
	botID       int64
	botUsername string
	l           *zerolog.Logger
}

func NewTelegram(token string, handler EventHandler) (*Telegram, error) {
	logger := log.With().Str("component", "gateway").Str("platform", string(domain.Telegram)).Logger()

	t := &Telegram{handler: handler, l: &logger}

	b, err := bot.New(token, bot.WithDefaultHandler(t.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	t.bot = b
	t.sender = sender.NewTelegram(b)

	return t, nil
}

// Run blocks until ctx is done.
func (t *Telegram) Run(ctx context.Context) error {
	me, err := t.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("telegram getMe failed: %w", err)
	}
	t.botID = me.ID
	t.botUsername = me.Username

	t.l.Info().Str("username", me.Username).Msg("telegram bot listening")
	t.bot.Start(ctx)

	return nil
}

func (t *Telegram) handleUpdate(_ context.Context, _ *bot.Bot, update *models.Update) {
	event, ok := eventFromUpdate(update, t.botID, t.botUsername)
	if !ok {
		return
	}

	t.handler.Handle(event, t.sender)
}

func eventFromUpdate(update *models.Update, botID int64, botUsername string) (domain.Event, bool) {
	if update == nil || update.Message == nil {
		return nil, false
	}

	msg := update.Message
	origin := domain.Origin{
		EventID:   eventID(""),
		Platform:  domain.Telegram,
		ChannelID: strconv.FormatInt(msg.Chat.ID, 10),
		MessageID: strconv.Itoa(msg.ID),
	}
	if msg.From != nil {
		if msg.From.IsBot {
			return nil, false
		}
		origin.Sender = domain.Sender{
			ID:   strconv.FormatInt(msg.From.ID, 10),
			Name: getUserNameOrFirstName(msg.From),
		}
	}

	for _, member := range msg.NewChatMembers {
		if member.ID == botID {
			return domain.ChannelJoin{Origin: origin}, true
		}
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil, false
	}

	if strings.HasPrefix(text, "/") {
		first, _, _ := strings.Cut(text, " ")
		if _, target, found := strings.Cut(first, "@"); found && !strings.EqualFold(target, botUsername) {
			return nil, false
		}

		return domain.SlashCommand{
			Origin:  origin,
			Command: command.ParseCommand(text),
			Text:    command.ParseCommandArgs(text),
		}, true
	}

	if msg.Chat.Type == models.ChatTypePrivate {
		return domain.Message{Origin: origin, Kind: domain.DirectMessage, Text: text}, true
	}

	if botUsername == "" {
		return nil, false
	}

	handle := "@" + strings.ToLower(botUsername)
	lowered := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lowered, handle):
		return domain.Message{Origin: origin, Kind: domain.DirectMention, Text: text}, true
	case strings.Contains(lowered, handle):
		return domain.Message{Origin: origin, Kind: domain.Mention, Text: text}, true
	}

	return nil, false
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
