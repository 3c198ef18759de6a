package sender

import (
	"context"
	"fmt"
	"foremanbot/internal/core/domain"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const TelegramMessageLimit = 4096

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// SendReply answers the source message in its chat. Telegram has no
// ephemeral messages, so every visibility is posted to the chat. Long texts
// are split and sent in order.
func (s *Telegram) SendReply(ctx context.Context, reply domain.OutboundReply) error {
	chatID, err := strconv.ParseInt(reply.Origin.ChannelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", reply.Origin.ChannelID, err)
	}

	var replyParams *models.ReplyParameters
	if messageID, err := strconv.Atoi(reply.Origin.MessageID); err == nil {
		replyParams = &models.ReplyParameters{
			MessageID:                messageID,
			ChatID:                   chatID,
			AllowSendingWithoutReply: true,
		}
	}

	for i, chunk := range chunkText(reply.Text, TelegramMessageLimit) {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			Text:            chunk,
			ReplyParameters: replyParams,
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", chatID).Int("chunk", i).Msg("failed to send telegram message")
			return err
		}
	}

	return nil
}

func chunkText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}
