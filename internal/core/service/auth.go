package service

import (
	"crypto/subtle"
	"foremanbot/internal/core/domain"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Verifier decides whether a slash command really came from the chat platform.
type Verifier interface {
	Verify(cmd domain.SlashCommand) bool
}

// TokenVerifier compares the command token with the Slack verification token.
type TokenVerifier struct {
	token []byte
}

func NewTokenVerifier(token string) *TokenVerifier {
	return &TokenVerifier{token: []byte(token)}
}

func (v *TokenVerifier) Verify(cmd domain.SlashCommand) bool {
	if len(v.token) == 0 || cmd.Token == "" {
		return false
	}

	return subtle.ConstantTimeCompare(v.token, []byte(cmd.Token)) == 1
}

// ChatAllowlist accepts commands issued in one of the allowed chats.
type ChatAllowlist struct {
	allowlist []int64
}

func NewChatAllowlist(allowlist []int64) *ChatAllowlist {
	return &ChatAllowlist{allowlist: allowlist}
}

func (a *ChatAllowlist) Verify(cmd domain.SlashCommand) bool {
	chatID, err := strconv.ParseInt(cmd.Origin.ChannelID, 10, 64)
	if err != nil {
		log.Debug().Err(err).Str("channel", cmd.Origin.ChannelID).Msg("channel is not a chat id")
		return false
	}

	for _, id := range a.allowlist {
		if id == chatID {
			return true
		}
	}

	return false
}

// PlatformVerifier picks the verifier registered for the command's platform.
// Platforms without a verifier are rejected.
type PlatformVerifier map[domain.Platform]Verifier

func (p PlatformVerifier) Verify(cmd domain.SlashCommand) bool {
	v, ok := p[cmd.Origin.Platform]
	if !ok || v == nil {
		return false
	}

	return v.Verify(cmd)
}
