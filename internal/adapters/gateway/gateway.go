package gateway

import (
	"foremanbot/internal/core/domain"
	"foremanbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// EventHandler receives translated platform events.
type EventHandler interface {
	Handle(event domain.Event, sender port.ReplySender)
}

// eventID keeps the platform id when there is one and falls back to a random id.
func eventID(platformID string) string {
	if platformID != "" {
		return platformID
	}

	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate event id")
		return ""
	}

	return id.String()
}
