package port

import (
	"context"
	"foremanbot/internal/core/domain"
)

type ReplySender interface {
	// SendReply delivers a reply to the conversation the originating event came from. It returns once the
	// platform acknowledged the message.
	SendReply(ctx context.Context, reply domain.OutboundReply) error
}
