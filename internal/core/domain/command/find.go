package command

import (
	"fmt"
	"foremanbot/internal/core/domain"
	"strings"

	"github.com/rs/zerolog/log"
)

// Find answers "/f <hostname>" with a staged reply: an immediate public
// acknowledgement followed by the delayed lookup result.
type Find struct {
	command string
}

func NewFind(command string) *Find {
	return &Find{command: command}
}

func (f *Find) GetCommand() string {
	return f.command
}

const (
	findHelp    = "I find things. Try typing `%s thing I want`."
	findPending = "Looking for `%s`..."
)

func (f *Find) Plan(cmd domain.SlashCommand) domain.Action {
	args := strings.TrimSpace(cmd.Text)

	log.Debug().
		Str("command", f.command).
		Str("eventId", cmd.Origin.EventID).
		Str("args", args).
		Msg("planning find")

	if args == "" || strings.EqualFold(args, "help") {
		return domain.Reply{Text: fmt.Sprintf(findHelp, f.command), Visibility: domain.Private}
	}

	return domain.Sequence{Steps: []domain.Action{
		domain.Reply{Text: fmt.Sprintf(findPending, args), Visibility: domain.Public},
		domain.Delegate{Query: domain.NewLookupQuery(args), Visibility: domain.PublicDelayed},
	}}
}
