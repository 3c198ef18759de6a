package command

import (
	"errors"
	"foremanbot/internal/core/port"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[NormalizeCommand(handler.GetCommand())] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[NormalizeCommand(command)]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// NormalizeCommand lower-cases a command and strips a Telegram style "@botname" suffix.
func NormalizeCommand(command string) string {
	command = strings.ToLower(strings.TrimSpace(command))
	if name, _, found := strings.Cut(command, "@"); found {
		return name
	}
	return command
}

func ParseCommandArgs(args string) string {
	_, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	return strings.TrimSpace(rest)
}

func ParseCommand(args string) string {
	command, _, _ := strings.Cut(strings.TrimSpace(args), " ")
	return NormalizeCommand(command)
}
