package domain

type Platform string

const (
	Slack    Platform = "slack"
	Telegram Platform = "telegram"
)

type Visibility string

const (
	Private       Visibility = "private"
	Public        Visibility = "public"
	PublicDelayed Visibility = "public_delayed"
)

type MessageKind string

const (
	DirectMessage MessageKind = "direct_message"
	Mention       MessageKind = "mention"
	DirectMention MessageKind = "direct_mention"
)

type Sender struct {
	ID   string
	Name string
}

// Mention renders the sender the way the platform highlights a user.
func (s Sender) Mention(platform Platform) string {
	switch platform {
	case Slack:
		if s.ID == "" {
			return ""
		}
		return "<@" + s.ID + ">"
	default:
		if s.Name != "" {
			return s.Name
		}
		return s.ID
	}
}

// Origin identifies where an event came from and where replies to it go.
type Origin struct {
	EventID     string
	Platform    Platform
	ChannelID   string
	MessageID   string
	ThreadID    string
	ResponseURL string
	Sender      Sender
}

// Event is an inbound chat event. The set of implementations is closed.
type Event interface {
	Source() Origin
	Name() string
	event()
}

type ChannelJoin struct {
	Origin Origin
}

type Message struct {
	Origin Origin
	Kind   MessageKind
	Text   string
}

type SlashCommand struct {
	Origin  Origin
	Command string
	Text    string
	Token   string
}

func (e ChannelJoin) Source() Origin { return e.Origin }
func (e Message) Source() Origin { return e.Origin }
func (e SlashCommand) Source() Origin { return e.Origin }

func (ChannelJoin) Name() string { return "channel_join" }
func (e Message) Name() string { return string(e.Kind) }
func (SlashCommand) Name() string { return "slash_command" }

func (ChannelJoin) event() {}
func (Message) event() {}
func (SlashCommand) event() {}

type OutboundReply struct {
	Origin     Origin
	Text       string
	Visibility Visibility
}
