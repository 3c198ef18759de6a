package domain

// Action is the routing decision for an event: Reply, Delegate, Sequence or Ignore.
type Action interface {
	Kind() string
}

type Reply struct {
	Text       string
	Visibility Visibility
}

// Delegate asks for a host lookup whose formatted result is sent with Visibility.
type Delegate struct {
	Query      LookupQuery
	Visibility Visibility
}

// Sequence holds staged replies. Steps run strictly in order and a step only
// starts once the previous one was delivered.
type Sequence struct {
	Steps []Action
}

type Ignore struct{}

func (Reply) Kind() string { return "reply" }
func (Delegate) Kind() string { return "delegate" }
func (Sequence) Kind() string { return "sequence" }
func (Ignore) Kind() string { return "ignore" }
