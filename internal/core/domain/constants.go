package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")

	ErrLookupNetwork      = errors.New("foreman unreachable")
	ErrLookupUnauthorized = errors.New("foreman rejected credentials")
	ErrLookupStatus       = errors.New("unexpected foreman status")
	ErrLookupDecode       = errors.New("malformed foreman response")
)

const (
	JoinMessage     = "I'm here!"
	GreetingMessage = "Hey!"
	UnknownCommand  = "I do not know how to %s yet."
)

var DefaultGreetings = []string{"hello", "hi", "greetings"}
