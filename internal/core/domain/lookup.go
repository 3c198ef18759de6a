package domain

import "strings"

type LookupQuery struct {
	Hostname string
}

func NewLookupQuery(hostname string) LookupQuery {
	return LookupQuery{Hostname: strings.ToLower(strings.TrimSpace(hostname))}
}

// ParseLookupQuery drops the leading word (the bot mention or trigger) and
// uses the remainder as the hostname.
func ParseLookupQuery(text string) LookupQuery {
	_, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	return NewLookupQuery(rest)
}

type Host struct {
	Name      string
	Status    string
	IP        string
	OS        string
	HostGroup string
	DetailURL string
}

// LookupResult is one of HostFound, HostNotFound or LookupFailed.
type LookupResult interface {
	lookupResult()
}

type HostFound struct {
	Host Host
}

type HostNotFound struct {
	BrowseURL string
}

type LookupFailed struct {
	Err error
}

func (HostFound) lookupResult() {}
func (HostNotFound) lookupResult() {}
func (LookupFailed) lookupResult() {}
