package domain

import (
	"fmt"
	"strings"
)

const (
	foundTemplate = `%sServer Found: %s
Along with a link to the Foreman page: %s
Additional Info:
Status: %s
IP: %s
OS: %s
Host Group: %s`
	notFoundTemplate = "Server not Found. Link to hosts: %s"
	FailedLookup     = "Failed to Authenticate with Foreman"
)

// FormatLookup renders a lookup result as a chat message. Every failure kind
// renders the same text; details only go to the logs.
func FormatLookup(result LookupResult, mention string) string {
	switch r := result.(type) {
	case HostFound:
		prefix := ""
		if mention = strings.TrimSpace(mention); mention != "" {
			prefix = mention + " "
		}
		return fmt.Sprintf(foundTemplate, prefix, r.Host.Name, r.Host.DetailURL,
			r.Host.Status, r.Host.IP, r.Host.OS, r.Host.HostGroup)
	case HostNotFound:
		return fmt.Sprintf(notFoundTemplate, r.BrowseURL)
	default:
		return FailedLookup
	}
}
