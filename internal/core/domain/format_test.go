package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLookup(t *testing.T) {
	host := Host{
		Name:      "webhost01.example.edu",
		Status:    "OK",
		IP:        "10.0.0.12",
		OS:        "RedHat 9.4",
		HostGroup: "web/prod",
		DetailURL: "https://foreman.example.edu/hosts/webhost01.example.edu",
	}

	tests := []struct {
		name    string
		result  LookupResult
		mention string
		want    string
	}{
		{
			name:    "found with mention",
			result:  HostFound{Host: host},
			mention: "<@U123>",
			want: "<@U123> Server Found: webhost01.example.edu\n" +
				"Along with a link to the Foreman page: https://foreman.example.edu/hosts/webhost01.example.edu\n" +
				"Additional Info:\n" +
				"Status: OK\n" +
				"IP: 10.0.0.12\n" +
				"OS: RedHat 9.4\n" +
				"Host Group: web/prod",
		},
		{
			name:   "found without mention",
			result: HostFound{Host: host},
			want: "Server Found: webhost01.example.edu\n" +
				"Along with a link to the Foreman page: https://foreman.example.edu/hosts/webhost01.example.edu\n" +
				"Additional Info:\n" +
				"Status: OK\n" +
				"IP: 10.0.0.12\n" +
				"OS: RedHat 9.4\n" +
				"Host Group: web/prod",
		},
		{
			name:   "not found",
			result: HostNotFound{BrowseURL: "https://foreman.example.edu/hosts"},
			want:   "Server not Found. Link to hosts: https://foreman.example.edu/hosts",
		},
		{
			name:   "network failure",
			result: LookupFailed{Err: ErrLookupNetwork},
			want:   "Failed to Authenticate with Foreman",
		},
		{
			name:   "auth failure",
			result: LookupFailed{Err: ErrLookupUnauthorized},
			want:   "Failed to Authenticate with Foreman",
		},
		{
			name:   "unknown failure",
			result: LookupFailed{Err: errors.New("boom")},
			want:   "Failed to Authenticate with Foreman",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatLookup(tc.result, tc.mention))
		})
	}
}

func TestFormatLookup_FieldOrder(t *testing.T) {
	got := FormatLookup(HostFound{Host: Host{Name: "a", Status: "s", IP: "i", OS: "o", HostGroup: "g"}}, "")

	labels := []string{"Status:", "IP:", "OS:", "Host Group:"}
	last := -1
	for _, label := range labels {
		idx := strings.Index(got, label)
		assert.Greater(t, idx, last, "%s out of order", label)
		last = idx
	}
}
