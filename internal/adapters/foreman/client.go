package foreman

import (
	"context"
	"encoding/json"
	"fmt"
	"foremanbot/internal/adapters/metrics"
	"foremanbot/internal/core/domain"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client queries the Foreman hosts API.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(client *Client) {
		client.metrics = m
	}
}

func NewClient(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type hostsResponse struct {
	Subtotal int          `json:"subtotal"`
	Results  []hostResult `json:"results"`
}

type hostResult struct {
	Certname          string `json:"certname"`
	GlobalStatusLabel string `json:"global_status_label"`
	IP                string `json:"ip"`
	OperatingSystem   string `json:"operatingsystem_name"`
	HostgroupTitle    string `json:"hostgroup_title"`
}

// BrowseURL is the Foreman page listing all hosts.
func (c *Client) BrowseURL() string {
	return c.baseURL + "/hosts"
}

func (c *Client) DetailURL(name string) string {
	return c.baseURL + "/hosts/" + url.PathEscape(name)
}

func (c *Client) Lookup(ctx context.Context, query domain.LookupQuery) (domain.LookupResult, error) {
	l := log.With().Str("hostname", query.Hostname).Logger()

	if query.Hostname == "" {
		l.Debug().Msg("empty hostname, skipping foreman query")
		c.metrics.RecordLookup("skipped", 0)
		return domain.HostNotFound{BrowseURL: c.BrowseURL()}, nil
	}

	start := time.Now()
	result, err := c.searchHosts(ctx, query.Hostname)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.metrics.RecordLookup("error", elapsed)
		return nil, err
	}

	if result.Subtotal == 0 {
		l.Debug().Msg("no matching host")
		c.metrics.RecordLookup("not_found", elapsed)
		return domain.HostNotFound{BrowseURL: c.BrowseURL()}, nil
	}

	if len(result.Results) == 0 {
		c.metrics.RecordLookup("error", elapsed)
		return nil, fmt.Errorf("%w: subtotal %d without results", domain.ErrLookupDecode, result.Subtotal)
	}

	first := result.Results[0]
	l.Debug().Int("subtotal", result.Subtotal).Str("certname", first.Certname).Msg("host found")
	c.metrics.RecordLookup("found", elapsed)

	return domain.HostFound{Host: domain.Host{
		Name:      first.Certname,
		Status:    first.GlobalStatusLabel,
		IP:        first.IP,
		OS:        first.OperatingSystem,
		HostGroup: first.HostgroupTitle,
		DetailURL: c.DetailURL(first.Certname),
	}}, nil
}

func (c *Client) searchHosts(ctx context.Context, hostname string) (*hostsResponse, error) {
	params := url.Values{}
	params.Set("search", "facts.hostname="+hostname)
	endpoint := c.baseURL + "/api/hosts?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating foreman request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupNetwork, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrLookupNetwork, err)
	}

	log.Debug().Int("status", res.StatusCode).Bytes("body", body).Msg("foreman response")

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", domain.ErrLookupUnauthorized, res.StatusCode)
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, fmt.Errorf("%w: %d", domain.ErrLookupStatus, res.StatusCode)
	}

	var result hostsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupDecode, err)
	}

	return &result, nil
}
