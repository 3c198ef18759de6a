package foreman

import (
	"encoding/json"
	"foremanbot/internal/adapters/metrics"
	"foremanbot/internal/core/domain"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		responseBody   interface{}
		responseStatus int
		want           func(base string) domain.LookupResult
		wantErr        error
	}{
		{
			name: "single match",
			responseBody: map[string]interface{}{
				"subtotal": 1,
				"results": []interface{}{
					map[string]interface{}{
						"certname":             "webhost01.example.edu",
						"global_status_label":  "OK",
						"ip":                   "10.0.0.12",
						"operatingsystem_name": "RedHat 9.4",
						"hostgroup_title":      "web/prod",
					},
				},
			},
			responseStatus: http.StatusOK,
			want: func(base string) domain.LookupResult {
				return domain.HostFound{Host: domain.Host{
					Name:      "webhost01.example.edu",
					Status:    "OK",
					IP:        "10.0.0.12",
					OS:        "RedHat 9.4",
					HostGroup: "web/prod",
					DetailURL: base + "/hosts/webhost01.example.edu",
				}}
			},
		},
		{
			name: "first result wins",
			responseBody: map[string]interface{}{
				"subtotal": 2,
				"results": []interface{}{
					map[string]interface{}{"certname": "first.example.edu", "global_status_label": "OK"},
					map[string]interface{}{"certname": "second.example.edu", "global_status_label": "Error"},
				},
			},
			responseStatus: http.StatusOK,
			want: func(base string) domain.LookupResult {
				return domain.HostFound{Host: domain.Host{
					Name:      "first.example.edu",
					Status:    "OK",
					DetailURL: base + "/hosts/first.example.edu",
				}}
			},
		},
		{
			name: "zero subtotal is not found even with results",
			responseBody: map[string]interface{}{
				"subtotal": 0,
				"results": []interface{}{
					map[string]interface{}{"certname": "stale.example.edu"},
				},
			},
			responseStatus: http.StatusOK,
			want: func(base string) domain.LookupResult {
				return domain.HostNotFound{BrowseURL: base + "/hosts"}
			},
		},
		{
			name:           "null fields decode as empty",
			responseBody:   `{"subtotal":1,"results":[{"certname":"bare","ip":null,"hostgroup_title":null}]}`,
			responseStatus: http.StatusOK,
			want: func(base string) domain.LookupResult {
				return domain.HostFound{Host: domain.Host{Name: "bare", DetailURL: base + "/hosts/bare"}}
			},
		},
		{
			name:           "subtotal without results",
			responseBody:   map[string]interface{}{"subtotal": 3, "results": []interface{}{}},
			responseStatus: http.StatusOK,
			wantErr:        domain.ErrLookupDecode,
		},
		{
			name:           "unauthorized",
			responseBody:   `{"error":{"message":"Unable to authenticate user admin"}}`,
			responseStatus: http.StatusUnauthorized,
			wantErr:        domain.ErrLookupUnauthorized,
		},
		{
			name:           "forbidden",
			responseBody:   `{}`,
			responseStatus: http.StatusForbidden,
			wantErr:        domain.ErrLookupUnauthorized,
		},
		{
			name:           "server error",
			responseBody:   "oops",
			responseStatus: http.StatusInternalServerError,
			wantErr:        domain.ErrLookupStatus,
		},
		{
			name:           "malformed JSON",
			responseBody:   "{not_json}",
			responseStatus: http.StatusOK,
			wantErr:        domain.ErrLookupDecode,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, pass, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "svc-bot", user)
				assert.Equal(t, "hunter2", pass)
				assert.Equal(t, "/api/hosts", r.URL.Path)
				assert.Equal(t, "facts.hostname=webhost01", r.URL.Query().Get("search"))

				w.WriteHeader(tc.responseStatus)
				switch b := tc.responseBody.(type) {
				case string:
					w.Write([]byte(b))
				default:
					json.NewEncoder(w).Encode(b)
				}
			}))
			defer srv.Close()

			c := NewClient(srv.URL+"/", "svc-bot", "hunter2")

			got, err := c.Lookup(t.Context(), domain.LookupQuery{Hostname: "webhost01"})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want(srv.URL), got)
		})
	}
}

func TestClient_LookupEmptyHostnameSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	c := NewClient(srv.URL, "u", "p", WithMetrics(m))

	got, err := c.Lookup(t.Context(), domain.LookupQuery{Hostname: ""})

	require.NoError(t, err)
	assert.Equal(t, domain.HostNotFound{BrowseURL: srv.URL + "/hosts"}, got)
	assert.Zero(t, calls.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("skipped")), 0)
}

func TestClient_LookupNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	base := srv.URL
	srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	c := NewClient(base, "u", "p", WithMetrics(m), WithHTTPClient(&http.Client{}))

	got, err := c.Lookup(t.Context(), domain.LookupQuery{Hostname: "webhost01"})

	require.ErrorIs(t, err, domain.ErrLookupNetwork)
	assert.Nil(t, got)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("error")), 0)
}

func TestClient_URLs(t *testing.T) {
	c := NewClient("https://foreman.example.edu/", "u", "p")

	assert.Equal(t, "https://foreman.example.edu/hosts", c.BrowseURL())
	assert.Equal(t, "https://foreman.example.edu/hosts/webhost01.example.edu", c.DetailURL("webhost01.example.edu"))
}
