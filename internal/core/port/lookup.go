package port

import (
	"context"
	"foremanbot/internal/core/domain"
)

type HostLookup interface {
	// Lookup queries the inventory for a host. A missing host is a HostNotFound result, not an error.
	Lookup(ctx context.Context, query domain.LookupQuery) (domain.LookupResult, error)
}
