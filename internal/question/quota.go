package question

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Quota enforces a fixed-window enrichment allowance per caller identity.
// Counters live in a go-cache instance whose janitor sweeps expired
// windows, so the map never grows with dead identities.
type Quota struct {
	counters *cache.Cache
	limit    int
}

// NewQuota allows limit calls per identity per window. A limit of zero or
// less disables the quota.
func NewQuota(limit int, window time.Duration) *Quota {
	if window <= 0 {
		window = time.Hour
	}
	return &Quota{
		counters: cache.New(window, 2*window),
		limit:    limit,
	}
}

// Allow records one call for id and reports whether it is within quota.
// Add either installs the window's first counter or loses to a concurrent
// caller, whose counter we then increment, so no call is ever dropped
// from the count.
func (q *Quota) Allow(id string) bool {
	if q.limit <= 0 {
		return true
	}
	for {
		if q.counters.Add(id, 1, cache.DefaultExpiration) == nil {
			return q.limit >= 1
		}
		n, err := q.counters.IncrementInt(id, 1)
		if err == nil {
			return n <= q.limit
		}
		// The counter expired between Add and Increment; a new window has
		// begun, so try again.
	}
}
