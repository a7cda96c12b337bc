package question

import (
	"sort"
	"sync"
	"time"
)

// Outcome is how one enrichment batch resolved.
type Outcome string

const (
	OutcomeEnriched    Outcome = "enriched"
	OutcomeFallback    Outcome = "fallback"
	OutcomeRateLimited Outcome = "rate_limited"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of enrichment calls.
type StatsSnapshot struct {
	Count       int     `json:"count"`
	Enriched    int     `json:"enriched"`
	Fallback    int     `json:"fallback"`
	RateLimited int     `json:"rate_limited"`
	MinMs       int64   `json:"min_ms"`
	MaxMs       int64   `json:"max_ms"`
	AvgMs       float64 `json:"avg_ms"`
	P50Ms       int64   `json:"p50_ms"`
	P95Ms       int64   `json:"p95_ms"`
}

// Stats tracks enrichment latencies and outcomes within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	byKind  map[Outcome]int
	maxAge  time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 64),
		byKind:  make(map[Outcome]int),
		maxAge:  maxAge,
	}
}

// Record logs one enrichment attempt. Outcome counts are cumulative for
// the process; latency samples age out of the rolling window.
func (s *Stats) Record(outcome Outcome, durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKind[outcome]++
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationMs: durationMs})
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{
		Enriched:    s.byKind[OutcomeEnriched],
		Fallback:    s.byKind[OutcomeFallback],
		RateLimited: s.byKind[OutcomeRateLimited],
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = values[len(values)*50/100]
	snap.P95Ms = values[len(values)*95/100]
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}
