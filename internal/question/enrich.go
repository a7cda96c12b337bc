package question

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// generator is the upstream call EnrichedSource makes; satisfied by
// *Client and by fakes in tests.
type generator interface {
	GenerateQuestions(ctx context.Context, placeholders []string, docContext string) (map[string]string, error)
}

// EnrichedSource asks Claude to phrase the batch and falls back to the
// deterministic templates on any failure: local quota, upstream rate
// limit, malformed response, network error. Enrichment is all-or-nothing
// per batch; a partial response is never merged with fallback text.
type EnrichedSource struct {
	gen      generator
	quota    *Quota
	stats    *Stats
	fallback TemplateSource
	log      *slog.Logger
}

func NewEnrichedSource(gen generator, quota *Quota, stats *Stats, log *slog.Logger) *EnrichedSource {
	return &EnrichedSource{
		gen:   gen,
		quota: quota,
		stats: stats,
		log:   log,
	}
}

func (s *EnrichedSource) QuestionsFor(ctx context.Context, clientID string, placeholders []string, docContext string) map[string]string {
	if len(placeholders) == 0 {
		return map[string]string{}
	}
	if s.quota != nil && !s.quota.Allow(clientID) {
		s.log.Info("enrichment quota exhausted, using deterministic questions", "client", clientID)
		s.record(OutcomeRateLimited, 0)
		return s.fallback.QuestionsFor(ctx, clientID, placeholders, docContext)
	}

	start := time.Now()
	enriched, err := s.gen.GenerateQuestions(ctx, placeholders, docContext)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		outcome := OutcomeFallback
		if errors.Is(err, ErrRateLimited) {
			outcome = OutcomeRateLimited
		}
		s.log.Warn("enrichment failed, using deterministic questions", "error", err)
		s.record(outcome, elapsed)
		return s.fallback.QuestionsFor(ctx, clientID, placeholders, docContext)
	}

	s.record(OutcomeEnriched, elapsed)
	return enriched
}

func (s *EnrichedSource) record(outcome Outcome, ms int64) {
	if s.stats != nil {
		s.stats.Record(outcome, ms)
	}
}
