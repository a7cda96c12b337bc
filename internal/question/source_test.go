package question

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestDeterministic_CategoryTemplates(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"$[Purchase Amount]", "What is the dollar amount for Purchase Amount?"},
		{"[Company Name]", "What is the company name for Company Name?"},
		{"[Investor Name]", "What is the full name for Investor Name?"},
		{"[Date of Safe]", "What date should be used for Date of Safe?"},
		{"[Street Address]", "What is the address for Street Address?"},
		{"[Notice Email]", "What email address should be used for Notice Email?"},
		{"[Phone Number]", "What phone number should be used for Phone Number?"},
		{"[TBD]", "What is TBD?"},
		{"[ ]", "What is this value?"},
		{"_____", "What is this value?"},
	}
	for _, c := range cases {
		if got := Deterministic(c.in); got != c.want {
			t.Errorf("Deterministic(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestTemplateSource_OneQuestionPerPlaceholder(t *testing.T) {
	placeholders := []string{"[Company Name]", "$[Amount]", "{Governing Law}"}
	qs := TemplateSource{}.QuestionsFor(context.Background(), "c1", placeholders, "ignored")
	if len(qs) != len(placeholders) {
		t.Fatalf("expected %d questions, got %d", len(placeholders), len(qs))
	}
	for _, p := range placeholders {
		if strings.TrimSpace(qs[p]) == "" {
			t.Errorf("empty question for %q", p)
		}
	}
}

type fakeGenerator struct {
	questions map[string]string
	err       error
	calls     int
}

func (f *fakeGenerator) GenerateQuestions(_ context.Context, placeholders []string, _ string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func newEnriched(gen generator, quota *Quota) *EnrichedSource {
	return NewEnrichedSource(gen, quota, NewStats(time.Hour), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnrichedSource_UsesEnrichedBatch(t *testing.T) {
	gen := &fakeGenerator{questions: map[string]string{"[A]": "Friendly question about A?"}}
	src := newEnriched(gen, nil)
	qs := src.QuestionsFor(context.Background(), "c1", []string{"[A]"}, "doc")
	if qs["[A]"] != "Friendly question about A?" {
		t.Errorf("expected enriched question, got %q", qs["[A]"])
	}
}

func TestEnrichedSource_FallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("boom")}
	src := newEnriched(gen, nil)
	placeholders := []string{"[Company Name]", "$[Amount]"}
	qs := src.QuestionsFor(context.Background(), "c1", placeholders, "doc")
	if len(qs) != 2 {
		t.Fatalf("expected 2 fallback questions, got %d", len(qs))
	}
	if qs["[Company Name]"] != "What is the company name for Company Name?" {
		t.Errorf("expected deterministic fallback, got %q", qs["[Company Name]"])
	}
	if qs["$[Amount]"] != "What is the dollar amount for Amount?" {
		t.Errorf("expected deterministic fallback, got %q", qs["$[Amount]"])
	}
}

func TestEnrichedSource_RateLimitStillFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("status 429: %w", ErrRateLimited)}
	stats := NewStats(time.Hour)
	src := NewEnrichedSource(gen, nil, stats, slog.New(slog.NewTextHandler(io.Discard, nil)))
	qs := src.QuestionsFor(context.Background(), "c1", []string{"[A]"}, "doc")
	if len(qs) != 1 || qs["[A]"] == "" {
		t.Fatalf("expected fallback question, got %v", qs)
	}
	if snap := stats.Snapshot(); snap.RateLimited != 1 {
		t.Errorf("expected rate-limited outcome recorded, got %+v", snap)
	}
}

func TestEnrichedSource_QuotaSkipsUpstreamCall(t *testing.T) {
	gen := &fakeGenerator{questions: map[string]string{"[A]": "enriched?"}}
	quota := NewQuota(1, time.Hour)
	src := newEnriched(gen, quota)

	src.QuestionsFor(context.Background(), "c1", []string{"[A]"}, "doc")
	qs := src.QuestionsFor(context.Background(), "c1", []string{"[A]"}, "doc")

	if gen.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", gen.calls)
	}
	if qs["[A]"] != Deterministic("[A]") {
		t.Errorf("expected deterministic question past quota, got %q", qs["[A]"])
	}
}

func TestEnrichedSource_EmptyBatch(t *testing.T) {
	gen := &fakeGenerator{}
	src := newEnriched(gen, nil)
	qs := src.QuestionsFor(context.Background(), "c1", nil, "doc")
	if len(qs) != 0 {
		t.Errorf("expected empty map, got %v", qs)
	}
	if gen.calls != 0 {
		t.Errorf("no placeholders should mean no upstream call, got %d", gen.calls)
	}
}

func TestErrRateLimited_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("claude api status 429: %w", ErrRateLimited)
	if !errors.Is(err, ErrRateLimited) {
		t.Error("wrapped rate-limit error should match ErrRateLimited")
	}
}
