// Package convo sequences the question/answer loop over a document's
// placeholders: one question at a time, answers normalized into the
// answer map, "skip" advancing without recording, and a completion
// summary once the last placeholder is handled.
package convo

import (
	"fmt"
	"strings"
	"sync"

	"docfill/internal/placeholder"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one append-only entry in the conversation log. Turns are for
// display only; fill logic reads the answer map.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the sequencer state.
type State string

const (
	StateIdle     State = "idle"
	StateAwaiting State = "awaiting"
	StateComplete State = "complete"
)

// skipKeyword advances past the current placeholder without answering.
const skipKeyword = "skip"

// Conversation is the mutex-guarded sequencer. Transitions are atomic:
// no two SubmitAnswer/Skip/Reset calls interleave.
type Conversation struct {
	mu           sync.Mutex
	state        State
	placeholders []string
	questions    map[string]string
	answers      map[string]string
	index        int
	skips        int
	turns        []Turn
	epoch        uint64
}

// New creates an idle conversation over an ordered placeholder list with
// its question cache. Questions are produced once per session; repeated
// navigation never re-derives them.
func New(placeholders []string, questions map[string]string) *Conversation {
	return &Conversation{
		state:        StateIdle,
		placeholders: placeholders,
		questions:    questions,
		answers:      make(map[string]string),
	}
}

// Start moves Idle -> Awaiting(0) and appends the intro turns, or goes
// straight to Complete with guidance when the document has no
// placeholders. notes are extra assistant turns (format caveats) emitted
// before the first question.
func (c *Conversation) Start(title string, notes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return
	}
	for _, n := range notes {
		if n != "" {
			c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: n})
		}
	}
	if len(c.placeholders) == 0 {
		c.state = StateComplete
		c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: fmt.Sprintf(
			"I didn't find any placeholders in %q. You can upload a different template, or download the document as-is.", title)})
		return
	}
	c.state = StateAwaiting
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: fmt.Sprintf(
		"I found %d placeholders in %q. I'll ask about them one at a time — type an answer, or %q to leave one blank.",
		len(c.placeholders), title, skipKeyword)})
	c.askCurrentLocked()
}

// SubmitAnswer records the user's reply to the current placeholder and
// advances. The literal keyword "skip" (any case) advances without
// writing to the answer map. Returns whether the conversation is now
// complete.
func (c *Conversation) SubmitAnswer(text string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaiting {
		return c.state == StateComplete, fmt.Errorf("no question awaiting an answer")
	}
	c.advanceLocked(text)
	return c.state == StateComplete, nil
}

// Skip advances past placeholder i without answering. Only the current
// index may be skipped; anything else is a no-op and returns false.
func (c *Conversation) Skip(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaiting || i != c.index {
		return false
	}
	c.advanceLocked(skipKeyword)
	return true
}

func (c *Conversation) advanceLocked(text string) {
	c.turns = append(c.turns, Turn{Role: RoleUser, Content: text})

	current := c.placeholders[c.index]
	if strings.EqualFold(strings.TrimSpace(text), skipKeyword) {
		c.skips++
	} else {
		c.answers[current] = placeholder.Normalize(text, current)
	}

	c.index++
	if c.index < len(c.placeholders) {
		c.askCurrentLocked()
		return
	}
	c.state = StateComplete
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: fmt.Sprintf(
		"That's everything — %d of %d placeholders filled. Your document is ready to download.",
		len(c.answers), len(c.placeholders))})
}

func (c *Conversation) askCurrentLocked() {
	p := c.placeholders[c.index]
	q := c.questions[p]
	if q == "" {
		q = fmt.Sprintf("What is %s?", placeholder.Subject(p))
	}
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: q})
}

// Reset returns to Idle, clears the placeholder list, answer map, and
// turn log, and bumps the epoch so any late question batch for the old
// session is discarded.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.placeholders = nil
	c.questions = map[string]string{}
	c.answers = make(map[string]string)
	c.index = 0
	c.skips = 0
	c.turns = nil
	c.epoch++
}

// Epoch identifies the current generation of this conversation.
func (c *Conversation) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// ApplyQuestions replaces the question cache if epoch still matches.
// Returns false for a stale batch, which is dropped.
func (c *Conversation) ApplyQuestions(epoch uint64, questions map[string]string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return false
	}
	c.questions = questions
	return true
}

// IsComplete is the authoritative gate for document generation.
func (c *Conversation) IsComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateComplete
}

// Answers returns a copy of the answer map.
func (c *Conversation) Answers() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}

// Snapshot is a read-only, JSON-safe copy of conversation state.
type Snapshot struct {
	State        State    `json:"state"`
	Placeholders []string `json:"placeholders"`
	Index        int      `json:"index"`
	Filled       int      `json:"filled"`
	Skipped      int      `json:"skipped"`
	Complete     bool     `json:"complete"`
	Turns        []Turn   `json:"turns"`
}

func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	placeholders := c.placeholders
	if placeholders == nil {
		placeholders = []string{}
	}
	turns := make([]Turn, len(c.turns))
	copy(turns, c.turns)
	return Snapshot{
		State:        c.state,
		Placeholders: placeholders,
		Index:        c.index,
		Filled:       len(c.answers),
		Skipped:      c.skips,
		Complete:     c.state == StateComplete,
		Turns:        turns,
	}
}
