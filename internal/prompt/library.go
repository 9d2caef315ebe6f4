package prompt

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultPromptID identifies the prompt used when a caller does not pick one.
const DefaultPromptID = "v0-inspired"

// ErrUnknownPrompt is returned when a prompt id is not registered.
var ErrUnknownPrompt = errors.New("prompt not found")

// Entry describes one prompt in a Library.
type Entry struct {
	ID          string
	Label       string
	Description string
	Render      func(Options) string
}

// Library maps prompt ids to entries. It is immutable after construction and
// safe for concurrent use.
type Library struct {
	entries map[string]Entry
}

// NewLibrary builds a Library from entries. A later entry with the same id
// replaces an earlier one.
func NewLibrary(entries ...Entry) *Library {
	l := &Library{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		l.entries[e.ID] = e
	}
	return l
}

// Default returns the library of built-in prompts.
func Default() *Library {
	return NewLibrary(Entry{
		ID:          DefaultPromptID,
		Label:       "V0-Inspired Prompt",
		Description: "Concise Bolt prompt modeled on v0: artifacts, WebContainer constraints and worked examples",
		Render:      Render,
	})
}

// Get returns the entry registered under id, or an error wrapping ErrUnknownPrompt.
func (l *Library) Get(id string) (Entry, error) {
	e, ok := l.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownPrompt, id)
	}
	return e, nil
}

// Render renders the prompt registered under id.
func (l *Library) Render(id string, opts Options) (string, error) {
	e, err := l.Get(id)
	if err != nil {
		return "", err
	}
	return e.Render(opts), nil
}

// List returns all entries ordered by id.
func (l *Library) List() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
