package prompt_test

import (
	"errors"
	"testing"

	"github.com/joestump/prompt-library/internal/prompt"
)

func TestLibrary_DefaultHasV0Inspired(t *testing.T) {
	lib := prompt.Default()

	e, err := lib.Get(prompt.DefaultPromptID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.Label == "" {
		t.Error("expected non-empty label")
	}

	opts := prompt.Options{WorkingDirectory: "/home/project", AllowedTags: []string{"b"}}
	got, err := lib.Render(prompt.DefaultPromptID, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != prompt.Render(opts) {
		t.Error("library render differs from direct render")
	}
}

func TestLibrary_UnknownPrompt(t *testing.T) {
	lib := prompt.Default()

	if _, err := lib.Get("nope"); !errors.Is(err, prompt.ErrUnknownPrompt) {
		t.Errorf("Get error = %v, want ErrUnknownPrompt", err)
	}
	if _, err := lib.Render("nope", prompt.Options{}); !errors.Is(err, prompt.ErrUnknownPrompt) {
		t.Errorf("Render error = %v, want ErrUnknownPrompt", err)
	}
}

func TestLibrary_ListSortedAndReplaces(t *testing.T) {
	static := func(s string) func(prompt.Options) string {
		return func(prompt.Options) string { return s }
	}
	lib := prompt.NewLibrary(
		prompt.Entry{ID: "zeta", Render: static("z")},
		prompt.Entry{ID: "alpha", Render: static("a1")},
		prompt.Entry{ID: "alpha", Render: static("a2")},
	)

	list := lib.List()
	if len(list) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(list))
	}
	if list[0].ID != "alpha" || list[1].ID != "zeta" {
		t.Errorf("List order = %q, %q", list[0].ID, list[1].ID)
	}

	got, err := lib.Render("alpha", prompt.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "a2" {
		t.Errorf("Render = %q, want later entry %q", got, "a2")
	}
}
