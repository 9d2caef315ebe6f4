package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joestump/prompt-library/internal/prompt"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeConfig writes a config file pointing at a fresh sqlite database.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt-library.yaml")
	body := strings.Join([]string{
		"db:",
		"  driver: sqlite3",
		"  dsn: " + filepath.Join(dir, "presets.db"),
		"log:",
		"  level: error",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRender_Flags(t *testing.T) {
	out, err := run(t, "render", "--cwd", "/home/project", "--allow", "b,code", "--allow", "pre")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := prompt.Render(prompt.Options{WorkingDirectory: "/home/project", AllowedTags: []string{"b", "code", "pre"}})
	if out != want {
		t.Error("CLI output differs from direct render")
	}
}

func TestRender_Defaults(t *testing.T) {
	out, err := run(t, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != prompt.Render(prompt.DefaultOptions()) {
		t.Error("expected render with default options")
	}
}

func TestRender_ExplicitEmpty(t *testing.T) {
	out, err := run(t, "render", "--cwd", "", "--allow", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != prompt.Render(prompt.Options{}) {
		t.Error("expected render with empty working directory and tags")
	}
}

func TestRender_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.md")
	if _, err := run(t, "render", "--cwd", "/w", "-o", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "('/w')") {
		t.Error("expected working directory in written prompt")
	}
}

func TestRender_UnknownPrompt(t *testing.T) {
	if _, err := run(t, "render", "--prompt", "nope"); err == nil {
		t.Error("expected error for unknown prompt")
	}
}

func TestRender_PresetWithoutDatabase(t *testing.T) {
	if _, err := run(t, "render", "--preset", "app"); err == nil {
		t.Error("expected error when presets are not configured")
	}
}

func TestPrompts_List(t *testing.T) {
	out, err := run(t, "prompts")
	if err != nil {
		t.Fatalf("prompts: %v", err)
	}
	if !strings.Contains(out, prompt.DefaultPromptID+" (default)") {
		t.Errorf("expected default prompt marked, got:\n%s", out)
	}
}

func TestPresets_Lifecycle(t *testing.T) {
	cfg := writeConfig(t)

	if _, err := run(t, "--config", cfg, "presets", "set", "app", "--cwd", "/srv/app", "--allow", "pre,b"); err != nil {
		t.Fatalf("presets set: %v", err)
	}

	out, err := run(t, "--config", cfg, "render", "--preset", "app")
	if err != nil {
		t.Fatalf("render --preset: %v", err)
	}
	if out != prompt.Render(prompt.Options{WorkingDirectory: "/srv/app", AllowedTags: []string{"pre", "b"}}) {
		t.Error("render --preset differs from direct render")
	}

	// Updating one field keeps the others.
	if _, err := run(t, "--config", cfg, "presets", "set", "app", "--description", "demo"); err != nil {
		t.Fatalf("presets set update: %v", err)
	}
	out, err = run(t, "--config", cfg, "presets", "show", "app")
	if err != nil {
		t.Fatalf("presets show: %v", err)
	}
	for _, want := range []string{"description: demo", "working_directory: /srv/app", "- pre"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "--config", cfg, "presets", "list")
	if err != nil {
		t.Fatalf("presets list: %v", err)
	}
	if !strings.Contains(out, "app") {
		t.Errorf("list output missing preset:\n%s", out)
	}

	if _, err := run(t, "--config", cfg, "presets", "delete", "app"); err != nil {
		t.Fatalf("presets delete: %v", err)
	}
	if _, err := run(t, "--config", cfg, "presets", "show", "app"); err == nil {
		t.Error("expected error showing deleted preset")
	}
}

func TestPresets_ImportExport(t *testing.T) {
	cfg := writeConfig(t)
	file := filepath.Join(t.TempDir(), "presets.yaml")
	body := strings.Join([]string{
		"presets:",
		"  - name: one",
		"    working_directory: /one",
		"    allowed_tags: [b]",
		"  - name: two",
		"    working_directory: /two",
		"    allowed_tags: []",
	}, "\n")
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}

	out, err := run(t, "--config", cfg, "presets", "import", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "2 created, 0 updated") {
		t.Errorf("import output = %q", out)
	}

	out, err = run(t, "--config", cfg, "presets", "import", file)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if !strings.Contains(out, "0 created, 2 updated") {
		t.Errorf("re-import output = %q", out)
	}

	out, err = run(t, "--config", cfg, "presets", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "name: one") || !strings.Contains(out, "working_directory: /two") {
		t.Errorf("export output:\n%s", out)
	}
}

func TestPresets_ImportInvalidEntryWritesNothing(t *testing.T) {
	cfg := writeConfig(t)
	file := filepath.Join(t.TempDir(), "presets.yaml")
	body := strings.Join([]string{
		"presets:",
		"  - name: good",
		"    working_directory: /g",
		"  - name: Bad_Name",
		"    working_directory: /b",
	}, "\n")
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}

	if _, err := run(t, "--config", cfg, "presets", "import", file); err == nil {
		t.Fatal("expected error importing invalid name")
	}

	out, err := run(t, "--config", cfg, "presets", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "good") {
		t.Errorf("partial import persisted:\n%s", out)
	}
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	if _, err := run(t, "migrate"); err == nil {
		t.Error("expected error without database config")
	}
	if _, err := run(t, "--config", writeConfig(t), "migrate"); err != nil {
		t.Errorf("migrate: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "prompt-library ") {
		t.Errorf("version output = %q", out)
	}
}
