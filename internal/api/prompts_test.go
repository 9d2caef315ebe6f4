package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/joestump/prompt-library/internal/api"
	"github.com/joestump/prompt-library/internal/prompt"
	"github.com/joestump/prompt-library/internal/store"
)

func TestPrompts_List_OK(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/prompts", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp api.PromptListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Prompts) != 1 || resp.Prompts[0].ID != prompt.DefaultPromptID {
		t.Errorf("prompts = %+v", resp.Prompts)
	}
	if resp.Default != prompt.DefaultPromptID {
		t.Errorf("default = %q", resp.Default)
	}
}

func TestPrompts_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	for _, header := range []string{"", "Bearer ", "Bearer wrong", "Basic " + testToken} {
		req := httptest.NewRequest("GET", "/prompts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestPrompts_NoTokenConfigured_Open(t *testing.T) {
	env := newStorelessEnv(t)
	req := httptest.NewRequest("GET", "/prompts", nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPrompts_Get(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/prompts/"+prompt.DefaultPromptID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, "GET", "/prompts/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func decodeRender(t *testing.T, rec *httptest.ResponseRecorder) api.RenderResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp api.RenderResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestPrompts_Render_Explicit(t *testing.T) {
	env := newTestEnv(t)
	body := `{"working_directory":"/home/project","allowed_tags":["b","code","pre"]}`

	resp := decodeRender(t, env.do(t, "POST", "/prompts/v0-inspired/render", body))

	want := prompt.Render(prompt.Options{WorkingDirectory: "/home/project", AllowedTags: []string{"b", "code", "pre"}})
	if resp.Prompt != want {
		t.Error("rendered prompt differs from direct render")
	}
	if !strings.Contains(resp.Prompt, "<b>, <code>, <pre>") {
		t.Error("expected formatted tags in prompt")
	}
	if resp.PromptID != prompt.DefaultPromptID {
		t.Errorf("prompt_id = %q", resp.PromptID)
	}
}

func TestPrompts_Render_Defaults(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{"", "{}"} {
		resp := decodeRender(t, env.do(t, "POST", "/prompts/v0-inspired/render", body))
		if resp.WorkingDirectory != testDefaults.WorkingDirectory {
			t.Errorf("body %q: working_directory = %q", body, resp.WorkingDirectory)
		}
		if !reflect.DeepEqual(resp.AllowedTags, testDefaults.AllowedTags) {
			t.Errorf("body %q: allowed_tags = %q", body, resp.AllowedTags)
		}
	}
}

func TestPrompts_Render_EmptyValues(t *testing.T) {
	env := newTestEnv(t)
	resp := decodeRender(t, env.do(t, "POST", "/prompts/v0-inspired/render", `{"working_directory":"","allowed_tags":[]}`))

	if resp.Prompt != prompt.Render(prompt.Options{}) {
		t.Error("expected render with empty working directory and no tags")
	}
	if resp.AllowedTags == nil || len(resp.AllowedTags) != 0 {
		t.Errorf("allowed_tags = %#v, want []", resp.AllowedTags)
	}
}

func TestPrompts_Render_Preset(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Presets.Create(context.Background(), store.PresetInput{
		Name:             "app",
		WorkingDirectory: "/srv/app",
		AllowedTags:      []string{"pre"},
	})
	if err != nil {
		t.Fatalf("seed preset: %v", err)
	}

	resp := decodeRender(t, env.do(t, "POST", "/prompts/v0-inspired/render", `{"preset":"app","allowed_tags":["b"]}`))
	if resp.WorkingDirectory != "/srv/app" {
		t.Errorf("working_directory = %q, want preset value", resp.WorkingDirectory)
	}
	if !reflect.DeepEqual(resp.AllowedTags, []string{"b"}) {
		t.Errorf("allowed_tags = %q, want override", resp.AllowedTags)
	}
}

func TestPrompts_Render_Errors(t *testing.T) {
	tests := []struct {
		name      string
		storeless bool
		path      string
		body      string
		wantCode  int
		wantErr   string
	}{
		{name: "unknown prompt", path: "/prompts/nope/render", body: "{}", wantCode: http.StatusNotFound, wantErr: "PROMPT_NOT_FOUND"},
		{name: "unknown preset", path: "/prompts/v0-inspired/render", body: `{"preset":"nope"}`, wantCode: http.StatusNotFound, wantErr: "PRESET_NOT_FOUND"},
		{name: "malformed body", path: "/prompts/v0-inspired/render", body: `{`, wantCode: http.StatusBadRequest, wantErr: "BAD_REQUEST"},
		{name: "wrong type", path: "/prompts/v0-inspired/render", body: `{"working_directory":5}`, wantCode: http.StatusBadRequest, wantErr: "BAD_REQUEST"},
		{name: "unknown field", path: "/prompts/v0-inspired/render", body: `{"cwd":"/x"}`, wantCode: http.StatusBadRequest, wantErr: "BAD_REQUEST"},
		{name: "trailing data", path: "/prompts/v0-inspired/render", body: `{"working_directory":"/x"} {"working_directory":"/y"}`, wantCode: http.StatusBadRequest, wantErr: "BAD_REQUEST"},
		{name: "oversized body", path: "/prompts/v0-inspired/render", body: `{"working_directory":"` + strings.Repeat("a", 1<<20) + `"}`, wantCode: http.StatusRequestEntityTooLarge, wantErr: "REQUEST_TOO_LARGE"},
		{name: "presets disabled", storeless: true, path: "/prompts/v0-inspired/render", body: `{"preset":"app"}`, wantCode: http.StatusServiceUnavailable, wantErr: "PRESETS_DISABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.storeless {
				env = newStorelessEnv(t)
			}
			rec := env.do(t, "POST", tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var errResp api.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if errResp.Code != tt.wantErr {
				t.Errorf("code = %q, want %q", errResp.Code, tt.wantErr)
			}
		})
	}
}
