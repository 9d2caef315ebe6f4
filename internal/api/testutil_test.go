package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joestump/prompt-library/internal/api"
	"github.com/joestump/prompt-library/internal/prompt"
	"github.com/joestump/prompt-library/internal/render"
	"github.com/joestump/prompt-library/internal/store"
	"github.com/joestump/prompt-library/internal/testutil"
)

const testToken = "pl_test_token"

var testDefaults = prompt.Options{WorkingDirectory: "/home/project", AllowedTags: []string{"b", "i"}}

// testEnv holds the router and the preset store it is wired to.
type testEnv struct {
	Router  http.Handler
	Presets *store.PresetStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with a real preset store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	presets := store.NewPresetStore(testutil.NewTestDB(t))
	renderer := render.NewService(prompt.Default(), presets, testDefaults, prompt.DefaultPromptID, nil)

	router := api.NewAPIRouter(api.Deps{
		Renderer: renderer,
		Presets:  presets,
		APIToken: testToken,
	})
	return &testEnv{Router: router, Presets: presets}
}

// newStorelessEnv wires the router without a database.
func newStorelessEnv(t *testing.T) *testEnv {
	t.Helper()
	renderer := render.NewService(prompt.Default(), nil, testDefaults, prompt.DefaultPromptID, nil)
	return &testEnv{Router: api.NewAPIRouter(api.Deps{Renderer: renderer})}
}

// do sends an authenticated request through the router.
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}
