package handler

import (
	"encoding/json"
	"net/http"

	"github.com/joestump/prompt-library/internal/build"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Health reports liveness and the running build.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Version: build.Version,
		Commit:  build.Commit,
	})
}
