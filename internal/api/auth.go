package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

// bearerToken rejects requests whose Authorization header does not carry
// token. Comparison is on SHA-256 digests so it is constant time regardless
// of the presented length.
func bearerToken(token string) func(http.Handler) http.Handler {
	want := sha256.Sum256([]byte(token))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			plaintext, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || plaintext == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
				return
			}
			got := sha256.Sum256([]byte(plaintext))
			if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
