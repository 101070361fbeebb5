package server

import (
	"encoding/json"
	"net/http"

	"github.com/hookpad/cli/internal/modspace"
)

// HealthHandler returns a simple health check endpoint reporting the number
// of loadable lessons.
func HealthHandler(space *modspace.Space) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(struct {
			Status  string `json:"status"`
			Lessons int    `json:"lessons"`
		}{
			Status:  "ok",
			Lessons: space.Len(),
		})
	})
}
