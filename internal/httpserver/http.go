package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"fc-landing-bot/internal/handlers"

	"github.com/go-chi/chi/v5"
)

// NewServer creates the HTTP server with the health endpoint and the
// configured webhook path.
func NewServer(port string, webhookPath string, h handlers.WebhookHandler) *http.Server {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Post(webhookPath, h.Handle)

	return &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
}
