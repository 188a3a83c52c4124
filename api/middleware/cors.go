package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Webhooks arrive server-to-server, so the policy stays permissive; it only
// matters for the health and metrics endpoints hit from dashboards.
var defaultCORSOrigins = []string{"*"}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: defaultCORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-CartPanda-Signature", "X-Request-Id"},
		MaxAge:         300,
	}).Handler
}
