package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	webhookcontrollers "github.com/xmxsystem/webhook-backend/api/controllers/webhooks"
	"github.com/xmxsystem/webhook-backend/api/handlers"
	"github.com/xmxsystem/webhook-backend/api/middleware"
	cartpandawebhook "github.com/xmxsystem/webhook-backend/internal/webhooks/cartpanda"
	"github.com/xmxsystem/webhook-backend/pkg/config"
	"github.com/xmxsystem/webhook-backend/pkg/db"
	"github.com/xmxsystem/webhook-backend/pkg/logger"
	"github.com/xmxsystem/webhook-backend/pkg/metrics"
	"github.com/xmxsystem/webhook-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	webhookService webhookcontrollers.CartPandaWebhookService,
	webhookVerifier *cartpandawebhook.SignatureVerifier,
	webhookGuard *cartpandawebhook.IdempotencyGuard,
	webhookMetrics *metrics.WebhookMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/", handlers.Root())
	r.Route("/health", func(r chi.Router) {
		r.Get("/", handlers.Healthz(cfg, logg))
		r.Get("/ready", handlers.Readyz(logg, dbP, redisP))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/cartpanda", webhookcontrollers.CartPandaWebhook(webhookcontrollers.CartPandaParams{
			Service:          webhookService,
			Verifier:         webhookVerifier,
			Guard:            webhookGuard,
			Metrics:          webhookMetrics,
			Logger:           logg,
			EnforceSignature: cfg.SignatureEnforced(),
		}))
	})

	return r
}
