package webhooks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xmxsystem/webhook-backend/api/responses"
	"github.com/xmxsystem/webhook-backend/api/validators"
	cartpandawebhook "github.com/xmxsystem/webhook-backend/internal/webhooks/cartpanda"
	"github.com/xmxsystem/webhook-backend/pkg/db/models"
	pkgerrors "github.com/xmxsystem/webhook-backend/pkg/errors"
	"github.com/xmxsystem/webhook-backend/pkg/logger"
	"github.com/xmxsystem/webhook-backend/pkg/metrics"
	"github.com/xmxsystem/webhook-backend/pkg/types"
)

const SignatureHeader = "X-CartPanda-Signature"

type CartPandaWebhookService interface {
	HandleEvent(ctx context.Context, event *cartpandawebhook.Event) (*models.Sale, error)
}

type signatureVerifier interface {
	Verify(ctx context.Context, payload []byte, signature string) bool
}

type webhookGuard interface {
	CheckAndMark(ctx context.Context, eventID string) (bool, error)
	Delete(ctx context.Context, eventID string) error
}

// CartPandaParams collects the collaborators for the webhook endpoint.
// EnforceSignature is false only in local development; production always
// verifies.
type CartPandaParams struct {
	Service          CartPandaWebhookService
	Verifier         signatureVerifier
	Guard            webhookGuard
	Metrics          *metrics.WebhookMetrics
	Logger           *logger.Logger
	EnforceSignature bool
}

// CartPandaWebhook handles CartPanda sale lifecycle events.
func CartPandaWebhook(params CartPandaParams) http.HandlerFunc {
	svc := params.Service
	logg := params.Logger

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if params.Guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "idempotency guard unavailable"))
			return
		}
		if params.EnforceSignature && params.Verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "signature verifier unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		// Verification runs on the exact bytes received. Decoding first and
		// re-serializing would break byte-for-byte agreement with the sender.
		if params.EnforceSignature {
			if !params.Verifier.Verify(ctx, payload, r.Header.Get(SignatureHeader)) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid signature"))
				return
			}
		}

		var event cartpandawebhook.Event
		if err := validators.DecodeJSONBytes(payload, &event); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithEvent(ctx, event.ID, event.Type)
		}
		if params.Metrics != nil {
			params.Metrics.IncReceived(event.Type)
		}

		alreadyProcessed, err := params.Guard.CheckAndMark(ctx, event.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			if logg != nil {
				logg.Warn(ctx, "webhook.duplicate_delivery")
			}
			if params.Metrics != nil {
				params.Metrics.IncOutcome(event.Type, "duplicate")
			}
			responses.WriteSuccess(w, processedMessage(event.Type), types.SaleResult{SaleID: event.Data.SaleID})
			return
		}

		sale, err := svc.HandleEvent(ctx, &event)
		if err != nil {
			// Release the mark so the sender's retry gets a fresh attempt.
			_ = params.Guard.Delete(ctx, event.ID)
			if params.Metrics != nil {
				params.Metrics.IncOutcome(event.Type, "failed")
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if params.Metrics != nil {
			params.Metrics.IncOutcome(event.Type, "processed")
			params.Metrics.ObserveDuration(event.Type, time.Since(start))
		}
		if logg != nil {
			logg.Info(logg.WithSaleID(ctx, sale.ExternalID), "webhook.processed")
		}
		responses.WriteSuccess(w, processedMessage(event.Type), types.SaleResult{SaleID: sale.ExternalID})
	}
}

func processedMessage(eventType string) string {
	return fmt.Sprintf("Webhook %s processed successfully", eventType)
}
