package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/xmxsystem/webhook-backend/pkg/errors"
	"github.com/xmxsystem/webhook-backend/pkg/types"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.WebhookEnvelope {
	t.Helper()
	var envelope types.WebhookEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, "Webhook sale.approved processed successfully", types.SaleResult{SaleID: "S1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if !envelope.Success {
		t.Fatal("expected success=true")
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["sale_id"] != "S1" {
		t.Fatalf("unexpected data %v", envelope.Data)
	}
}

func TestWriteErrorUsesCodeStatusAndMessage(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid signature"), http.StatusUnauthorized, "invalid signature"},
		{pkgerrors.New(pkgerrors.CodeValidation, "unknown webhook type: sale.foo"), http.StatusBadRequest, "unknown webhook type: sale.foo"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "sale not found"), http.StatusNotFound, "sale not found"},
		{pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("dial tcp"), "insert sale"), http.StatusServiceUnavailable, "dependency unavailable"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, tc.err)

		if rec.Code != tc.status {
			t.Errorf("%v: status %d, want %d", tc.err, rec.Code, tc.status)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Success {
			t.Errorf("%v: expected success=false", tc.err)
		}
		if envelope.Message != tc.message {
			t.Errorf("%v: message %q, want %q", tc.err, envelope.Message, tc.message)
		}
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("sql: connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Message != "internal server error" {
		t.Fatalf("internal cause leaked: %q", envelope.Message)
	}
}
