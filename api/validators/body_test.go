package validators

import (
	"testing"

	pkgerrors "github.com/xmxsystem/webhook-backend/pkg/errors"
)

type samplePayload struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeJSONBytesAcceptsValidPayload(t *testing.T) {
	var dest samplePayload
	if err := DecodeJSONBytes([]byte(`{"id":"w1","email":"a@b.com"}`), &dest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.ID != "w1" {
		t.Fatalf("unexpected id %q", dest.ID)
	}
}

func TestDecodeJSONBytesRejectsMalformedJSON(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBytes([]byte(`{"id":`), &dest)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBytesRejectsSchemaViolations(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBytes([]byte(`{"id":"w1","email":"not-an-email"}`), &dest)
	if err == nil {
		t.Fatal("expected error for invalid email")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["email"] == "" {
		t.Fatalf("expected field detail, got %v", typed.Details())
	}
}
