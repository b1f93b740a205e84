package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
)

func TestWriteSuccessWritesBarePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]any{"id": 1, "username": "ana"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["username"] != "ana" {
		t.Fatalf("expected bare payload, got %v", body)
	}
	if _, ok := body["data"]; ok {
		t.Fatal("payload must not be wrapped in an envelope")
	}
}

func TestWriteErrorValidationRendersFieldMap(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.FieldError("username", "Username already exists.")
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := map[string]string{"username": "Username already exists."}
	if len(body) != 1 || body["username"] != want["username"] {
		t.Fatalf("expected %v, got %v", want, body)
	}
}

func TestWriteErrorUnauthorizedRendersDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeUnauthorized, "No active account found with the given credentials")
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body Detail
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Detail != "No active account found with the given credentials" {
		t.Fatalf("unexpected detail %q", body.Detail)
	}
}

func TestWriteErrorUntypedBecomesServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body Detail
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Detail != "A server error occurred." {
		t.Fatalf("internal errors must not leak their message, got %q", body.Detail)
	}
}
