package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/palengkeproph/palengkeproph-backend/internal/auth"
	"github.com/palengkeproph/palengkeproph-backend/internal/users"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
)

type stubRegisterService struct {
	dto *users.UserDTO
	err error
}

func (s stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return s.dto, s.err
}

func TestRegisterSuccess(t *testing.T) {
	dto := &users.UserDTO{ID: 1, Username: "ana", Email: "ana@example.com", Status: "active", IsActive: true}
	handler := Register(stubRegisterService{dto: dto}, nil)

	body := []byte(`{"username":"ana","email":"ana@example.com","password":"Secret123!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", respRec.Code)
	}

	var payload map[string]any
	if err := json.NewDecoder(respRec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["username"] != "ana" || payload["id"] != float64(1) {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["password"]; ok {
		t.Fatal("response must not include a password field")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	handler := Register(stubRegisterService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/register/", bytes.NewReader([]byte(`{}`)))
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}

	var fields map[string]string
	if err := json.NewDecoder(respRec.Body).Decode(&fields); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{"username", "email", "password"} {
		if fields[field] != "This field is required." {
			t.Fatalf("expected required message for %s, got %q", field, fields[field])
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	handler := Register(stubRegisterService{err: pkgerrors.FieldError("username", "Username already exists.")}, nil)

	body := []byte(`{"username":"ana","email":"ana@example.com","password":"Secret123!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register/", bytes.NewReader(body))
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}

	var fields map[string]string
	if err := json.NewDecoder(respRec.Body).Decode(&fields); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(fields) != 1 || fields["username"] != "Username already exists." {
		t.Fatalf("unexpected body %v", fields)
	}
}
