package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/palengkeproph/palengkeproph-backend/api/middleware"
	"github.com/palengkeproph/palengkeproph-backend/internal/users"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
)

type stubUserService struct {
	list []*users.UserDTO
	user *users.UserDTO
	err  error

	deletedID uint
	updatedID uint
	updateReq users.UpdateUserRequest
}

func (s *stubUserService) List(ctx context.Context) ([]*users.UserDTO, error) {
	return s.list, s.err
}

func (s *stubUserService) Get(ctx context.Context, id uint) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUserService) Update(ctx context.Context, id uint, req users.UpdateUserRequest) (*users.UserDTO, error) {
	s.updatedID = id
	s.updateReq = req
	return s.user, s.err
}

func (s *stubUserService) Delete(ctx context.Context, id uint) error {
	s.deletedID = id
	return s.err
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUserListSuccess(t *testing.T) {
	svc := &stubUserService{list: []*users.UserDTO{{ID: 1, Username: "ana"}, {ID: 2, Username: "bea"}}}
	handler := UserList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}

	var list []map[string]any
	if err := json.NewDecoder(respRec.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 || list[0]["username"] != "ana" {
		t.Fatalf("unexpected list %v", list)
	}
}

func TestUserRetrieveNotFound(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Not found.")}
	handler := UserRetrieve(svc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/99/", nil), "id", "99")
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", respRec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(respRec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["detail"] != "Not found." {
		t.Fatalf("unexpected detail %q", payload["detail"])
	}
}

func TestUserRetrieveNonNumericID(t *testing.T) {
	svc := &stubUserService{user: &users.UserDTO{ID: 1}}
	handler := UserRetrieve(svc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/abc/", nil), "id", "abc")
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-numeric id got %d", respRec.Code)
	}
}

func TestUserUpdatePassesParsedIDAndBody(t *testing.T) {
	svc := &stubUserService{user: &users.UserDTO{ID: 7, Username: "ana"}}
	handler := UserUpdate(svc, nil)

	body := []byte(`{"first_name":"Ana","is_staff":true}`)
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/users/7/", bytes.NewReader(body)), "id", "7")
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
	if svc.updatedID != 7 {
		t.Fatalf("expected id 7, got %d", svc.updatedID)
	}
	if svc.updateReq.FirstName == nil || *svc.updateReq.FirstName != "Ana" {
		t.Fatalf("expected first_name to reach the service, got %+v", svc.updateReq)
	}
	if svc.updateReq.Username != nil {
		t.Fatal("absent fields must stay nil")
	}
}

func TestUserUpdateRejectsShortPassword(t *testing.T) {
	svc := &stubUserService{user: &users.UserDTO{ID: 7}}
	handler := UserUpdate(svc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/users/7/", bytes.NewReader([]byte(`{"password":"short"}`))), "id", "7")
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
	if svc.updatedID != 0 {
		t.Fatal("invalid payloads must not reach the service")
	}
}

func TestUserDeleteNoContent(t *testing.T) {
	svc := &stubUserService{}
	handler := UserDelete(svc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/3/", nil), "id", "3")
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", respRec.Code)
	}
	if svc.deletedID != 3 {
		t.Fatalf("expected delete id 3, got %d", svc.deletedID)
	}
	if respRec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", respRec.Body.String())
	}
}

func TestUserMeUsesContextID(t *testing.T) {
	svc := &stubUserService{user: &users.UserDTO{ID: 42, Username: "ana"}}
	handler := UserMe(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 42))
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}

	var payload map[string]any
	if err := json.NewDecoder(respRec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["username"] != "ana" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestUserMeWithoutContextIs401(t *testing.T) {
	svc := &stubUserService{user: &users.UserDTO{ID: 42}}
	handler := UserMe(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/", nil)
	respRec := httptest.NewRecorder()
	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", respRec.Code)
	}
}
