package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/savoir/internal/model"
)

// --- モック定義 ---

type mockAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *model.Identity, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *model.Identity, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return "", nil, model.NewInvalidCredentialsError()
}

// mockRecorder は全メトリクス記録インターフェースを満たすモック。
type mockRecorder struct {
	loginSuccess int
	loginFailure int
	submitted    int
	approved     int
	rejected     int
	uploads      []string
}

func (m *mockRecorder) RecordLoginSuccess()         { m.loginSuccess++ }
func (m *mockRecorder) RecordLoginFailure()         { m.loginFailure++ }
func (m *mockRecorder) RecordApplicationSubmitted() { m.submitted++ }
func (m *mockRecorder) RecordApplicationDecided(approved bool) {
	if approved {
		m.approved++
	} else {
		m.rejected++
	}
}
func (m *mockRecorder) RecordUpload(kind string) { m.uploads = append(m.uploads, kind) }

// --- テスト ---

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *model.Identity, error) {
			return "token-abc", &model.Identity{
				AdminID: "admin-1",
				Email:   email,
				Name:    "Admin",
			}, nil
		},
	}
	rec := &mockRecorder{}
	h := NewAuthHandler(svc, rec)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@savoir.org","password":"secret"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp loginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "token-abc" {
		t.Errorf("token = %q", resp.Token)
	}
	if resp.Admin.Email != "admin@savoir.org" {
		t.Errorf("admin email = %q", resp.Admin.Email)
	}
	if rec.loginSuccess != 1 {
		t.Errorf("login success metric = %d, want 1", rec.loginSuccess)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	rec := &mockRecorder{}
	h := NewAuthHandler(&mockAuthService{}, rec)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@savoir.org","password":"wrong"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["code"] != model.ErrCodeInvalidCredentials {
		t.Errorf("code = %v, want %s", body["code"], model.ErrCodeInvalidCredentials)
	}
	if rec.loginFailure != 1 {
		t.Errorf("login failure metric = %d, want 1", rec.loginFailure)
	}
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockRecorder{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
