package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/savoir/internal/model"
)

// テスト用のレート制限設定を返す。クリーンアップは長めにして干渉を避ける。
func testRateLimiterConfig(loginBurst, generalBurst int) RateLimiterConfig {
	return RateLimiterConfig{
		LoginRate:       rate.Limit(0.001),
		LoginBurst:      loginBurst,
		GeneralRate:     rate.Limit(0.001),
		GeneralBurst:    generalBurst,
		CleanupInterval: time.Hour,
	}
}

// バースト分を超えたログイン試行が429になることを検証
func TestRateLimiter_LoginBurstExceeded(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(3, 100))
	defer rl.Stop()

	handler := rl.LoginMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "192.0.2.1:12345"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

// 別IPのログイン試行は独立して制限されることを検証
func TestRateLimiter_LoginPerIP(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 100))
	defer rl.Stop()

	handler := rl.LoginMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req1 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req1.RemoteAddr = "192.0.2.1:1000"
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)

	// 同一IPの2回目は制限される
	req2 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req2.RemoteAddr = "192.0.2.1:2000"
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("same IP second attempt: status = %d, want %d", rec2.Code, http.StatusTooManyRequests)
	}

	// 別IPは独立
	req3 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req3.RemoteAddr = "198.51.100.7:3000"
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	if rec3.Code != http.StatusOK {
		t.Errorf("different IP: status = %d, want %d", rec3.Code, http.StatusOK)
	}
}

// 管理APIのレート制限が管理者単位であることを検証
func TestRateLimiter_GeneralPerIdentity(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(100, 2))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(adminID string) int {
		req := httptest.NewRequest(http.MethodPut, "/content", nil)
		req.RemoteAddr = "192.0.2.1:1000"
		req = req.WithContext(ContextWithIdentity(req.Context(), &model.Identity{AdminID: adminID}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("admin-1"); code != http.StatusOK {
		t.Fatalf("first request: status = %d", code)
	}
	if code := send("admin-1"); code != http.StatusOK {
		t.Fatalf("second request: status = %d", code)
	}
	if code := send("admin-1"); code != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, status = %d", code)
	}

	// 別の管理者は独立したバジェットを持つ
	if code := send("admin-2"); code != http.StatusOK {
		t.Errorf("different admin should not be limited, status = %d", code)
	}
}
