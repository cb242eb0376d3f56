package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// カウンタの値をレジストリから取り出すヘルパー
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	total := 0.0
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

// TestRecordLogin はログインカウンタが増加することを検証する。
func TestRecordLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginSuccess()
	c.RecordLoginSuccess()
	c.RecordLoginFailure()

	if got := counterValue(t, reg, "savoir_login_success_total"); got != 2 {
		t.Errorf("login_success_total = %v, want 2", got)
	}
	if got := counterValue(t, reg, "savoir_login_fail_total"); got != 1 {
		t.Errorf("login_fail_total = %v, want 1", got)
	}
}

// TestRecordApplicationDecided は審査結果がラベル別に記録されることを検証する。
func TestRecordApplicationDecided(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordApplicationDecided(true)
	c.RecordApplicationDecided(true)
	c.RecordApplicationDecided(false)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() != "savoir_applications_decided_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			label := m.GetLabel()[0].GetValue()
			val := m.GetCounter().GetValue()
			switch label {
			case "approved":
				if val != 2 {
					t.Errorf("approved = %v, want 2", val)
				}
			case "rejected":
				if val != 1 {
					t.Errorf("rejected = %v, want 1", val)
				}
			default:
				t.Errorf("unexpected decision label %q", label)
			}
		}
		return
	}
	t.Error("savoir_applications_decided_total metric not found")
}

// TestObserveRequest はステータスコード別カウンタとレイテンシが記録されることを検証する。
func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest(200, 10*time.Millisecond)
	c.ObserveRequest(200, 20*time.Millisecond)
	c.ObserveRequest(404, 5*time.Millisecond)

	if got := counterValue(t, reg, "savoir_http_status_total"); got != 3 {
		t.Errorf("http_status_total = %v, want 3", got)
	}
}

// TestHandler は/metricsのレスポンスにメトリクスが含まれることを検証する。
func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordApplicationSubmitted()
	c.RecordUpload("image")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "savoir_applications_submitted_total 1") {
		t.Error("applications counter missing from scrape output")
	}
	if !strings.Contains(string(body), `savoir_uploads_total{kind="image"} 1`) {
		t.Error("uploads counter missing from scrape output")
	}
}
