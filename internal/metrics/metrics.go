// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやミドルウェアから利用する。
type MetricsCollector interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordApplicationSubmitted()
	RecordApplicationDecided(approved bool)
	RecordUpload(kind string)
	ObserveRequest(statusCode int, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	loginSuccess   prometheus.Counter
	loginFail      prometheus.Counter
	applications   prometheus.Counter
	decisions      *prometheus.CounterVec
	uploads        *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savoir_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savoir_login_fail_total",
			Help: "ログイン失敗の合計数",
		}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savoir_applications_submitted_total",
			Help: "受け付けた入会申請の合計数",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "savoir_applications_decided_total",
			Help: "審査済み入会申請の合計数",
		}, []string{"decision"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "savoir_uploads_total",
			Help: "保存されたアップロードファイルの合計数",
		}, []string{"kind"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "savoir_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "savoir_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFail,
		c.applications,
		c.decisions,
		c.uploads,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordApplicationSubmitted は入会申請の受付を記録する。
func (c *Collector) RecordApplicationSubmitted() {
	c.applications.Inc()
}

// RecordApplicationDecided は入会申請の審査結果を記録する。
func (c *Collector) RecordApplicationDecided(approved bool) {
	decision := "rejected"
	if approved {
		decision = "approved"
	}
	c.decisions.WithLabelValues(decision).Inc()
}

// RecordUpload はアップロードの保存を記録する。
func (c *Collector) RecordUpload(kind string) {
	c.uploads.WithLabelValues(kind).Inc()
}

// ObserveRequest はHTTPレスポンスのステータスとレイテンシを記録する。
// ロギングミドルウェアから呼ばれる。
func (c *Collector) ObserveRequest(statusCode int, duration time.Duration) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var _ MetricsCollector = (*Collector)(nil)
