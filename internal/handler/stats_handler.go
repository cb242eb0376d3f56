package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/stats"
)

// StatsServiceInterface は統計ハンドラーが必要とするサービスインターフェース。
type StatsServiceInterface interface {
	Public(ctx context.Context) (*stats.PublicStats, error)
	Admin(ctx context.Context) (*stats.AdminStats, error)
}

// StatsHandler はサイト統計のHTTPハンドラー。
type StatsHandler struct {
	service StatsServiceInterface
}

// NewStatsHandler はStatsHandlerを生成する。
func NewStatsHandler(service StatsServiceInterface) *StatsHandler {
	return &StatsHandler{service: service}
}

// Public は一般公開向けの統計を返す。
// GET /stats
func (h *StatsHandler) Public(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Public(r.Context())
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Admin は管理画面向けの統計を返す。
// GET /admin/stats
func (h *StatsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Admin(r.Context())
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
