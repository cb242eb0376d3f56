package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/model"
)

// ContentServiceInterface はコンテンツハンドラーが必要とするサービスインターフェース。
type ContentServiceInterface interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) (*model.ContentEntry, error)
}

// ContentHandler はサイト設定テキストのHTTPハンドラー。
type ContentHandler struct {
	service ContentServiceInterface
}

// NewContentHandler はContentHandlerを生成する。
func NewContentHandler(service ContentServiceInterface) *ContentHandler {
	return &ContentHandler{service: service}
}

// upsertContentRequest はコンテンツ設定リクエストのボディ。
type upsertContentRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// contentEntryResponse はコンテンツ1件のAPIレスポンス。
type contentEntryResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetAll は全コンテンツをキー→値のマップで返す。
// GET /content
func (h *ContentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.GetAll(r.Context())
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// Get は指定キーの値を返す。未設定のキーは空の値を返す。
// GET /content/{key}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.service.Get(r.Context(), key)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

// Upsert はキーの値を設定する。既存キーは上書きされる。
// PUT /content
func (h *ContentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.service.Upsert(r.Context(), req.Key, req.Value)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contentEntryResponse{
		Key:       entry.Key,
		Value:     entry.Value,
		UpdatedAt: entry.UpdatedAt,
	})
}
