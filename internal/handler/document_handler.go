package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/savoir/internal/document"
	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/model"
)

// DocumentServiceInterface は文書ハンドラーが必要とするサービスインターフェース。
type DocumentServiceInterface interface {
	Create(ctx context.Context, input document.DocumentInput) (*model.Document, error)
	List(ctx context.Context, category string) ([]*model.Document, error)
	Delete(ctx context.Context, id string) error
}

// DocumentHandler は公開文書のHTTPハンドラー。
type DocumentHandler struct {
	service DocumentServiceInterface
}

// NewDocumentHandler はDocumentHandlerを生成する。
func NewDocumentHandler(service DocumentServiceInterface) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// documentResponse は文書のAPIレスポンス。
type documentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// List は文書一覧を返す。
// GET /documents?category=
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create は文書を登録する。
// POST /documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input document.DocumentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	d, err := h.service.Create(r.Context(), input)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentResponse(d))
}

// Delete は文書を削除する。
// DELETE /documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDocumentResponse(d *model.Document) documentResponse {
	return documentResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FileURL:     d.FileURL,
		FileType:    d.FileType,
		Category:    string(d.Category),
		CreatedAt:   d.CreatedAt,
	}
}
