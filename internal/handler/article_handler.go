package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/savoir/internal/article"
	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/model"
)

// ArticleServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type ArticleServiceInterface interface {
	Create(ctx context.Context, input article.ArticleInput) (*model.Article, error)
	List(ctx context.Context, category string, publishedOnly bool) ([]*model.Article, error)
	Get(ctx context.Context, id string, publishedOnly bool) (*model.Article, error)
	Update(ctx context.Context, id string, input article.ArticleInput) (*model.Article, error)
	Delete(ctx context.Context, id string) error
}

// ArticleHandler は記事のHTTPハンドラー。
// 一般公開ルートでは公開済み記事のみを返す。
type ArticleHandler struct {
	service ArticleServiceInterface
}

// NewArticleHandler はArticleHandlerを生成する。
func NewArticleHandler(service ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// articleResponse は記事のAPIレスポンス。
type articleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListPublic は公開済み記事の一覧を返す。
// GET /articles?category=
func (h *ArticleHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.List(r.Context(), r.URL.Query().Get("category"), true)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPublic は公開済み記事の詳細を返す。非公開記事は404となる。
// GET /articles/{id}
func (h *ArticleHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), true)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponse(a))
}

// Create は記事を作成する。
// POST /articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input article.ArticleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.service.Create(r.Context(), input)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toArticleResponse(a))
}

// Update は記事を更新する。
// PUT /articles/{id}
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input article.ArticleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponse(a))
}

// Delete は記事を削除する。
// DELETE /articles/{id}
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toArticleResponse(a *model.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Excerpt:   a.Excerpt,
		Category:  a.Category,
		ImageURL:  a.ImageURL,
		Published: a.Published,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
