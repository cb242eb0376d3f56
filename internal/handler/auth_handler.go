package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login は資格情報を検証してトークンを発行する。
	Login(ctx context.Context, email, password string) (string, *model.Identity, error)
}

// LoginRecorder はログイン結果のメトリクス記録インターフェース。
type LoginRecorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	recorder LoginRecorder
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, recorder LoginRecorder) *AuthHandler {
	return &AuthHandler{
		service:  service,
		recorder: recorder,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

// adminResponse は管理者情報のAPIレスポンス。
type adminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login は資格情報を検証してベアラートークンを返す。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, identity, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recorder.RecordLoginFailure()
		middleware.WriteServiceError(w, err)
		return
	}

	h.recorder.RecordLoginSuccess()
	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		Admin: adminResponse{
			ID:    identity.AdminID,
			Email: identity.Email,
			Name:  identity.Name,
		},
	})
}

// Me は現在の管理者情報を返す。認証ミドルウェアの背後で呼ばれる。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	writeJSON(w, http.StatusOK, adminResponse{
		ID:    identity.AdminID,
		Email: identity.Email,
		Name:  identity.Name,
	})
}
