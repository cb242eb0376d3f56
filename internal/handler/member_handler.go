package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/savoir/internal/membership"
	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/model"
)

// MembershipServiceInterface は会員ハンドラーが必要とするサービスインターフェース。
type MembershipServiceInterface interface {
	SubmitApplication(ctx context.Context, input membership.SubmitApplicationInput) (*model.MemberApplication, error)
	ListApplications(ctx context.Context, status string) ([]*model.MemberApplication, error)
	Decide(ctx context.Context, applicationID string, input membership.DecideInput) (*model.MemberApplication, error)
	CreateMember(ctx context.Context, input membership.MemberInput) (*model.Member, error)
	ListMembers(ctx context.Context, memberType string) ([]*model.Member, error)
	GetMember(ctx context.Context, memberID string) (*model.Member, error)
	UpdateMember(ctx context.Context, memberID string, input membership.MemberInput) (*model.Member, error)
	DeleteMember(ctx context.Context, memberID string) error
}

// ApplicationRecorder は入会申請のメトリクス記録インターフェース。
type ApplicationRecorder interface {
	RecordApplicationSubmitted()
	RecordApplicationDecided(approved bool)
}

// MemberHandler は会員・入会申請のHTTPハンドラー。
type MemberHandler struct {
	service  MembershipServiceInterface
	recorder ApplicationRecorder
}

// NewMemberHandler はMemberHandlerを生成する。
func NewMemberHandler(service MembershipServiceInterface, recorder ApplicationRecorder) *MemberHandler {
	return &MemberHandler{
		service:  service,
		recorder: recorder,
	}
}

// applicationResponse は入会申請のAPIレスポンス。
type applicationResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Motivation  string     `json:"motivation"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// memberResponse は会員のAPIレスポンス。
type memberResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	MemberType string    `json:"member_type"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Apply は入会申請を受け付ける。
// POST /members/apply
func (h *MemberHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var input membership.SubmitApplicationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	app, err := h.service.SubmitApplication(r.Context(), input)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	h.recorder.RecordApplicationSubmitted()
	writeJSON(w, http.StatusCreated, toApplicationResponse(app))
}

// ListApplications は申請一覧を返す。
// GET /members/applications?status=
func (h *MemberHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListApplications(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListPending は未審査の申請一覧を返す。
// GET /members/pending
func (h *MemberHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListApplications(r.Context(), string(model.ApplicationStatusPending))
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	writeJSON(w, http.StatusOK, out)
}

// Approve は入会申請を承認する。
// PUT /members/{id}/approve?member_type=
func (h *MemberHandler) Approve(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.Decide(r.Context(), chi.URLParam(r, "id"), membership.DecideInput{
		Approve:    true,
		MemberType: r.URL.Query().Get("member_type"),
	})
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	h.recorder.RecordApplicationDecided(true)
	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// Reject は入会申請を却下する。申請レコードは削除されず照会可能なまま残る。
// PUT /members/{id}/reject
func (h *MemberHandler) Reject(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.Decide(r.Context(), chi.URLParam(r, "id"), membership.DecideInput{
		Approve: false,
	})
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	h.recorder.RecordApplicationDecided(false)
	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// ListMembers は会員一覧を返す。
// GET /members?member_type=
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context(), r.URL.Query().Get("member_type"))
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateMember は会員を直接登録する。
// POST /members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var input membership.MemberInput
	if !decodeJSON(w, r, &input) {
		return
	}

	member, err := h.service.CreateMember(r.Context(), input)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

// UpdateMember は会員情報を更新する。
// PUT /members/{id}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var input membership.MemberInput
	if !decodeJSON(w, r, &input) {
		return
	}

	member, err := h.service.UpdateMember(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		middleware.WriteServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// DeleteMember は会員を削除する。
// DELETE /members/{id}
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toApplicationResponse(app *model.MemberApplication) applicationResponse {
	return applicationResponse{
		ID:          app.ID,
		Name:        app.Name,
		Email:       app.Email,
		Phone:       app.Phone,
		Motivation:  app.Motivation,
		Status:      string(app.Status),
		SubmittedAt: app.SubmittedAt,
		DecidedAt:   app.DecidedAt,
	}
}

func toMemberResponse(m *model.Member) memberResponse {
	return memberResponse{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		MemberType: string(m.MemberType),
		Bio:        m.Bio,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
