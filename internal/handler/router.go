package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/savoir/internal/metrics"
	"github.com/hitoshi/savoir/internal/middleware"
)

// MetricsRecorder は全ハンドラーのメトリクス記録インターフェース。
type MetricsRecorder interface {
	LoginRecorder
	ApplicationRecorder
	UploadRecorder
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenValidator    middleware.TokenValidator
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Recorder          MetricsRecorder
	Observer          middleware.StatusObserver
	Gatherer          prometheus.Gatherer

	// サービス
	AuthService       AuthServiceInterface
	MembershipService MembershipServiceInterface
	ContentService    ContentServiceInterface
	MediaService      MediaServiceInterface
	ProjectService    ProjectServiceInterface
	ArticleService    ArticleServiceInterface
	DocumentService   DocumentServiceInterface
	ContactService    ContactServiceInterface
	StatsService      StatsServiceInterface

	// アップロードファイルの配信ディレクトリと上限サイズ
	UploadDir     string
	MaxUploadSize int64
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// 一般公開ルートは認証なしで到達できる。管理ルートはベアラートークン検証を通り、
// 検証に失敗したリクエストはハンドラーに到達する前に拒否される。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Observer))
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.Recorder)
	memberHandler := NewMemberHandler(deps.MembershipService, deps.Recorder)
	contentHandler := NewContentHandler(deps.ContentService)
	mediaHandler := NewMediaHandler(deps.MediaService, deps.Recorder, deps.MaxUploadSize)
	projectHandler := NewProjectHandler(deps.ProjectService)
	articleHandler := NewArticleHandler(deps.ArticleService)
	documentHandler := NewDocumentHandler(deps.DocumentService)
	contactHandler := NewContactHandler(deps.ContactService)
	statsHandler := NewStatsHandler(deps.StatsService)

	// --- 一般公開ルート ---

	// ログインにはIP単位のレート制限を適用する
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/auth/login", authHandler.Login)

	r.Get("/members", memberHandler.ListMembers)
	r.Post("/members/apply", memberHandler.Apply)

	r.Get("/projects", projectHandler.List)
	r.Get("/projects/{id}", projectHandler.Get)

	r.Get("/articles", articleHandler.ListPublic)
	r.Get("/articles/{id}", articleHandler.GetPublic)

	r.Get("/documents", documentHandler.List)

	r.Post("/contact", contactHandler.Submit)

	r.Get("/content", contentHandler.GetAll)
	r.Get("/content/{key}", contentHandler.Get)

	r.Get("/stats", statsHandler.Public)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	// 保存済みアップロードファイルの配信
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	// --- 管理ルート（ベアラートークン必須） ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenValidator))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/auth/me", authHandler.Me)

		// 入会申請の審査と会員管理
		r.Get("/members/pending", memberHandler.ListPending)
		r.Get("/members/applications", memberHandler.ListApplications)
		r.Put("/members/{id}/approve", memberHandler.Approve)
		r.Put("/members/{id}/reject", memberHandler.Reject)
		r.Post("/members", memberHandler.CreateMember)
		r.Put("/members/{id}", memberHandler.UpdateMember)
		r.Delete("/members/{id}", memberHandler.DeleteMember)

		r.Put("/content", contentHandler.Upsert)

		r.Post("/projects", projectHandler.Create)
		r.Put("/projects/{id}", projectHandler.Update)
		r.Delete("/projects/{id}", projectHandler.Delete)

		r.Post("/articles", articleHandler.Create)
		r.Put("/articles/{id}", articleHandler.Update)
		r.Delete("/articles/{id}", articleHandler.Delete)

		r.Post("/documents", documentHandler.Create)
		r.Delete("/documents/{id}", documentHandler.Delete)

		r.Get("/contact", contactHandler.List)
		r.Put("/contact/{id}/read", contactHandler.MarkRead)
		r.Delete("/contact/{id}", contactHandler.Delete)

		r.Get("/admin/stats", statsHandler.Admin)

		r.Post("/upload/image", mediaHandler.UploadImage)
		r.Post("/upload/document", mediaHandler.UploadDocument)
		r.Post("/upload/image/import", mediaHandler.ImportImage)
	})

	return r
}
