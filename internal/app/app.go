package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/savoir/internal/article"
	"github.com/hitoshi/savoir/internal/auth"
	"github.com/hitoshi/savoir/internal/config"
	"github.com/hitoshi/savoir/internal/contact"
	"github.com/hitoshi/savoir/internal/content"
	"github.com/hitoshi/savoir/internal/database"
	"github.com/hitoshi/savoir/internal/document"
	"github.com/hitoshi/savoir/internal/handler"
	"github.com/hitoshi/savoir/internal/logger"
	"github.com/hitoshi/savoir/internal/media"
	"github.com/hitoshi/savoir/internal/membership"
	"github.com/hitoshi/savoir/internal/metrics"
	"github.com/hitoshi/savoir/internal/middleware"
	"github.com/hitoshi/savoir/internal/project"
	"github.com/hitoshi/savoir/internal/repository"
	"github.com/hitoshi/savoir/internal/security"
	"github.com/hitoshi/savoir/internal/seed"
	"github.com/hitoshi/savoir/internal/stats"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	adminRepo := repository.NewPostgresAdminRepo(db)
	applicationRepo := repository.NewPostgresApplicationRepo(db)
	memberRepo := repository.NewPostgresMemberRepo(db)
	contentRepo := repository.NewPostgresContentRepo(db)
	projectRepo := repository.NewPostgresProjectRepo(db)
	articleRepo := repository.NewPostgresArticleRepo(db)
	documentRepo := repository.NewPostgresDocumentRepo(db)
	messageRepo := repository.NewPostgresMessageRepo(db)

	// 3. メディアストレージとセキュリティガードの初期化
	blobStore, err := media.NewLocalBlobStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	fetchGuard := security.NewFetchGuard()

	// 4. ドメインサービスの初期化
	authService := auth.NewService(adminRepo, auth.ServiceConfig{
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: cfg.TokenExpiry,
		BcryptCost:  cfg.BcryptCost,
	})

	membershipService := membership.NewService(applicationRepo, memberRepo, slog.Default())
	contentService := content.NewService(contentRepo, slog.Default())
	mediaService := media.NewService(blobStore, fetchGuard, media.ServiceConfig{
		MaxUploadSize: cfg.UploadMaxSize,
		BaseURL:       cfg.BaseURL,
	}, slog.Default())
	projectService := project.NewService(projectRepo, slog.Default())
	articleService := article.NewService(articleRepo, slog.Default())
	documentService := document.NewService(documentRepo, slog.Default())
	contactService := contact.NewService(messageRepo, slog.Default())
	statsService := stats.NewService(memberRepo, projectRepo, articleRepo, applicationRepo, messageRepo)

	// 5. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 6. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimitLogin, cfg.RateLimitGeneral),
	)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		TokenValidator:    authService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Recorder:          collector,
		Observer:          collector,
		Gatherer:          registry,

		AuthService:       authService,
		MembershipService: membershipService,
		ContentService:    contentService,
		MediaService:      mediaService,
		ProjectService:    projectService,
		ArticleService:    articleService,
		DocumentService:   documentService,
		ContactService:    contactService,
		StatsService:      statsService,

		UploadDir:     cfg.UploadDir,
		MaxUploadSize: cfg.UploadMaxSize,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runSeed は初期データを投入する。
// 管理者アカウントと既定のサイト設定テキストを作成する。
// 既存データがある場合はスキップするため、何度実行しても安全。
func runSeed(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	adminRepo := repository.NewPostgresAdminRepo(db)
	hasher := auth.NewService(adminRepo, auth.ServiceConfig{
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: cfg.TokenExpiry,
		BcryptCost:  cfg.BcryptCost,
	})

	seeder := seed.NewSeeder(seed.Repos{
		Admins:   adminRepo,
		Contents: repository.NewPostgresContentRepo(db),
		Projects: repository.NewPostgresProjectRepo(db),
		Articles: repository.NewPostgresArticleRepo(db),
		Members:  repository.NewPostgresMemberRepo(db),
	}, hasher, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seeder.Run(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	slog.Info("seed completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
