// Package auth は管理者認証とベアラートークンの発行・検証を提供する。
//
// セッションはステートレス（自己検証型の署名付きトークン）で、
// サーバー側にセッションレコードを持たない。保持者がトークンを破棄すれば
// ログアウトとなる。有効期限前の強制失効はできない（設計上のトレードオフ）。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BcryptCost  int
}

// Claims はトークンに載せる管理者アイデンティティ。
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service は管理者認証のビジネスロジックを提供する。
type Service struct {
	adminRepo repository.AdminRepository
	config    ServiceConfig
}

// NewService はServiceを生成する。
func NewService(adminRepo repository.AdminRepository, config ServiceConfig) *Service {
	return &Service{
		adminRepo: adminRepo,
		config:    config,
	}
}

// Login はメールアドレスとパスワードを検証し、トークンを発行する。
// パスワード比較はbcryptハッシュに対して行い、平文比較はしない。
// メールアドレス不明とパスワード不一致は同一のエラーで返す。
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.Identity, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to find admin: %w", err)
	}
	if admin == nil {
		slog.Warn("login failed: unknown email", slog.String("email", email))
		return "", nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed: password mismatch", slog.String("admin_id", admin.ID))
		return "", nil, model.NewInvalidCredentialsError()
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("admin logged in", slog.String("admin_id", admin.ID))

	return token, &model.Identity{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
	}, nil
}

// Validate はトークンを検証し、管理者アイデンティティを返す。
// 署名不正・改ざん・アルゴリズム不一致はUnauthorized、期限切れはTokenExpiredを返す。
// トークンは自己検証型のためストアへのアクセスは発生しない。
func (s *Service) Validate(tokenString string) (*model.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(s.config.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.NewTokenExpiredError()
		}
		return nil, model.NewUnauthorizedError()
	}

	if claims.Subject == "" {
		return nil, model.NewUnauthorizedError()
	}

	return &model.Identity{
		AdminID: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// HashPassword はパスワードのbcryptハッシュを生成する。
// シード処理およびプロビジョニング経路で使用する。
func (s *Service) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// issueToken は管理者アイデンティティと有効期限を載せたHS256署名トークンを生成する。
func (s *Service) issueToken(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: admin.Email,
		Name:  admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
