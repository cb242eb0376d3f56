// Package content はサイト設定テキスト（キーと値の組）の管理を提供する。
package content

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// キーは英小文字・数字・アンダースコア・ドットのみ
var keyPattern = regexp.MustCompile(`^[a-z0-9_.]{1,100}$`)

// Service はサイト設定テキストを扱うサービス
type Service struct {
	contents  repository.ContentRepository
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewService はServiceを生成する。
// 値はUGCポリシーでサニタイズして保存する。基本的な書式タグは残る。
func NewService(contents repository.ContentRepository, logger *slog.Logger) *Service {
	return &Service{
		contents:  contents,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// Get は指定キーの値を返す。未設定のキーは空文字列を返し、エラーにはしない。
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", model.NewValidationError("clé de contenu invalide")
	}
	entry, err := s.contents.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to get content: %w", err)
	}
	if entry == nil {
		return "", nil
	}
	return entry.Value, nil
}

// GetAll は全エントリをキー→値のマップで返す
func (s *Service) GetAll(ctx context.Context) (map[string]string, error) {
	entries, err := s.contents.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

// Upsert はキーの値を設定する。既存キーは上書き（last-write-wins）。
func (s *Service) Upsert(ctx context.Context, key, value string) (*model.ContentEntry, error) {
	if !keyPattern.MatchString(key) {
		return nil, model.NewValidationError("clé de contenu invalide")
	}

	entry := &model.ContentEntry{
		Key:       key,
		Value:     s.sanitizer.Sanitize(value),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.contents.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to upsert content: %w", err)
	}

	s.logger.Info("content updated", slog.String("key", key))
	return entry, nil
}
