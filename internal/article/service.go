// Package article はニュース記事の管理を提供する。
package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// ArticleInput は記事の作成・更新の入力
type ArticleInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

// Validate は記事入力を検証する
func (in ArticleInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.Category, validation.Length(0, 80)),
	)
}

// Service は記事を扱うサービス
type Service struct {
	articles  repository.ArticleRepository
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewService はServiceを生成する。本文は保存前にUGCポリシーでサニタイズする。
func NewService(articles repository.ArticleRepository, logger *slog.Logger) *Service {
	return &Service{
		articles:  articles,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// Create は記事を作成する
func (s *Service) Create(ctx context.Context, input ArticleInput) (*model.Article, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	article := &model.Article{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(input.Title),
		Content:   s.sanitizer.Sanitize(input.Content),
		Excerpt:   s.sanitizer.Sanitize(input.Excerpt),
		Category:  strings.TrimSpace(input.Category),
		ImageURL:  input.ImageURL,
		Published: input.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.logger.Info("article created",
		slog.String("article_id", article.ID),
		slog.Bool("published", article.Published))
	return article, nil
}

// List は記事一覧を返す。publishedOnlyは一般公開向けの絞り込み。
func (s *Service) List(ctx context.Context, category string, publishedOnly bool) ([]*model.Article, error) {
	articles, err := s.articles.List(ctx, category, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// Get は記事を1件返す。publishedOnlyがtrueの場合、非公開記事はNOT_FOUND扱い。
func (s *Service) Get(ctx context.Context, id string, publishedOnly bool) (*model.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil || (publishedOnly && !article.Published) {
		return nil, model.NewNotFoundError("Article")
	}
	return article, nil
}

// Update は記事を更新する
func (s *Service) Update(ctx context.Context, id string, input ArticleInput) (*model.Article, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return nil, model.NewNotFoundError("Article")
	}

	article.Title = strings.TrimSpace(input.Title)
	article.Content = s.sanitizer.Sanitize(input.Content)
	article.Excerpt = s.sanitizer.Sanitize(input.Excerpt)
	article.Category = strings.TrimSpace(input.Category)
	article.ImageURL = input.ImageURL
	article.Published = input.Published
	article.UpdatedAt = time.Now().UTC()

	ok, err := s.articles.Update(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	if !ok {
		return nil, model.NewNotFoundError("Article")
	}

	s.logger.Info("article updated", slog.String("article_id", id))
	return article, nil
}

// Delete は記事を削除する
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.articles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("Article")
	}
	s.logger.Info("article deleted", slog.String("article_id", id))
	return nil
}
