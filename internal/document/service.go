// Package document は公開文書（定款、内部規則など）の管理を提供する。
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// DocumentInput は文書登録の入力
type DocumentInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"file_url"`
	FileType    string `json:"file_type"`
	Category    string `json:"category"`
}

// Validate は文書入力を検証する
func (in DocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.FileURL, validation.Required, is.URL),
		validation.Field(&in.FileType, validation.Required),
		validation.Field(&in.Category, validation.Required, validation.By(validateCategory)),
	)
}

func validateCategory(value interface{}) error {
	s, _ := value.(string)
	if !model.DocumentCategory(s).IsValid() {
		return fmt.Errorf("catégorie de document invalide")
	}
	return nil
}

// Service は文書を扱うサービス
type Service struct {
	documents repository.DocumentRepository
	logger    *slog.Logger
}

// NewService はServiceを生成する
func NewService(documents repository.DocumentRepository, logger *slog.Logger) *Service {
	return &Service{documents: documents, logger: logger}
}

// Create は文書を登録する
func (s *Service) Create(ctx context.Context, input DocumentInput) (*model.Document, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		FileURL:     input.FileURL,
		FileType:    input.FileType,
		Category:    model.DocumentCategory(input.Category),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Info("document created", slog.String("document_id", doc.ID))
	return doc, nil
}

// List は文書一覧を返す。categoryが空なら全件。
func (s *Service) List(ctx context.Context, category string) ([]*model.Document, error) {
	if category != "" && !model.DocumentCategory(category).IsValid() {
		return nil, model.NewValidationError("catégorie de document invalide")
	}
	docs, err := s.documents.List(ctx, model.DocumentCategory(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Delete は文書を削除する
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.documents.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("Document")
	}
	s.logger.Info("document deleted", slog.String("document_id", id))
	return nil
}
