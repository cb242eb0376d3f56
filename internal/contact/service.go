// Package contact は一般公開フォームからの問い合わせの管理を提供する。
package contact

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

// MessageInput は問い合わせフォームの入力
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate は問い合わせ入力を検証する
func (in MessageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Subject, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.Message, validation.Required, validation.Length(5, 5000)),
	)
}

// Service は問い合わせメッセージを扱うサービス
type Service struct {
	messages repository.MessageRepository
	logger   *slog.Logger
}

// NewService はServiceを生成する
func NewService(messages repository.MessageRepository, logger *slog.Logger) *Service {
	return &Service{messages: messages, logger: logger}
}

// Submit は問い合わせを受け付ける。メッセージは未読状態で作成される。
func (s *Service) Submit(ctx context.Context, input MessageInput) (*model.ContactMessage, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	msg := &model.ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   input.Message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.logger.Info("contact message received", slog.String("message_id", msg.ID))
	return msg, nil
}

// List は全メッセージを新着順で返す
func (s *Service) List(ctx context.Context) ([]*model.ContactMessage, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// MarkRead はメッセージを既読にする
func (s *Service) MarkRead(ctx context.Context, id string) error {
	ok, err := s.messages.MarkRead(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("Message")
	}
	return nil
}

// Delete はメッセージを削除する
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.messages.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("Message")
	}
	s.logger.Info("contact message deleted", slog.String("message_id", id))
	return nil
}
