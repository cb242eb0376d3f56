// Package membership は入会申請の受付・審査と会員台帳の管理を提供する。
package membership

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// SubmitApplicationInput は入会申請の入力
type SubmitApplicationInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Motivation string `json:"motivation"`
}

// Validate は入会申請の入力を検証する
func (in SubmitApplicationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Phone, validation.Required, validation.By(validatePhone)),
		validation.Field(&in.Motivation, validation.Required, validation.Length(10, 2000)),
	)
}

// validatePhone は電話番号の形式を検証する。国番号なしの場合はモーリタニアとして解釈する。
func validatePhone(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, "MR")
	if err != nil {
		return fmt.Errorf("numéro de téléphone invalide")
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("numéro de téléphone invalide")
	}
	return nil
}

// MemberInput は会員の作成・更新の入力
type MemberInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	MemberType string `json:"member_type"`
	Bio        string `json:"bio"`
}

// Validate は会員入力を検証する
func (in MemberInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Phone, validation.By(validatePhone)),
		validation.Field(&in.MemberType, validation.Required, validation.By(validateMemberType)),
	)
}

func validateMemberType(value interface{}) error {
	s, _ := value.(string)
	if !model.MemberType(s).IsValid() {
		return fmt.Errorf("type de membre invalide")
	}
	return nil
}

// Service は入会申請と会員台帳を扱うサービス
type Service struct {
	applications repository.ApplicationRepository
	members      repository.MemberRepository
	logger       *slog.Logger
}

// NewService はServiceを生成する
func NewService(applications repository.ApplicationRepository, members repository.MemberRepository, logger *slog.Logger) *Service {
	return &Service{
		applications: applications,
		members:      members,
		logger:       logger,
	}
}

// SubmitApplication は入会申請を受け付ける。申請は必ずpendingで作成される。
func (s *Service) SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*model.MemberApplication, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	app := &model.MemberApplication{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Motivation:  strings.TrimSpace(input.Motivation),
		Status:      model.ApplicationStatusPending,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info("membership application submitted",
		slog.String("application_id", app.ID),
		slog.String("email", app.Email))

	return app, nil
}

// ListApplications はステータスで絞り込んだ申請一覧を返す。statusが空なら全件。
func (s *Service) ListApplications(ctx context.Context, status string) ([]*model.MemberApplication, error) {
	if status != "" && !model.ApplicationStatus(status).IsValid() {
		return nil, model.NewValidationError("statut de candidature invalide")
	}
	apps, err := s.applications.ListByStatus(ctx, model.ApplicationStatus(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// DecideInput は申請の審査入力
type DecideInput struct {
	Approve    bool   `json:"approve"`
	MemberType string `json:"member_type"`
}

// Decide は入会申請を承認または却下する。
// pendingでない申請への審査はINVALID_STATEとなり、承認の場合でも会員は作成されない。
func (s *Service) Decide(ctx context.Context, applicationID string, input DecideInput) (*model.MemberApplication, error) {
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	if app == nil {
		return nil, model.NewNotFoundError("Candidature")
	}

	decidedAt := time.Now().UTC()

	if !input.Approve {
		ok, err := s.applications.Reject(ctx, applicationID, decidedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to reject application: %w", err)
		}
		if !ok {
			// 既に審査済み。並行審査の負けた側もここに落ちる。
			return nil, model.NewInvalidStateError("cette candidature a déjà été traitée")
		}
		s.logger.Info("membership application rejected",
			slog.String("application_id", applicationID))
		app.Status = model.ApplicationStatusRejected
		app.DecidedAt = &decidedAt
		return app, nil
	}

	memberType := model.MemberType(input.MemberType)
	if input.MemberType == "" {
		memberType = model.MemberTypeActif
	}
	if !memberType.IsValid() {
		return nil, model.NewValidationError("type de membre invalide")
	}

	member := &model.Member{
		ID:         uuid.New().String(),
		Name:       app.Name,
		Email:      app.Email,
		Phone:      app.Phone,
		MemberType: memberType,
		CreatedAt:  decidedAt,
		UpdatedAt:  decidedAt,
	}

	ok, err := s.applications.Approve(ctx, applicationID, decidedAt, member)
	if err != nil {
		return nil, fmt.Errorf("failed to approve application: %w", err)
	}
	if !ok {
		return nil, model.NewInvalidStateError("cette candidature a déjà été traitée")
	}

	s.logger.Info("membership application approved",
		slog.String("application_id", applicationID),
		slog.String("member_id", member.ID),
		slog.String("member_type", string(memberType)))

	app.Status = model.ApplicationStatusApproved
	app.DecidedAt = &decidedAt
	return app, nil
}

// CreateMember は会員を直接登録する
func (s *Service) CreateMember(ctx context.Context, input MemberInput) (*model.Member, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	member := &model.Member{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		MemberType: model.MemberType(input.MemberType),
		Bio:        input.Bio,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.logger.Info("member created",
		slog.String("member_id", member.ID),
		slog.String("member_type", input.MemberType))

	return member, nil
}

// ListMembers は会員一覧を返す。memberTypeが空なら全件。
// 並び順は創設会員・名誉会員・正会員の順、同一種別内は名前の昇順。
func (s *Service) ListMembers(ctx context.Context, memberType string) ([]*model.Member, error) {
	if memberType != "" && !model.MemberType(memberType).IsValid() {
		return nil, model.NewValidationError("type de membre invalide")
	}
	members, err := s.members.List(ctx, model.MemberType(memberType))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetMember は会員を1件返す
func (s *Service) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return nil, model.NewNotFoundError("Membre")
	}
	return member, nil
}

// UpdateMember は会員情報を更新する
func (s *Service) UpdateMember(ctx context.Context, memberID string, input MemberInput) (*model.Member, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil {
		return nil, model.NewNotFoundError("Membre")
	}

	member.Name = strings.TrimSpace(input.Name)
	member.Email = strings.TrimSpace(input.Email)
	member.Phone = strings.TrimSpace(input.Phone)
	member.MemberType = model.MemberType(input.MemberType)
	member.Bio = input.Bio
	member.UpdatedAt = time.Now().UTC()

	ok, err := s.members.Update(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	if !ok {
		return nil, model.NewNotFoundError("Membre")
	}

	s.logger.Info("member updated", slog.String("member_id", memberID))
	return member, nil
}

// DeleteMember は会員を削除する
func (s *Service) DeleteMember(ctx context.Context, memberID string) error {
	ok, err := s.members.Delete(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("Membre")
	}
	s.logger.Info("member deleted", slog.String("member_id", memberID))
	return nil
}
