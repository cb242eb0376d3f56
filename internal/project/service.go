// Package project は活動プロジェクトの管理を提供する。
package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/hitoshi/savoir/internal/model"
	"github.com/hitoshi/savoir/internal/repository"
)

// ProjectInput はプロジェクトの作成・更新の入力
type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Objectives  string `json:"objectives"`
	Status      string `json:"status"`
	ImageURL    string `json:"image_url"`
	Date        string `json:"date"`
}

// Validate はプロジェクト入力を検証する
func (in ProjectInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Status, validation.Required, validation.By(validateStatus)),
	)
}

func validateStatus(value interface{}) error {
	s, _ := value.(string)
	if !model.ProjectStatus(s).IsValid() {
		return fmt.Errorf("statut de projet invalide")
	}
	return nil
}

// Service はプロジェクトを扱うサービス
type Service struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewService はServiceを生成する
func NewService(projects repository.ProjectRepository, logger *slog.Logger) *Service {
	return &Service{projects: projects, logger: logger}
}

// Create はプロジェクトを作成する
func (s *Service) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Objectives:  input.Objectives,
		Status:      model.ProjectStatus(input.Status),
		ImageURL:    input.ImageURL,
		Date:        input.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", slog.String("project_id", project.ID))
	return project, nil
}

// List はプロジェクト一覧を返す。statusが空なら全件。
func (s *Service) List(ctx context.Context, status string) ([]*model.Project, error) {
	if status != "" && !model.ProjectStatus(status).IsValid() {
		return nil, model.NewValidationError("statut de projet invalide")
	}
	projects, err := s.projects.List(ctx, model.ProjectStatus(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get はプロジェクトを1件返す
func (s *Service) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project == nil {
		return nil, model.NewNotFoundError("Projet")
	}
	return project, nil
}

// Update はプロジェクトを更新する
func (s *Service) Update(ctx context.Context, id string, input ProjectInput) (*model.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project == nil {
		return nil, model.NewNotFoundError("Projet")
	}

	project.Title = strings.TrimSpace(input.Title)
	project.Description = input.Description
	project.Objectives = input.Objectives
	project.Status = model.ProjectStatus(input.Status)
	project.ImageURL = input.ImageURL
	project.Date = input.Date
	project.UpdatedAt = time.Now().UTC()

	ok, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if !ok {
		return nil, model.NewNotFoundError("Projet")
	}

	s.logger.Info("project updated", slog.String("project_id", id))
	return project, nil
}

// Delete はプロジェクトを削除する
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.projects.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("Projet")
	}
	s.logger.Info("project deleted", slog.String("project_id", id))
	return nil
}
