package project

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hitoshi/savoir/internal/model"
)

// mockProjectRepo はProjectRepositoryのモック
type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	return m.projects[id], nil
}

func (m *mockProjectRepo) List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range m.projects {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p *model.Project) (bool, error) {
	if _, ok := m.projects[p.ID]; !ok {
		return false, nil
	}
	m.projects[p.ID] = p
	return true, nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.projects[id]; !ok {
		return false, nil
	}
	delete(m.projects, id)
	return true, nil
}

func (m *mockProjectRepo) Count(ctx context.Context) (int, error) {
	return len(m.projects), nil
}

func setupService() (*Service, *mockProjectRepo) {
	repo := newMockProjectRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func validInput() ProjectInput {
	return ProjectInput{
		Title:       "Bibliothèque mobile",
		Description: "Une bibliothèque itinérante pour les villages",
		Objectives:  "Favoriser l'accès à la lecture",
		Status:      "en_cours",
		Date:        "2026-09",
	}
}

// 作成・取得・更新・削除の一連の流れを検証
func TestProjectLifecycle(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Status != model.ProjectStatusEnCours {
		t.Errorf("status = %q", p.Status)
	}

	input := validInput()
	input.Status = "termine"
	updated, err := svc.Update(ctx, p.ID, input)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != model.ProjectStatusTermine {
		t.Errorf("status = %q, want termine", updated.Status)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = svc.Get(ctx, p.ID)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
}

// 無効な状態での作成がVALIDATION_ERRORになることを検証
func TestCreate_InvalidStatus(t *testing.T) {
	svc, _ := setupService()

	input := validInput()
	input.Status = "suspendu"
	_, err := svc.Create(context.Background(), input)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

// 状態での絞り込みを検証
func TestList_FilterByStatus(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	done := validInput()
	done.Title = "Projet terminé"
	done.Status = "termine"
	if _, err := svc.Create(ctx, done); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	enCours, err := svc.List(ctx, "en_cours")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(enCours) != 1 {
		t.Errorf("en_cours count = %d, want 1", len(enCours))
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all count = %d, want 2", len(all))
	}

	if _, err := svc.List(ctx, "inconnu"); err == nil {
		t.Error("List with unknown status should fail")
	}
}
