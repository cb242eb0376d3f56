package document

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hitoshi/savoir/internal/model"
)

// mockDocumentRepo はDocumentRepositoryのモック
type mockDocumentRepo struct {
	documents map[string]*model.Document
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{documents: make(map[string]*model.Document)}
}

func (m *mockDocumentRepo) Create(ctx context.Context, d *model.Document) error {
	m.documents[d.ID] = d
	return nil
}

func (m *mockDocumentRepo) List(ctx context.Context, category model.DocumentCategory) ([]*model.Document, error) {
	var out []*model.Document
	for _, d := range m.documents {
		if category == "" || d.Category == category {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocumentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.documents[id]; !ok {
		return false, nil
	}
	delete(m.documents, id)
	return true, nil
}

func setupService() (*Service, *mockDocumentRepo) {
	repo := newMockDocumentRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func validInput() DocumentInput {
	return DocumentInput{
		Title:       "Statuts de l'association",
		Description: "Texte fondateur de La Porte du Savoir",
		FileURL:     "https://savoir.example.org/uploads/document/statuts.pdf",
		FileType:    "pdf",
		Category:    "statuts",
	}
}

// 登録と削除の一連の流れを検証
func TestDocumentLifecycle(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if doc.ID == "" {
		t.Error("document ID should be assigned")
	}
	if doc.Category != model.DocumentCategoryStatuts {
		t.Errorf("category = %q", doc.Category)
	}

	if err := svc.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	err = svc.Delete(ctx, doc.ID)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
}

// 無効な分類での登録がVALIDATION_ERRORになることを検証
func TestCreate_InvalidCategory(t *testing.T) {
	svc, _ := setupService()

	input := validInput()
	input.Category = "archives"
	_, err := svc.Create(context.Background(), input)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

// 不正なURLでの登録がVALIDATION_ERRORになることを検証
func TestCreate_InvalidFileURL(t *testing.T) {
	svc, _ := setupService()

	input := validInput()
	input.FileURL = "::not-a-url"
	_, err := svc.Create(context.Background(), input)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

// 分類での絞り込みを検証
func TestList_FilterByCategory(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	reglement := validInput()
	reglement.Title = "Règlement intérieur"
	reglement.Category = "reglement"
	if _, err := svc.Create(ctx, reglement); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	statuts, err := svc.List(ctx, "statuts")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(statuts) != 1 {
		t.Errorf("statuts count = %d, want 1", len(statuts))
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all count = %d, want 2", len(all))
	}

	if _, err := svc.List(ctx, "inconnu"); err == nil {
		t.Error("List with unknown category should fail")
	}
}
