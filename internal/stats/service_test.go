package stats

import (
	"context"
	"testing"
	"time"

	"github.com/hitoshi/savoir/internal/model"
)

// 各リポジトリの計数メソッドだけを固定値で返すモック群
type memberCountRepo struct{ n int }

func (c *memberCountRepo) Create(ctx context.Context, m *model.Member) error { return nil }
func (c *memberCountRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	return nil, nil
}
func (c *memberCountRepo) List(ctx context.Context, t model.MemberType) ([]*model.Member, error) {
	return nil, nil
}
func (c *memberCountRepo) Update(ctx context.Context, m *model.Member) (bool, error) {
	return false, nil
}
func (c *memberCountRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }
func (c *memberCountRepo) Count(ctx context.Context) (int, error)              { return c.n, nil }

type projectCountRepo struct{ n int }

func (c *projectCountRepo) Create(ctx context.Context, p *model.Project) error { return nil }
func (c *projectCountRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	return nil, nil
}
func (c *projectCountRepo) List(ctx context.Context, s model.ProjectStatus) ([]*model.Project, error) {
	return nil, nil
}
func (c *projectCountRepo) Update(ctx context.Context, p *model.Project) (bool, error) {
	return false, nil
}
func (c *projectCountRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }
func (c *projectCountRepo) Count(ctx context.Context) (int, error)              { return c.n, nil }

type articleCountRepo struct{ published, total int }

func (c *articleCountRepo) Create(ctx context.Context, a *model.Article) error { return nil }
func (c *articleCountRepo) FindByID(ctx context.Context, id string) (*model.Article, error) {
	return nil, nil
}
func (c *articleCountRepo) List(ctx context.Context, cat string, pub bool) ([]*model.Article, error) {
	return nil, nil
}
func (c *articleCountRepo) Update(ctx context.Context, a *model.Article) (bool, error) {
	return false, nil
}
func (c *articleCountRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }
func (c *articleCountRepo) CountPublished(ctx context.Context) (int, error)     { return c.published, nil }
func (c *articleCountRepo) Count(ctx context.Context) (int, error)              { return c.total, nil }

type applicationCountRepo struct{ pending int }

func (c *applicationCountRepo) Create(ctx context.Context, a *model.MemberApplication) error {
	return nil
}
func (c *applicationCountRepo) FindByID(ctx context.Context, id string) (*model.MemberApplication, error) {
	return nil, nil
}
func (c *applicationCountRepo) ListByStatus(ctx context.Context, s model.ApplicationStatus) ([]*model.MemberApplication, error) {
	return nil, nil
}
func (c *applicationCountRepo) Approve(ctx context.Context, id string, at time.Time, m *model.Member) (bool, error) {
	return false, nil
}
func (c *applicationCountRepo) Reject(ctx context.Context, id string, at time.Time) (bool, error) {
	return false, nil
}
func (c *applicationCountRepo) CountByStatus(ctx context.Context, s model.ApplicationStatus) (int, error) {
	return c.pending, nil
}

type messageCountRepo struct{ unread, total int }

func (c *messageCountRepo) Create(ctx context.Context, m *model.ContactMessage) error { return nil }
func (c *messageCountRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return nil, nil
}
func (c *messageCountRepo) MarkRead(ctx context.Context, id string) (bool, error) { return false, nil }
func (c *messageCountRepo) Delete(ctx context.Context, id string) (bool, error)   { return false, nil }
func (c *messageCountRepo) CountUnread(ctx context.Context) (int, error)          { return c.unread, nil }
func (c *messageCountRepo) Count(ctx context.Context) (int, error)                { return c.total, nil }

func setupService() *Service {
	return NewService(
		&memberCountRepo{n: 12},
		&projectCountRepo{n: 4},
		&articleCountRepo{published: 7, total: 9},
		&applicationCountRepo{pending: 3},
		&messageCountRepo{unread: 2, total: 15},
	)
}

// 公開統計が会員・プロジェクト・公開記事のみを含むことを検証
func TestPublic(t *testing.T) {
	svc := setupService()

	got, err := svc.Public(context.Background())
	if err != nil {
		t.Fatalf("Public failed: %v", err)
	}
	if got.Members != 12 || got.Projects != 4 || got.PublishedArticles != 7 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

// 管理統計が申請・メッセージの計数を含むことを検証
func TestAdmin(t *testing.T) {
	svc := setupService()

	got, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin failed: %v", err)
	}
	if got.Members != 12 {
		t.Errorf("members = %d, want 12", got.Members)
	}
	if got.PendingApplications != 3 {
		t.Errorf("pending = %d, want 3", got.PendingApplications)
	}
	if got.UnreadMessages != 2 || got.TotalMessages != 15 {
		t.Errorf("messages = %d/%d, want 2/15", got.UnreadMessages, got.TotalMessages)
	}
	if got.TotalArticles != 9 {
		t.Errorf("total articles = %d, want 9", got.TotalArticles)
	}
}
