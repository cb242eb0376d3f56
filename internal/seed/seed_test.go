package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hitoshi/savoir/internal/model"
)

type mockAdminRepo struct {
	admins map[string]*model.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return m.admins[email], nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *model.Admin) error {
	m.admins[admin.Email] = admin
	return nil
}

type mockContentRepo struct {
	entries map[string]*model.ContentEntry
}

func newMockContentRepo() *mockContentRepo {
	return &mockContentRepo{entries: make(map[string]*model.ContentEntry)}
}

func (m *mockContentRepo) Get(ctx context.Context, key string) (*model.ContentEntry, error) {
	return m.entries[key], nil
}

func (m *mockContentRepo) GetAll(ctx context.Context) ([]*model.ContentEntry, error) {
	var out []*model.ContentEntry
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockContentRepo) Upsert(ctx context.Context, entry *model.ContentEntry) error {
	m.entries[entry.Key] = entry
	return nil
}

type mockProjectRepo struct {
	projects []*model.Project
}

func (m *mockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	m.projects = append(m.projects, p)
	return nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	return nil, nil
}

func (m *mockProjectRepo) List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error) {
	return m.projects, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p *model.Project) (bool, error) {
	return false, nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (m *mockProjectRepo) Count(ctx context.Context) (int, error) {
	return len(m.projects), nil
}

type mockArticleRepo struct {
	articles []*model.Article
}

func (m *mockArticleRepo) Create(ctx context.Context, a *model.Article) error {
	m.articles = append(m.articles, a)
	return nil
}

func (m *mockArticleRepo) FindByID(ctx context.Context, id string) (*model.Article, error) {
	return nil, nil
}

func (m *mockArticleRepo) List(ctx context.Context, category string, publishedOnly bool) ([]*model.Article, error) {
	return m.articles, nil
}

func (m *mockArticleRepo) Update(ctx context.Context, a *model.Article) (bool, error) {
	return false, nil
}

func (m *mockArticleRepo) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (m *mockArticleRepo) CountPublished(ctx context.Context) (int, error) {
	n := 0
	for _, a := range m.articles {
		if a.Published {
			n++
		}
	}
	return n, nil
}

func (m *mockArticleRepo) Count(ctx context.Context) (int, error) {
	return len(m.articles), nil
}

type mockMemberRepo struct {
	members []*model.Member
}

func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error {
	m.members = append(m.members, member)
	return nil
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	return nil, nil
}

func (m *mockMemberRepo) List(ctx context.Context, memberType model.MemberType) ([]*model.Member, error) {
	return m.members, nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member *model.Member) (bool, error) {
	return false, nil
}

func (m *mockMemberRepo) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (m *mockMemberRepo) Count(ctx context.Context) (int, error) {
	return len(m.members), nil
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

type seederFixture struct {
	seeder   *Seeder
	admins   *mockAdminRepo
	contents *mockContentRepo
	projects *mockProjectRepo
	articles *mockArticleRepo
	members  *mockMemberRepo
}

func setupSeeder() *seederFixture {
	f := &seederFixture{
		admins:   newMockAdminRepo(),
		contents: newMockContentRepo(),
		projects: &mockProjectRepo{},
		articles: &mockArticleRepo{},
		members:  &mockMemberRepo{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.seeder = NewSeeder(Repos{
		Admins:   f.admins,
		Contents: f.contents,
		Projects: f.projects,
		Articles: f.articles,
		Members:  f.members,
	}, fakeHasher{}, logger)
	return f
}

// 管理者・既定コンテンツ・デモデータが投入されることを検証
func TestRun_SeedsEverything(t *testing.T) {
	f := setupSeeder()

	err := f.seeder.Run(context.Background(), "admin@portedusavoir.org", "motdepasse", "Administrateur")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	admin := f.admins.admins["admin@portedusavoir.org"]
	if admin == nil {
		t.Fatal("admin was not created")
	}
	if admin.PasswordHash != "hashed:motdepasse" {
		t.Errorf("password hash = %q", admin.PasswordHash)
	}

	for _, key := range []string{"mission", "vision", "about", "address", "email", "phone"} {
		if f.contents.entries[key] == nil {
			t.Errorf("content key %q was not seeded", key)
		}
	}

	if len(f.projects.projects) != 3 {
		t.Errorf("projects seeded = %d, want 3", len(f.projects.projects))
	}
	if len(f.articles.articles) != 2 {
		t.Errorf("articles seeded = %d, want 2", len(f.articles.articles))
	}
	if len(f.members.members) != 3 {
		t.Errorf("members seeded = %d, want 3", len(f.members.members))
	}
}

// 再実行で管理者が重複作成されず、既存データが上書き・重複されないことを検証
func TestRun_Idempotent(t *testing.T) {
	f := setupSeeder()
	ctx := context.Background()

	if err := f.seeder.Run(ctx, "admin@portedusavoir.org", "motdepasse", "Administrateur"); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	firstAdmin := f.admins.admins["admin@portedusavoir.org"]
	f.contents.entries["mission"].Value = "Valeur modifiée par un admin"

	if err := f.seeder.Run(ctx, "admin@portedusavoir.org", "autre-mot-de-passe", "Autre"); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if f.admins.admins["admin@portedusavoir.org"] != firstAdmin {
		t.Error("existing admin should not be replaced")
	}
	if f.contents.entries["mission"].Value != "Valeur modifiée par un admin" {
		t.Error("existing content should not be overwritten")
	}
	if len(f.projects.projects) != 3 {
		t.Errorf("projects after second Run = %d, want 3", len(f.projects.projects))
	}
	if len(f.members.members) != 3 {
		t.Errorf("members after second Run = %d, want 3", len(f.members.members))
	}
}

// パスワード未設定での実行がエラーになることを検証
func TestRun_EmptyPassword(t *testing.T) {
	f := setupSeeder()

	err := f.seeder.Run(context.Background(), "admin@portedusavoir.org", "", "Administrateur")
	if err == nil {
		t.Error("Run with empty password should fail")
	}
}
