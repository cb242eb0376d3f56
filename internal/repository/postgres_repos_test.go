package repository

import (
	"testing"
)

// 各Postgresリポジトリが対応するインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ AdminRepository = (*PostgresAdminRepo)(nil)
	var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
	var _ MemberRepository = (*PostgresMemberRepo)(nil)
	var _ ContentRepository = (*PostgresContentRepo)(nil)
	var _ ProjectRepository = (*PostgresProjectRepo)(nil)
	var _ ArticleRepository = (*PostgresArticleRepo)(nil)
	var _ DocumentRepository = (*PostgresDocumentRepo)(nil)
	var _ MessageRepository = (*PostgresMessageRepo)(nil)
}

// 各コンストラクタが正しく初期化されることを検証
func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresAdminRepo(nil) == nil {
		t.Error("NewPostgresAdminRepo returned nil")
	}
	if NewPostgresApplicationRepo(nil) == nil {
		t.Error("NewPostgresApplicationRepo returned nil")
	}
	if NewPostgresMemberRepo(nil) == nil {
		t.Error("NewPostgresMemberRepo returned nil")
	}
	if NewPostgresContentRepo(nil) == nil {
		t.Error("NewPostgresContentRepo returned nil")
	}
	if NewPostgresProjectRepo(nil) == nil {
		t.Error("NewPostgresProjectRepo returned nil")
	}
	if NewPostgresArticleRepo(nil) == nil {
		t.Error("NewPostgresArticleRepo returned nil")
	}
	if NewPostgresDocumentRepo(nil) == nil {
		t.Error("NewPostgresDocumentRepo returned nil")
	}
	if NewPostgresMessageRepo(nil) == nil {
		t.Error("NewPostgresMessageRepo returned nil")
	}
}
