// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/savoir/internal/model"
)

// AdminRepository は管理者アカウントの永続化インターフェース。
type AdminRepository interface {
	// FindByEmail は指定メールアドレスの管理者を取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)

	// FindByID は指定IDの管理者を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Admin, error)

	// Create は管理者を作成する。メールアドレス重複時はエラーを返す。
	Create(ctx context.Context, admin *model.Admin) error
}

// ApplicationRepository は入会申請の永続化インターフェース。
type ApplicationRepository interface {
	// Create は申請をpending状態で作成する。
	Create(ctx context.Context, app *model.MemberApplication) error

	// FindByID は指定IDの申請を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.MemberApplication, error)

	// ListByStatus は申請を提出日時の昇順で返す。statusが空の場合は全件を返す。
	ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]*model.MemberApplication, error)

	// Approve は申請をpendingからapprovedへ遷移させ、同一トランザクションで
	// 会員レコードを作成する。申請がpendingでない場合はfalseを返し、
	// 会員レコードは作成されない（compare-and-set）。
	Approve(ctx context.Context, applicationID string, decidedAt time.Time, member *model.Member) (bool, error)

	// Reject は申請をpendingからrejectedへ遷移させる。
	// 申請がpendingでない場合はfalseを返す（compare-and-set）。
	Reject(ctx context.Context, applicationID string, decidedAt time.Time) (bool, error)

	// CountByStatus は指定状態の申請数を返す。
	CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error)
}

// MemberRepository は会員レコードの永続化インターフェース。
type MemberRepository interface {
	// Create は会員を作成する。
	Create(ctx context.Context, member *model.Member) error

	// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Member, error)

	// List は会員一覧を返す。memberTypeが空でない場合は種別で絞り込む。
	// 並び順は fondateur → honneur → actif、同種別内は名前の昇順。
	List(ctx context.Context, memberType model.MemberType) ([]*model.Member, error)

	// Update は会員情報を更新する。存在しない場合はfalseを返す。
	Update(ctx context.Context, member *model.Member) (bool, error)

	// Delete は指定IDの会員を削除する。存在しない場合はfalseを返す。
	Delete(ctx context.Context, id string) (bool, error)

	// Count は会員総数を返す。
	Count(ctx context.Context) (int, error)
}

// ContentRepository はサイト設定テキストの永続化インターフェース。
type ContentRepository interface {
	// Get は指定キーのエントリを取得する。見つからない場合はnilを返す。
	Get(ctx context.Context, key string) (*model.ContentEntry, error)

	// GetAll は全エントリを返す。
	GetAll(ctx context.Context) ([]*model.ContentEntry, error)

	// Upsert はキーが存在しなければ作成し、存在すれば値を上書きする（last-write-wins）。
	Upsert(ctx context.Context, entry *model.ContentEntry) error
}

// ProjectRepository はプロジェクトの永続化インターフェース。
type ProjectRepository interface {
	// Create はプロジェクトを作成する。
	Create(ctx context.Context, project *model.Project) error

	// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Project, error)

	// List はプロジェクト一覧を作成日時の降順で返す。
	// statusが空でない場合は状態で絞り込む。
	List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error)

	// Update はプロジェクトを更新する。存在しない場合はfalseを返す。
	Update(ctx context.Context, project *model.Project) (bool, error)

	// Delete は指定IDのプロジェクトを削除する。存在しない場合はfalseを返す。
	Delete(ctx context.Context, id string) (bool, error)

	// Count はプロジェクト総数を返す。
	Count(ctx context.Context) (int, error)
}

// ArticleRepository は記事の永続化インターフェース。
type ArticleRepository interface {
	// Create は記事を作成する。
	Create(ctx context.Context, article *model.Article) error

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Article, error)

	// List は記事一覧を作成日時の降順で返す。
	// publishedOnlyがtrueの場合は公開記事のみ、categoryが空でない場合はカテゴリで絞り込む。
	List(ctx context.Context, category string, publishedOnly bool) ([]*model.Article, error)

	// Update は記事を更新する。存在しない場合はfalseを返す。
	Update(ctx context.Context, article *model.Article) (bool, error)

	// Delete は指定IDの記事を削除する。存在しない場合はfalseを返す。
	Delete(ctx context.Context, id string) (bool, error)

	// CountPublished は公開記事数を返す。
	CountPublished(ctx context.Context) (int, error)

	// Count は記事総数を返す。
	Count(ctx context.Context) (int, error)
}

// DocumentRepository は公開文書の永続化インターフェース。
type DocumentRepository interface {
	// Create は文書を作成する。
	Create(ctx context.Context, doc *model.Document) error

	// List は文書一覧を作成日時の降順で返す。
	// categoryが空でない場合は分類で絞り込む。
	List(ctx context.Context, category model.DocumentCategory) ([]*model.Document, error)

	// Delete は指定IDの文書を削除する。存在しない場合はfalseを返す。
	Delete(ctx context.Context, id string) (bool, error)
}

// MessageRepository は問い合わせメッセージの永続化インターフェース。
type MessageRepository interface {
	// Create はメッセージを未読状態で作成する。
	Create(ctx context.Context, msg *model.ContactMessage) error

	// List は全メッセージを作成日時の降順で返す。
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// MarkRead は指定IDのメッセージを既読にする。存在しない場合はfalseを返す。
	MarkRead(ctx context.Context, id string) (bool, error)

	// Delete は指定IDのメッセージを削除する。存在しない場合はfalseを返す。
	Delete(ctx context.Context, id string) (bool, error)

	// CountUnread は未読メッセージ数を返す。
	CountUnread(ctx context.Context) (int, error)

	// Count はメッセージ総数を返す。
	Count(ctx context.Context) (int, error)
}
