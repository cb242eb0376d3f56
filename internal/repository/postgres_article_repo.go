package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/savoir/internal/model"
)

// PostgresArticleRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresArticleRepo struct {
	db *sql.DB
}

// NewPostgresArticleRepo はPostgresArticleRepoを生成する。
func NewPostgresArticleRepo(db *sql.DB) *PostgresArticleRepo {
	return &PostgresArticleRepo{db: db}
}

// Create は記事を作成する。
func (r *PostgresArticleRepo) Create(ctx context.Context, article *model.Article) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (id, title, content, excerpt, category, image_url, published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		article.ID, article.Title, article.Content, article.Excerpt, article.Category,
		article.ImageURL, article.Published, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresArticleRepo) FindByID(ctx context.Context, id string) (*model.Article, error) {
	article := &model.Article{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, excerpt, category, image_url, published, created_at, updated_at
		 FROM articles WHERE id = $1`,
		id,
	).Scan(&article.ID, &article.Title, &article.Content, &article.Excerpt, &article.Category,
		&article.ImageURL, &article.Published, &article.CreatedAt, &article.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article by ID: %w", err)
	}

	return article, nil
}

// List は記事一覧を作成日時の降順で返す。
// publishedOnlyがtrueの場合は公開記事のみ、categoryが空でない場合はカテゴリで絞り込む。
func (r *PostgresArticleRepo) List(ctx context.Context, category string, publishedOnly bool) ([]*model.Article, error) {
	query := `SELECT id, title, content, excerpt, category, image_url, published, created_at, updated_at
		 FROM articles WHERE 1=1`
	args := []any{}
	if publishedOnly {
		query += ` AND published = TRUE`
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []*model.Article
	for rows.Next() {
		article := &model.Article{}
		if err := rows.Scan(&article.ID, &article.Title, &article.Content, &article.Excerpt, &article.Category,
			&article.ImageURL, &article.Published, &article.CreatedAt, &article.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// Update は記事を更新する。存在しない場合はfalseを返す。
func (r *PostgresArticleRepo) Update(ctx context.Context, article *model.Article) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE articles SET title = $1, content = $2, excerpt = $3, category = $4,
		 image_url = $5, published = $6, updated_at = $7 WHERE id = $8`,
		article.Title, article.Content, article.Excerpt, article.Category,
		article.ImageURL, article.Published, article.UpdatedAt, article.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete は指定IDの記事を削除する。存在しない場合はfalseを返す。
func (r *PostgresArticleRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM articles WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// CountPublished は公開記事数を返す。
func (r *PostgresArticleRepo) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE published = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count published articles: %w", err)
	}
	return count, nil
}

// Count は記事総数を返す。
func (r *PostgresArticleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ ArticleRepository = (*PostgresArticleRepo)(nil)
