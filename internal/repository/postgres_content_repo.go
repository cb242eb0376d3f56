package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/savoir/internal/model"
)

// PostgresContentRepo はPostgreSQLを使用したサイト設定リポジトリ。
type PostgresContentRepo struct {
	db *sql.DB
}

// NewPostgresContentRepo はPostgresContentRepoを生成する。
func NewPostgresContentRepo(db *sql.DB) *PostgresContentRepo {
	return &PostgresContentRepo{db: db}
}

// Get は指定キーのエントリを取得する。見つからない場合はnilを返す。
func (r *PostgresContentRepo) Get(ctx context.Context, key string) (*model.ContentEntry, error) {
	entry := &model.ContentEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM site_content WHERE key = $1`,
		key,
	).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content entry: %w", err)
	}

	return entry, nil
}

// GetAll は全エントリを返す。
func (r *PostgresContentRepo) GetAll(ctx context.Context) ([]*model.ContentEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value, updated_at FROM site_content ORDER BY key ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list content entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.ContentEntry
	for rows.Next() {
		entry := &model.ContentEntry{}
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content entries: %w", err)
	}

	return entries, nil
}

// Upsert はキーが存在しなければ作成し、存在すれば値を上書きする（last-write-wins）。
func (r *PostgresContentRepo) Upsert(ctx context.Context, entry *model.ContentEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_content (key, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		entry.Key, entry.Value, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content entry: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ContentRepository = (*PostgresContentRepo)(nil)
