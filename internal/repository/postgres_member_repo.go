package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/savoir/internal/model"
)

// PostgresMemberRepo はPostgreSQLを使用した会員リポジトリ。
type PostgresMemberRepo struct {
	db *sql.DB
}

// NewPostgresMemberRepo はPostgresMemberRepoを生成する。
func NewPostgresMemberRepo(db *sql.DB) *PostgresMemberRepo {
	return &PostgresMemberRepo{db: db}
}

// Create は会員を作成する。
func (r *PostgresMemberRepo) Create(ctx context.Context, member *model.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, name, email, phone, member_type, bio, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		member.ID, member.Name, member.Email, member.Phone, member.MemberType, member.Bio, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *PostgresMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	member := &model.Member{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, member_type, bio, created_at, updated_at
		 FROM members WHERE id = $1`,
		id,
	).Scan(&member.ID, &member.Name, &member.Email, &member.Phone, &member.MemberType, &member.Bio, &member.CreatedAt, &member.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by ID: %w", err)
	}

	return member, nil
}

// List は会員一覧を返す。memberTypeが空でない場合は種別で絞り込む。
// 並び順は fondateur → honneur → actif、同種別内は名前の昇順。
// 並び順はDB側で確定させ、呼び出し元に委ねない。
func (r *PostgresMemberRepo) List(ctx context.Context, memberType model.MemberType) ([]*model.Member, error) {
	query := `SELECT id, name, email, phone, member_type, bio, created_at, updated_at
		 FROM members`
	args := []any{}
	if memberType != "" {
		query += ` WHERE member_type = $1`
		args = append(args, memberType)
	}
	query += ` ORDER BY CASE member_type
			WHEN 'fondateur' THEN 0
			WHEN 'honneur' THEN 1
			ELSE 2
		END, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		member := &model.Member{}
		if err := rows.Scan(&member.ID, &member.Name, &member.Email, &member.Phone, &member.MemberType, &member.Bio, &member.CreatedAt, &member.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// Update は会員情報を更新する。存在しない場合はfalseを返す。
func (r *PostgresMemberRepo) Update(ctx context.Context, member *model.Member) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET name = $1, email = $2, phone = $3, member_type = $4, bio = $5, updated_at = $6
		 WHERE id = $7`,
		member.Name, member.Email, member.Phone, member.MemberType, member.Bio, member.UpdatedAt, member.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update member: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete は指定IDの会員を削除する。存在しない場合はfalseを返す。
func (r *PostgresMemberRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM members WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete member: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Count は会員総数を返す。
func (r *PostgresMemberRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ MemberRepository = (*PostgresMemberRepo)(nil)
