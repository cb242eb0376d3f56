package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/savoir/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した入会申請リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// Create は申請をpending状態で作成する。
func (r *PostgresApplicationRepo) Create(ctx context.Context, app *model.MemberApplication) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO member_applications (id, name, email, phone, motivation, status, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.Name, app.Email, app.Phone, app.Motivation, app.Status, app.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// FindByID は指定IDの申請を取得する。見つからない場合はnilを返す。
func (r *PostgresApplicationRepo) FindByID(ctx context.Context, id string) (*model.MemberApplication, error) {
	app := &model.MemberApplication{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, motivation, status, submitted_at, decided_at
		 FROM member_applications WHERE id = $1`,
		id,
	).Scan(&app.ID, &app.Name, &app.Email, &app.Phone, &app.Motivation, &app.Status, &app.SubmittedAt, &app.DecidedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application by ID: %w", err)
	}

	return app, nil
}

// applicationListQuery はListByStatusのクエリを組み立てる。
// statusが空の場合は絞り込みなしで全件を対象にする。
func applicationListQuery(status model.ApplicationStatus) (string, []any) {
	query := `SELECT id, name, email, phone, motivation, status, submitted_at, decided_at
		 FROM member_applications`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_at ASC`
	return query, args
}

// ListByStatus は申請を提出日時の昇順で返す。statusが空の場合は全件を返す。
func (r *PostgresApplicationRepo) ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]*model.MemberApplication, error) {
	query, args := applicationListQuery(status)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*model.MemberApplication
	for rows.Next() {
		app := &model.MemberApplication{}
		if err := rows.Scan(&app.ID, &app.Name, &app.Email, &app.Phone, &app.Motivation, &app.Status, &app.SubmittedAt, &app.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

// Approve は申請をpendingからapprovedへ遷移させ、同一トランザクションで
// 会員レコードを作成する。状態遷移はcompare-and-set（WHERE status = 'pending'）で
// 行うため、同じ申請に対する並行judgeの勝者は1人だけになる。
// 遷移できなかった場合はfalseを返し、会員レコードは作成されない。
func (r *PostgresApplicationRepo) Approve(ctx context.Context, applicationID string, decidedAt time.Time, member *model.Member) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE member_applications SET status = $1, decided_at = $2
		 WHERE id = $3 AND status = $4`,
		model.ApplicationStatusApproved, decidedAt, applicationID, model.ApplicationStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// pendingでない（既に判断済みか存在しない）。会員は作成しない。
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO members (id, name, email, phone, member_type, bio, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		member.ID, member.Name, member.Email, member.Phone, member.MemberType, member.Bio, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// Reject は申請をpendingからrejectedへ遷移させる。
// 遷移できなかった場合はfalseを返す（compare-and-set）。
func (r *PostgresApplicationRepo) Reject(ctx context.Context, applicationID string, decidedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE member_applications SET status = $1, decided_at = $2
		 WHERE id = $3 AND status = $4`,
		model.ApplicationStatusRejected, decidedAt, applicationID, model.ApplicationStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// CountByStatus は指定状態の申請数を返す。
func (r *PostgresApplicationRepo) CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM member_applications WHERE status = $1`,
		status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
