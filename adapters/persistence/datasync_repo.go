package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/credably/internal/domain/datasync"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresSyncRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSyncRepo(db *pgxpool.Pool, logger logger.Logger) datasync.Repository {
	return &postgresSyncRepo{db: db, logger: logger}
}

const syncColumns = `user_id, source, status, last_started_at, last_completed_at, error_message, updated_at`

func scanSync(row pgx.Row) (*datasync.DataSourceSync, error) {
	s := &datasync.DataSourceSync{}
	err := row.Scan(&s.UserID, &s.Source, &s.Status, &s.LastStartedAt, &s.LastCompletedAt, &s.ErrorMessage, &s.UpdatedAt)
	return s, err
}

func (r *postgresSyncRepo) Upsert(ctx context.Context, s *datasync.DataSourceSync) error {
	query := `
		INSERT INTO data_source_syncs (` + syncColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, source) DO UPDATE SET
			status = EXCLUDED.status,
			last_started_at = EXCLUDED.last_started_at,
			last_completed_at = EXCLUDED.last_completed_at,
			error_message = EXCLUDED.error_message,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		s.UserID, s.Source, s.Status, s.LastStartedAt, s.LastCompletedAt, s.ErrorMessage, s.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert sync status", err)
	}
	return nil
}

func (r *postgresSyncRepo) Get(ctx context.Context, userID uuid.UUID, source string) (*datasync.DataSourceSync, error) {
	query := `SELECT ` + syncColumns + ` FROM data_source_syncs WHERE user_id = $1 AND source = $2`
	s, err := scanSync(r.db.QueryRow(ctx, query, userID, source))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query sync status", err)
	}
	return s, nil
}

func (r *postgresSyncRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*datasync.DataSourceSync, error) {
	query := `SELECT ` + syncColumns + ` FROM data_source_syncs WHERE user_id = $1 ORDER BY source`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query sync statuses", err)
	}
	defer rows.Close()

	syncs := make([]*datasync.DataSourceSync, 0)
	for rows.Next() {
		s, err := scanSync(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan sync status", err)
		}
		syncs = append(syncs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating sync statuses", err)
	}
	return syncs, nil
}

func (r *postgresSyncRepo) Delete(ctx context.Context, userID uuid.UUID, source string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM data_source_syncs WHERE user_id = $1 AND source = $2`, userID, source); err != nil {
		return apperror.NewInternal("failed to delete sync status", err)
	}
	return nil
}
