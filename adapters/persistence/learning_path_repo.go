package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresLearningPathRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresLearningPathRepo(db *pgxpool.Pool, logger logger.Logger) recommendation.LearningPathRepository {
	return &postgresLearningPathRepo{db: db, logger: logger}
}

const learningPathColumns = `id, user_id, target_role, summary, estimated_weeks, steps, created_at`

func (r *postgresLearningPathRepo) scan(row pgx.Row) (*recommendation.LearningPath, error) {
	lp := &recommendation.LearningPath{}
	var stepsBytes []byte
	if err := row.Scan(&lp.ID, &lp.UserID, &lp.TargetRole, &lp.Summary, &lp.EstimatedWeeks, &stepsBytes, &lp.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stepsBytes, &lp.Steps); err != nil || lp.Steps == nil {
		r.logger.Warn("Failed to unmarshal learning path steps", zap.String("id", lp.ID.String()), zap.Error(err))
		lp.Steps = []recommendation.Step{}
	}
	return lp, nil
}

func (r *postgresLearningPathRepo) Save(ctx context.Context, lp *recommendation.LearningPath) error {
	stepsBytes, err := json.Marshal(lp.Steps)
	if err != nil {
		return apperror.NewInternal("failed to marshal learning path steps", err)
	}
	query := `
		INSERT INTO learning_paths (` + learningPathColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.Exec(ctx, query, lp.ID, lp.UserID, lp.TargetRole, lp.Summary, lp.EstimatedWeeks, stepsBytes, lp.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", lp.UserID.String())
		}
		return apperror.NewInternal("failed to save learning path", err)
	}
	return nil
}

func (r *postgresLearningPathRepo) List(ctx context.Context, userID uuid.UUID) ([]*recommendation.LearningPath, error) {
	query := `SELECT ` + learningPathColumns + ` FROM learning_paths WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query learning paths", err)
	}
	defer rows.Close()

	paths := make([]*recommendation.LearningPath, 0)
	for rows.Next() {
		lp, err := r.scan(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan learning path", err)
		}
		paths = append(paths, lp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating learning paths", err)
	}
	return paths, nil
}

func (r *postgresLearningPathRepo) FindByID(ctx context.Context, id uuid.UUID) (*recommendation.LearningPath, error) {
	query := `SELECT ` + learningPathColumns + ` FROM learning_paths WHERE id = $1`
	lp, err := r.scan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("learning path", id.String())
		}
		return nil, apperror.NewInternal("failed to query learning path", err)
	}
	return lp, nil
}

func (r *postgresLearningPathRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM learning_paths WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete learning path", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("learning path", id.String())
	}
	return nil
}

func (r *postgresLearningPathRepo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM learning_paths WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, apperror.NewInternal("failed to count learning paths", err)
	}
	return n, nil
}
