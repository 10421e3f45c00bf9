package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/credably/internal/domain/recommendation"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresRecommendationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRecommendationRepo(db *pgxpool.Pool, logger logger.Logger) recommendation.Repository {
	return &postgresRecommendationRepo{db: db, logger: logger}
}

var recommendationColumns = []string{
	"id", "user_id", "title", "description", "category", "priority", "action_items", "status", "created_at",
}

func scanRecommendation(row pgx.Row) (*recommendation.CareerRecommendation, error) {
	rec := &recommendation.CareerRecommendation{}
	var actionBytes []byte
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Category, &rec.Priority, &actionBytes, &rec.Status, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actionBytes, &rec.ActionItems); err != nil || rec.ActionItems == nil {
		rec.ActionItems = []string{}
	}
	return rec, nil
}

func (r *postgresRecommendationRepo) ReplaceActive(ctx context.Context, userID uuid.UUID, recs []*recommendation.CareerRecommendation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM career_recommendations WHERE user_id = $1 AND status = $2`,
		userID, recommendation.StatusActive); err != nil {
		return apperror.NewInternal("failed to clear active recommendations", err)
	}

	if len(recs) > 0 {
		insert := psql.Insert("career_recommendations").Columns(recommendationColumns...)
		for _, rec := range recs {
			actionBytes, err := json.Marshal(rec.ActionItems)
			if err != nil {
				return apperror.NewInternal("failed to marshal action items", err)
			}
			insert = insert.Values(rec.ID, rec.UserID, rec.Title, rec.Description, rec.Category,
				rec.Priority, actionBytes, rec.Status, rec.CreatedAt)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return apperror.NewInternal("failed to build recommendation insert", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return apperror.NewInternal("failed to insert recommendations", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit recommendations", err)
	}
	return nil
}

func (r *postgresRecommendationRepo) List(ctx context.Context, userID uuid.UUID, status *recommendation.Status) ([]*recommendation.CareerRecommendation, error) {
	builder := psql.Select(recommendationColumns...).
		From("career_recommendations").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "title ASC")
	if status != nil {
		builder = builder.Where(sq.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build recommendations query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query recommendations", err)
	}
	defer rows.Close()

	recs := make([]*recommendation.CareerRecommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan recommendation", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating recommendations", err)
	}
	return recs, nil
}

func (r *postgresRecommendationRepo) FindByID(ctx context.Context, id uuid.UUID) (*recommendation.CareerRecommendation, error) {
	query, args, err := psql.Select(recommendationColumns...).
		From("career_recommendations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build recommendation query", err)
	}
	rec, err := scanRecommendation(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("recommendation", id.String())
		}
		return nil, apperror.NewInternal("failed to query recommendation", err)
	}
	return rec, nil
}

func (r *postgresRecommendationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status recommendation.Status) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE career_recommendations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return apperror.NewInternal("failed to update recommendation status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("recommendation", id.String())
	}
	return nil
}

func (r *postgresRecommendationRepo) CountActive(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM career_recommendations WHERE user_id = $1 AND status = $2`,
		userID, recommendation.StatusActive).Scan(&n)
	if err != nil {
		return 0, apperror.NewInternal("failed to count recommendations", err)
	}
	return n, nil
}
