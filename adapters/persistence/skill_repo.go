package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

var userSkillColumns = []string{
	"us.id", "us.user_id", "s.id", "s.name", "s.category",
	"us.proficiency", "us.level", "us.source", "us.verified", "us.created_at", "us.updated_at",
}

func scanUserSkill(row pgx.Row) (*skill.UserSkill, error) {
	us := &skill.UserSkill{}
	err := row.Scan(
		&us.ID,
		&us.UserID,
		&us.Skill.ID,
		&us.Skill.Name,
		&us.Skill.Category,
		&us.Proficiency,
		&us.Level,
		&us.Source,
		&us.Verified,
		&us.CreatedAt,
		&us.UpdatedAt,
	)
	return us, err
}

func (r *postgresSkillRepo) FindOrCreate(ctx context.Context, name, category string) (*skill.Skill, error) {
	query := `
		WITH ins AS (
			INSERT INTO skills (id, name, category)
			VALUES ($1, $2, $3)
			ON CONFLICT ((lower(name))) DO NOTHING
			RETURNING id, name, category
		)
		SELECT id, name, category FROM ins
		UNION ALL
		SELECT id, name, category FROM skills WHERE lower(name) = lower($2)
		LIMIT 1
	`
	s := &skill.Skill{}
	if err := r.db.QueryRow(ctx, query, uuid.New(), name, category).Scan(&s.ID, &s.Name, &s.Category); err != nil {
		return nil, apperror.NewInternal("failed to find or create skill", err)
	}
	return s, nil
}

// Upsert keeps the original id and created_at of an existing (user, skill) row.
// Verification is sticky: a verified row stays verified.
func (r *postgresSkillRepo) Upsert(ctx context.Context, us *skill.UserSkill) error {
	query := `
		INSERT INTO user_skills (id, user_id, skill_id, proficiency, level, source, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET
			proficiency = EXCLUDED.proficiency,
			level = EXCLUDED.level,
			source = EXCLUDED.source,
			verified = user_skills.verified OR EXCLUDED.verified,
			updated_at = EXCLUDED.updated_at
		RETURNING id, verified, created_at
	`
	err := r.db.QueryRow(ctx, query,
		us.ID, us.UserID, us.Skill.ID, us.Proficiency, us.Level, us.Source, us.Verified, us.CreatedAt, us.UpdatedAt,
	).Scan(&us.ID, &us.Verified, &us.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", us.UserID.String())
		}
		return apperror.NewInternal("failed to upsert user skill", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, us *skill.UserSkill) error {
	query := `
		UPDATE user_skills SET proficiency = $2, level = $3, verified = $4, updated_at = $5
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, us.ID, us.Proficiency, us.Level, us.Verified, us.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to update user skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", us.ID.String())
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete user skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", id.String())
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*skill.UserSkill, error) {
	query, args, err := psql.Select(userSkillColumns...).
		From("user_skills us").
		Join("skills s ON s.id = us.skill_id").
		Where(sq.Eq{"us.id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill query", err)
	}

	us, err := scanUserSkill(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("skill", id.String())
		}
		return nil, apperror.NewInternal("failed to query user skill", err)
	}
	return us, nil
}

func (r *postgresSkillRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter skill.ListFilter) ([]*skill.UserSkill, error) {
	builder := psql.Select(userSkillColumns...).
		From("user_skills us").
		Join("skills s ON s.id = us.skill_id").
		Where(sq.Eq{"us.user_id": userID}).
		OrderBy("us.proficiency DESC", "s.name ASC")

	if filter.Source != nil {
		builder = builder.Where(sq.Eq{"us.source": *filter.Source})
	}
	if filter.Level != nil {
		builder = builder.Where(sq.Eq{"us.level": *filter.Level})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skills query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query user skills", err)
	}
	defer rows.Close()

	skills := make([]*skill.UserSkill, 0)
	for rows.Next() {
		us, err := scanUserSkill(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan user skill", err)
		}
		skills = append(skills, us)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating user skills", err)
	}
	return skills, nil
}
