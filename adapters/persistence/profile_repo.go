package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT user_id, headline, bio, location, years_experience, education, positions, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &profile.Profile{}
	var educationBytes, positionsBytes []byte

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Headline,
		&p.Bio,
		&p.Location,
		&p.YearsExperience,
		&educationBytes,
		&positionsBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", userID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if err := json.Unmarshal(educationBytes, &p.Education); err != nil || p.Education == nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("user_id", userID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	if err := json.Unmarshal(positionsBytes, &p.Positions); err != nil || p.Positions == nil {
		r.logger.Warn("Failed to unmarshal positions", zap.String("user_id", userID.String()), zap.Error(err))
		p.Positions = []profile.Position{}
	}
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}
	positionsBytes, err := json.Marshal(p.Positions)
	if err != nil {
		return apperror.NewInternal("failed to marshal positions", err)
	}

	query := `
		INSERT INTO profiles (user_id, headline, bio, location, years_experience, education, positions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			years_experience = EXCLUDED.years_experience,
			education = EXCLUDED.education,
			positions = EXCLUDED.positions,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Headline, p.Bio, p.Location, p.YearsExperience,
		educationBytes, positionsBytes, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", p.UserID.String())
		}
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
