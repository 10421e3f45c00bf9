package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresScoreRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresScoreRepo(db *pgxpool.Pool, logger logger.Logger) credibility.Repository {
	return &postgresScoreRepo{db: db, logger: logger}
}

func (r *postgresScoreRepo) Upsert(ctx context.Context, s *credibility.Score) error {
	breakdownBytes, err := json.Marshal(s.Breakdown)
	if err != nil {
		return apperror.NewInternal("failed to marshal score breakdown", err)
	}

	query := `
		INSERT INTO credibility_scores (
			user_id, overall_score, education_score, experience_score, technical_score,
			social_score, certifications_score, verification_level, breakdown, calculated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			education_score = EXCLUDED.education_score,
			experience_score = EXCLUDED.experience_score,
			technical_score = EXCLUDED.technical_score,
			social_score = EXCLUDED.social_score,
			certifications_score = EXCLUDED.certifications_score,
			verification_level = EXCLUDED.verification_level,
			breakdown = EXCLUDED.breakdown,
			calculated_at = EXCLUDED.calculated_at
	`
	_, err = r.db.Exec(ctx, query,
		s.UserID, s.OverallScore, s.EducationScore, s.ExperienceScore, s.TechnicalScore,
		s.SocialScore, s.CertificationsScore, s.VerificationLevel, breakdownBytes, s.CalculatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", s.UserID.String())
		}
		return apperror.NewInternal("failed to upsert credibility score", err)
	}
	return nil
}

func (r *postgresScoreRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*credibility.Score, error) {
	query := `
		SELECT user_id, overall_score, education_score, experience_score, technical_score,
			social_score, certifications_score, verification_level, breakdown, calculated_at
		FROM credibility_scores
		WHERE user_id = $1
	`
	s := &credibility.Score{}
	var breakdownBytes []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.OverallScore, &s.EducationScore, &s.ExperienceScore, &s.TechnicalScore,
		&s.SocialScore, &s.CertificationsScore, &s.VerificationLevel, &breakdownBytes, &s.CalculatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query credibility score", err)
	}
	if err := json.Unmarshal(breakdownBytes, &s.Breakdown); err != nil {
		r.logger.Warn("Failed to unmarshal score breakdown", zap.String("user_id", userID.String()), zap.Error(err))
		s.Breakdown = credibility.Breakdown{}
	}
	return s, nil
}
