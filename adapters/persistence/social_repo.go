package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/domain/social"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresSocialRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSocialRepo(db *pgxpool.Pool, logger logger.Logger) social.Repository {
	return &postgresSocialRepo{db: db, logger: logger}
}

const socialColumns = `user_id, platform, handle, followers, following, metrics, influence_score, synced_at`

func (r *postgresSocialRepo) scanProfile(row pgx.Row) (*social.SocialProfile, error) {
	sp := &social.SocialProfile{}
	var metricsBytes []byte
	err := row.Scan(&sp.UserID, &sp.Platform, &sp.Handle, &sp.Followers, &sp.Following, &metricsBytes, &sp.InfluenceScore, &sp.SyncedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metricsBytes, &sp.Metrics); err != nil || sp.Metrics == nil {
		r.logger.Warn("Failed to unmarshal social metrics", zap.String("user_id", sp.UserID.String()), zap.Error(err))
		sp.Metrics = map[string]any{}
	}
	return sp, nil
}

func (r *postgresSocialRepo) UpsertProfile(ctx context.Context, p *social.SocialProfile) error {
	metricsBytes, err := json.Marshal(p.Metrics)
	if err != nil {
		return apperror.NewInternal("failed to marshal social metrics", err)
	}

	query := `
		INSERT INTO social_profiles (` + socialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, platform) DO UPDATE SET
			handle = EXCLUDED.handle,
			followers = EXCLUDED.followers,
			following = EXCLUDED.following,
			metrics = EXCLUDED.metrics,
			influence_score = EXCLUDED.influence_score,
			synced_at = EXCLUDED.synced_at
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Platform, p.Handle, p.Followers, p.Following, metricsBytes, p.InfluenceScore, p.SyncedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", p.UserID.String())
		}
		return apperror.NewInternal("failed to upsert social profile", err)
	}
	return nil
}

func (r *postgresSocialRepo) GetProfile(ctx context.Context, userID uuid.UUID, platform social.Platform) (*social.SocialProfile, error) {
	query := `SELECT ` + socialColumns + ` FROM social_profiles WHERE user_id = $1 AND platform = $2`
	sp, err := r.scanProfile(r.db.QueryRow(ctx, query, userID, platform))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("integration", string(platform))
		}
		return nil, apperror.NewInternal("failed to query social profile", err)
	}
	return sp, nil
}

func (r *postgresSocialRepo) ListProfiles(ctx context.Context, userID uuid.UUID) ([]*social.SocialProfile, error) {
	query := `SELECT ` + socialColumns + ` FROM social_profiles WHERE user_id = $1 ORDER BY platform`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query social profiles", err)
	}
	defer rows.Close()

	profiles := make([]*social.SocialProfile, 0)
	for rows.Next() {
		sp, err := r.scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan social profile", err)
		}
		profiles = append(profiles, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating social profiles", err)
	}
	return profiles, nil
}

func (r *postgresSocialRepo) DeleteProfile(ctx context.Context, userID uuid.UUID, platform social.Platform) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM social_profiles WHERE user_id = $1 AND platform = $2`, userID, platform)
	if err != nil {
		return apperror.NewInternal("failed to delete social profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("integration", string(platform))
	}
	return nil
}

func (r *postgresSocialRepo) UpsertGitHub(ctx context.Context, g *social.GitHubProfile) error {
	languagesBytes, err := json.Marshal(g.Languages)
	if err != nil {
		return apperror.NewInternal("failed to marshal github languages", err)
	}

	query := `
		INSERT INTO github_profiles (user_id, username, followers, following, public_repos, total_stars, languages, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			followers = EXCLUDED.followers,
			following = EXCLUDED.following,
			public_repos = EXCLUDED.public_repos,
			total_stars = EXCLUDED.total_stars,
			languages = EXCLUDED.languages,
			synced_at = EXCLUDED.synced_at
	`
	_, err = r.db.Exec(ctx, query,
		g.UserID, g.Username, g.Followers, g.Following, g.PublicRepos, g.TotalStars, languagesBytes, g.SyncedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert github profile", err)
	}
	return nil
}

func (r *postgresSocialRepo) GetGitHub(ctx context.Context, userID uuid.UUID) (*social.GitHubProfile, error) {
	query := `
		SELECT user_id, username, followers, following, public_repos, total_stars, languages, synced_at
		FROM github_profiles
		WHERE user_id = $1
	`
	g := &social.GitHubProfile{}
	var languagesBytes []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&g.UserID, &g.Username, &g.Followers, &g.Following, &g.PublicRepos, &g.TotalStars, &languagesBytes, &g.SyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query github profile", err)
	}
	if err := json.Unmarshal(languagesBytes, &g.Languages); err != nil || g.Languages == nil {
		g.Languages = map[string]int{}
	}
	return g, nil
}

func (r *postgresSocialRepo) DeleteGitHub(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM github_profiles WHERE user_id = $1`, userID); err != nil {
		return apperror.NewInternal("failed to delete github profile", err)
	}
	return nil
}
