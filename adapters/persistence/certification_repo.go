package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/credably/internal/domain/certification"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresCertificationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCertificationRepo(db *pgxpool.Pool, logger logger.Logger) certification.Repository {
	return &postgresCertificationRepo{db: db, logger: logger}
}

const certificationColumns = `id, user_id, name, issuer, issue_date, expiry_date, credential_url, created_at`

func scanCertification(row pgx.Row) (*certification.Certification, error) {
	c := &certification.Certification{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Issuer, &c.IssueDate, &c.ExpiryDate, &c.CredentialURL, &c.CreatedAt)
	return c, err
}

func (r *postgresCertificationRepo) Save(ctx context.Context, c *certification.Certification) error {
	query := `
		INSERT INTO certifications (` + certificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.UserID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate, c.CredentialURL, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("certification", "id", c.ID.String())
		}
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", c.UserID.String())
		}
		return apperror.NewInternal("failed to save certification", err)
	}
	return nil
}

func (r *postgresCertificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM certifications WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete certification", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("certification", id.String())
	}
	return nil
}

func (r *postgresCertificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications WHERE id = $1`
	c, err := scanCertification(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("certification", id.String())
		}
		return nil, apperror.NewInternal("failed to query certification", err)
	}
	return c, nil
}

func (r *postgresCertificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*certification.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications WHERE user_id = $1 ORDER BY issue_date DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query certifications", err)
	}
	defer rows.Close()

	certs := make([]*certification.Certification, 0)
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan certification", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating certifications", err)
	}
	return certs, nil
}
