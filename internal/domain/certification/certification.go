package certification

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Certification struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Name          string     `json:"name"`
	Issuer        string     `json:"issuer"`
	IssueDate     time.Time  `json:"issue_date"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialURL *string    `json:"credential_url"`
	CreatedAt     time.Time  `json:"created_at"`
}

var (
	ErrNameRequired  = errors.New("certification name is required")
	ErrExpiryInvalid = errors.New("expiry date is before issue date")
)

func (c *Certification) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(c.IssueDate) {
		return ErrExpiryInvalid
	}
	return nil
}

func (c *Certification) HasCredential() bool {
	return c.CredentialURL != nil && strings.TrimSpace(*c.CredentialURL) != ""
}

func (c *Certification) ActiveAt(t time.Time) bool {
	return c.ExpiryDate == nil || c.ExpiryDate.After(t)
}

type Repository interface {
	Save(ctx context.Context, c *Certification) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Certification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certification, error)
}
