package recommendation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusAccepted  Status = "accepted"
	StatusDismissed Status = "dismissed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var (
	ErrInvalidStatus     = errors.New("status must be accepted or dismissed")
	ErrTargetRoleMissing = errors.New("target role is required")
)

type CareerRecommendation struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	ActionItems []string  `json:"action_items"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParseDecision accepts only the statuses a user may move a recommendation to.
func ParseDecision(s string) (Status, error) {
	switch st := Status(strings.ToLower(s)); st {
	case StatusAccepted, StatusDismissed:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// NormalizePriority maps free-form model output onto a known priority.
func NormalizePriority(s string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityHigh:
		return p
	}
	return PriorityMedium
}

type Step struct {
	Order         int      `json:"order"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Skills        []string `json:"skills"`
	Resources     []string `json:"resources"`
	DurationWeeks int      `json:"duration_weeks"`
}

type LearningPath struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	TargetRole     string    `json:"target_role"`
	Summary        string    `json:"summary"`
	EstimatedWeeks int       `json:"estimated_weeks"`
	Steps          []Step    `json:"steps"`
	CreatedAt      time.Time `json:"created_at"`
}

// Normalize renumbers steps from 1 and fills EstimatedWeeks from the steps when
// the model left it empty.
func (lp *LearningPath) Normalize() {
	total := 0
	for i := range lp.Steps {
		lp.Steps[i].Order = i + 1
		if lp.Steps[i].DurationWeeks < 0 {
			lp.Steps[i].DurationWeeks = 0
		}
		total += lp.Steps[i].DurationWeeks
	}
	if lp.EstimatedWeeks <= 0 {
		lp.EstimatedWeeks = total
	}
}

type Repository interface {
	// ReplaceActive deletes the user's active recommendations and inserts recs in one transaction.
	ReplaceActive(ctx context.Context, userID uuid.UUID, recs []*CareerRecommendation) error
	List(ctx context.Context, userID uuid.UUID, status *Status) ([]*CareerRecommendation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CareerRecommendation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	CountActive(ctx context.Context, userID uuid.UUID) (int, error)
}

type LearningPathRepository interface {
	Save(ctx context.Context, lp *LearningPath) error
	List(ctx context.Context, userID uuid.UUID) ([]*LearningPath, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LearningPath, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}
