// Package datasync tracks the last refresh attempt of each user data source.
// A row is a progress flag, not a queue or a log.
package datasync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusSyncing   Status = "syncing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type DataSourceSync struct {
	UserID          uuid.UUID  `json:"user_id"`
	Source          string     `json:"source"`
	Status          Status     `json:"status"`
	LastStartedAt   *time.Time `json:"last_started_at"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
	ErrorMessage    *string    `json:"error_message"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func New(userID uuid.UUID, source string, now time.Time) *DataSourceSync {
	return &DataSourceSync{UserID: userID, Source: source, Status: StatusIdle, UpdatedAt: now}
}

// Start moves the row into syncing and clears the previous error.
func (s *DataSourceSync) Start(now time.Time) {
	s.Status = StatusSyncing
	s.LastStartedAt = &now
	s.ErrorMessage = nil
	s.UpdatedAt = now
}

func (s *DataSourceSync) Complete(now time.Time) {
	s.Status = StatusCompleted
	s.LastCompletedAt = &now
	s.ErrorMessage = nil
	s.UpdatedAt = now
}

func (s *DataSourceSync) Fail(now time.Time, err error) {
	msg := err.Error()
	s.Status = StatusFailed
	s.ErrorMessage = &msg
	s.UpdatedAt = now
}

type Repository interface {
	Upsert(ctx context.Context, s *DataSourceSync) error
	// Get returns nil without error when no row exists.
	Get(ctx context.Context, userID uuid.UUID, source string) (*DataSourceSync, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*DataSourceSync, error)
	Delete(ctx context.Context, userID uuid.UUID, source string) error
}
