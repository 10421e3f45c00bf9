package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/pkg/logger"
)

type EventType string

const (
	EventProfileUpdated        EventType = "profile.updated"
	EventSkillsUpdated         EventType = "skills.updated"
	EventCertificationsUpdated EventType = "certifications.updated"
	EventSyncCompleted         EventType = "sync.completed"
)

// EvidenceEvent tells the recalculation worker that a user's score inputs changed.
type EvidenceEvent struct {
	EventType  EventType `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt EvidenceEvent) error
}

// PublishAsync fires evt in the background and only logs a failure.
// A nil publisher disables publishing.
func PublishAsync(pub EventPublisher, log logger.Logger, eventType EventType, userID uuid.UUID) {
	if pub == nil {
		return
	}
	evt := EvidenceEvent{EventType: eventType, UserID: userID, OccurredAt: time.Now().UTC()}
	go func() {
		if err := pub.Publish(context.Background(), evt); err != nil {
			log.Error("Failed to publish evidence event", err,
				zap.String("event_type", string(evt.EventType)),
				zap.String("user_id", evt.UserID.String()))
		}
	}()
}
