package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EventChannel is the redis pub/sub channel roster change events fan out on.
const EventChannel = "schoolhub:roster-events"

// Event types published on roster mutations.
const (
	EventClassroomCreated = "classroom.created"
	EventClassroomUpdated = "classroom.updated"
	EventClassroomDeleted = "classroom.deleted"
	EventStudentAdded     = "classroom.student_added"
	EventStudentRemoved   = "classroom.student_removed"
)

// Event is one roster change notification. StudentID is zero for
// classroom-level events.
type Event struct {
	Type        string `json:"type"`
	ClassroomID int    `json:"classroom_id"`
	StudentID   int    `json:"student_id,omitempty"`
}

// EventService publishes roster change events over redis pub/sub so every
// server instance can forward them to connected admin consoles.
type EventService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(rdb *redis.Client, log zerolog.Logger) *EventService {
	return &EventService{rdb: rdb, log: log.With().Str("component", "event_service").Logger()}
}

// Publish sends an event to the roster channel. Publish failures are
// logged and swallowed: event delivery is best effort and must never fail
// the mutation that triggered it.
func (s *EventService) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Error().Err(err).Str("type", ev.Type).Msg("Marshal event failed")
		return
	}
	if err := s.rdb.Publish(ctx, EventChannel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("type", ev.Type).Msg("Publish event failed")
	}
}

// Subscribe opens a subscription on the roster channel. The caller owns
// the returned PubSub and must Close it.
func (s *EventService) Subscribe(ctx context.Context) *redis.PubSub {
	return s.rdb.Subscribe(ctx, EventChannel)
}
