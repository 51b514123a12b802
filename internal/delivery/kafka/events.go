package kafka

import "time"

const (
	TopicQueueJoined  = "queue.joined"
	TopicMatchCreated = "match.created"
)

// Events published by the matchmaking service.

type QueueJoinedEvent struct {
	Name       string    `json:"name"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	Timestamp  time.Time `json:"timestamp"`
}

type MatchCreatedEvent struct {
	RoomID       string    `json:"room_id"`
	Participants []string  `json:"participants"`
	QuestionSlug string    `json:"question_slug,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Timestamp    time.Time `json:"timestamp"`
}
