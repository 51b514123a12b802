package models

import "time"

type MessageType string

const (
	MessageTypeChat   MessageType = "chat"
	MessageTypeSystem MessageType = "system"
)

// SenderSystem is the reserved sender name for system notifications.
const SenderSystem = "system"

// Message is a chat or system event scoped to a room. Messages are
// immutable once created. Seq is a per-room monotonic counter that
// breaks created_at ties so retrieval order stays deterministic.
type Message struct {
	ID        string      `json:"id"`
	RoomID    string      `json:"room_id"`
	Sender    string      `json:"sender"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type"`
	Seq       int64       `json:"seq"`
	CreatedAt time.Time   `json:"created_at"`
}
