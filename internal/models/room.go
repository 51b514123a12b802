package models

import "time"

// Room is one active pairing session. A room always holds exactly two
// participants, ordered [waiting user, joining user], and is never
// deleted once created.
type Room struct {
	RoomID        string    `json:"room_id"`
	Participants  []string  `json:"participants"`
	QuestionSlug  string    `json:"question_slug,omitempty"`
	EditorContent string    `json:"editor_content"`
	CreatedAt     time.Time `json:"created_at"`
}
