package service

import "github.com/vogiaan1904/codeclash/internal/models"

type MatchStatus string

const (
	MatchStatusWaiting MatchStatus = "waiting"
	MatchStatusPaired  MatchStatus = "paired"
)

type JoinInput struct {
	Name string `json:"name" validate:"required"`
}

type JoinOutput struct {
	Status MatchStatus `json:"status"`
	RoomID string      `json:"room_id,omitempty"`
}

// RoomOutput embeds the full question at read time; the room itself
// stores only the slug.
type RoomOutput struct {
	models.Room
	Question *models.Question `json:"question"`
}

type SendMessageInput struct {
	Sender  string `json:"sender" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdateEditorInput struct {
	Content string `json:"content"`
}

type SeedOutput struct {
	Seeded  bool   `json:"seeded"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type HealthOutput struct {
	Status      string           `json:"status"`
	Store       string           `json:"store"`
	Collections map[string]int64 `json:"collections,omitempty"`
}
