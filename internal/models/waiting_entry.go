package models

import "time"

type WaitingStatus string

const (
	WaitingStatusWaiting WaitingStatus = "waiting"
	WaitingStatusPaired  WaitingStatus = "paired"
)

// WaitingEntry is one user parked in the matchmaking queue. An entry is
// removed, not mutated, the moment a pairing consumes it; at most one
// pairing may ever consume a given entry.
type WaitingEntry struct {
	Name       string        `json:"name"`
	Status     WaitingStatus `json:"status"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
}
