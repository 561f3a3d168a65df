package domain

import "time"

// Snapshot is a point-in-time copy of a catalog.
type Snapshot struct {
	Name    string    `json:"name"`
	Source  string    `json:"source"`
	TakenAt time.Time `json:"taken_at"`
	Books   []Book    `json:"books"`
}
