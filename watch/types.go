package watch

import (
	"time"
)

// Job is one timestamp file queued for conversion
type Job struct {
	ID     string
	Path   string
	Queued time.Time
}

// Result records a completed conversion
type Result struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Completed time.Time `json:"completed"`
}

// Event is pushed to WebSocket subscribers when a file is converted
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Result    Result    `json:"result"`
}
