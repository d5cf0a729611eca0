package model

import "time"

// RunResult summarizes one selection→dispatch→record pass.
// Consumed by the trigger caller and appended to run_stats for ops.
type RunResult struct {
	Processed  int       `json:"processed" db:"processed"`
	Sent       int       `json:"sent" db:"sent"`
	Failed     int       `json:"failed" db:"failed"`
	Timestamp  time.Time `json:"timestamp" db:"started_at"` // run start
	DurationMs int64     `json:"duration_ms" db:"duration_ms"`
}
