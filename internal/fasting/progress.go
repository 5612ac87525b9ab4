package fasting

import (
	"time"

	"fasting-tracker/internal/models"
)

// ProgressSnapshot is the live view of a running session. It is recomputed
// from the wall clock on every call, so there is no accumulated drift and
// no server-side timer to leak -- the client owns the 1s tick.
type ProgressSnapshot struct {
	ElapsedSeconds   int64   `json:"elapsed_seconds"`
	ProgressPercent  float64 `json:"progress_percent"`
	RemainingSeconds int64   `json:"remaining_seconds"`
}

// Progress derives elapsed/progress/remaining for session at instant now.
// 时钟偏移导致 now 早于 start_time 时按 0 处理。
func Progress(session *models.FastingSession, now time.Time) ProgressSnapshot {
	var snap ProgressSnapshot
	if session == nil {
		return snap
	}

	elapsed := int64(now.Sub(session.StartTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	total := int64(session.DurationHours) * 3600

	snap.ElapsedSeconds = elapsed
	if total > 0 {
		percent := float64(elapsed) / float64(total) * 100
		if percent > 100 {
			percent = 100
		}
		snap.ProgressPercent = percent
	}
	if remaining := total - elapsed; remaining > 0 {
		snap.RemainingSeconds = remaining
	}
	return snap
}
